package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/core/engine"
)

func newSweepCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Settle every auction that has ended",
		Long: `Finalize every ended auction whose reserve price was met and void every
expired one that was not. Each settlement is applied as its own request;
a failed settlement is reported and the sweep moves on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				sender, err := s.sender()
				if err != nil {
					return err
				}
				now, err := s.now()
				if err != nil {
					return err
				}

				results, err := eng.Sweep(cmd.Context(), sender, now)
				if err != nil {
					return err
				}
				if results == nil {
					results = []engine.SweepResult{}
				}
				return printJSON(cmd, results)
			})
		},
	}
}
