package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/config"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var exampleConfig string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Instantiate the market",
		Long: `Instantiate the market with the parameters of the [market] configuration
section. The market can only be instantiated once; later changes go through
"config update". With --example-config an annotated configuration file is
written instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if exampleConfig != "" {
				return config.SaveExampleConfig(exampleConfig)
			}

			return withSession(opts, func(s *session) error {
				genesis, err := s.cfg.Market.Genesis()
				if err != nil {
					return err
				}
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

				resp, err := eng.Instantiate(cmd.Context(), sender, now, genesis)
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			})
		},
	}

	cmd.Flags().StringVar(&exampleConfig, "example-config", "", "write an example configuration file to this path and exit")
	return cmd
}
