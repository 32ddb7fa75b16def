package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

func newEventsCmd(opts *globalOptions) *cobra.Command {
	var filter relationaldb.Filter

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show journaled events",
		Long: `Show the events of committed requests from the journal, oldest first.
Page with --after, passing the seq of the last entry seen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				journal, err := s.provider.GetJournal()
				if err != nil {
					return err
				}
				if journal == nil {
					return fmt.Errorf("journal is disabled")
				}

				entries, err := journal.Entries(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if entries == nil {
					entries = []relationaldb.Entry{}
				}
				return printJSON(cmd, entries)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.ItemID, "item", "", "only events of this item")
	f.StringVar(&filter.Type, "type", "", "only events of this type")
	f.StringVar(&filter.Sender, "sender", "", "only events of requests sent by this account")
	f.Int64Var(&filter.AfterSeq, "after", 0, "only entries after this seq")
	f.IntVar(&filter.Limit, "limit", 0, fmt.Sprintf("maximum entries (default %d, max %d)", relationaldb.DefaultLimit, relationaldb.MaxLimit))
	return cmd
}
