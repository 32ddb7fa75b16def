package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/core/engine"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the market configuration",
	}
	cmd.AddCommand(newConfigShowCmd(opts), newConfigUpdateCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the committed market configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				cfg, err := eng.Config(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, cfg)
			})
		},
	}
}

func newConfigUpdateCmd(opts *globalOptions) *cobra.Command {
	var (
		collector       string
		feeBps          uint64
		operators       []string
		minPrice        uint64
		minBidIncrement uint64
		minDuration     time.Duration
		maxDuration     time.Duration
		closedDuration  time.Duration
		bufferDuration  time.Duration
		funds           []string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change market parameters",
		Long: `Change market parameters. Only the flags given are changed; --from must be
an operator. The denomination and the item registry cannot change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			msg := &engine.UpdateConfig{}
			if flags.Changed("collector") {
				msg.Collector = &collector
			}
			if flags.Changed("trading-fee-bps") {
				msg.TradingFeeBps = &feeBps
			}
			if flags.Changed("operators") {
				msg.Operators = operators
			}
			if flags.Changed("min-price") {
				msg.MinPrice = &minPrice
			}
			if flags.Changed("min-bid-increment") {
				msg.MinBidIncrement = &minBidIncrement
			}
			if flags.Changed("min-duration") {
				msg.MinDuration = &minDuration
			}
			if flags.Changed("max-duration") {
				msg.MaxDuration = &maxDuration
			}
			if flags.Changed("closed-duration") {
				msg.ClosedDuration = &closedDuration
			}
			if flags.Changed("buffer-duration") {
				msg.BufferDuration = &bufferDuration
			}

			return withSession(opts, func(s *session) error {
				return s.apply(cmd, funds, msg)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&collector, "collector", "", "account receiving the trading fee")
	f.Uint64Var(&feeBps, "trading-fee-bps", 0, "trading fee in basis points")
	f.StringSliceVar(&operators, "operators", nil, "accounts allowed to change the configuration")
	f.Uint64Var(&minPrice, "min-price", 0, "lowest starting, reserve or bid price")
	f.Uint64Var(&minBidIncrement, "min-bid-increment", 0, "least raise over the highest bid")
	f.DurationVar(&minDuration, "min-duration", 0, "shortest auction")
	f.DurationVar(&maxDuration, "max-duration", 0, "longest auction")
	f.DurationVar(&closedDuration, "closed-duration", 0, "window after the end in which the seller may close")
	f.DurationVar(&bufferDuration, "buffer-duration", 0, "late bids extend the end to at least this far ahead")
	addFundsFlag(cmd, &funds)
	return cmd
}
