package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/core/store"
)

func newAuctionCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auction",
		Short: "List, bid on and settle auctions",
	}
	cmd.AddCommand(
		newAuctionCreateCmd(opts),
		newAuctionBidCmd(opts),
		newAuctionCloseCmd(opts),
		newAuctionFinalizeCmd(opts),
		newAuctionVoidCmd(opts),
		newAuctionGetCmd(opts),
		newAuctionListCmd(opts),
	)
	return cmd
}

// addFundsFlag registers --funds, the coins attached to a request.
func addFundsFlag(cmd *cobra.Command, funds *[]string) {
	cmd.Flags().StringSliceVar(funds, "funds", nil, "coins attached to the request, e.g. 150uusd")
}

// parseTime reads an RFC3339 time or a duration relative to now.
func parseTime(value string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or a duration from now", value)
	}
	return now.Add(d), nil
}

func newAuctionCreateCmd(opts *globalOptions) *cobra.Command {
	var (
		start, end     string
		startingPrice  string
		reservePrice   string
		fundsRecipient string
		funds          []string
	)

	cmd := &cobra.Command{
		Use:   "create ITEM",
		Short: "Put an item up for auction",
		Long: `Put an item held by --from up for auction. The item moves into custody
until the auction settles. Times are RFC3339 or durations from now.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				now, err := s.now()
				if err != nil {
					return err
				}
				denom, err := s.denom(cmd.Context(), eng)
				if err != nil {
					return err
				}

				msg := &engine.SetAuction{ItemID: args[0], FundsRecipient: fundsRecipient}
				if msg.StartTime, err = parseTime(start, now); err != nil {
					return err
				}
				if msg.EndTime, err = parseTime(end, now); err != nil {
					return err
				}
				if msg.StartingPrice, err = parseCoin(startingPrice, denom); err != nil {
					return err
				}
				if reservePrice != "" {
					rp, err := parseCoin(reservePrice, denom)
					if err != nil {
						return err
					}
					msg.ReservePrice = &rp
				}
				return s.apply(cmd, funds, msg)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start time")
	cmd.Flags().StringVar(&end, "end", "", "end time")
	cmd.Flags().StringVar(&startingPrice, "starting-price", "", "lowest acceptable first bid")
	cmd.Flags().StringVar(&reservePrice, "reserve-price", "", "price below which the seller need not sell")
	cmd.Flags().StringVar(&fundsRecipient, "funds-recipient", "", "account receiving the proceeds instead of the seller")
	addFundsFlag(cmd, &funds)
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	cmd.MarkFlagRequired("starting-price")
	return cmd
}

func newAuctionBidCmd(opts *globalOptions) *cobra.Command {
	var funds []string

	cmd := &cobra.Command{
		Use:   "bid ITEM PRICE",
		Short: "Bid on an open auction",
		Long: `Bid PRICE on an open auction. The bid is paid with --funds, which
defaults to exactly PRICE.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				denom, err := s.denom(cmd.Context(), eng)
				if err != nil {
					return err
				}
				price, err := parseCoin(args[1], denom)
				if err != nil {
					return err
				}

				attached := funds
				if !cmd.Flags().Changed("funds") {
					attached = []string{price.String()}
				}
				return s.apply(cmd, attached, &engine.PlaceBid{ItemID: args[0], Price: price})
			})
		},
	}

	addFundsFlag(cmd, &funds)
	return cmd
}

func newAuctionCloseCmd(opts *globalOptions) *cobra.Command {
	var (
		accept bool
		funds  []string
	)

	cmd := &cobra.Command{
		Use:   "close ITEM",
		Short: "Close an auction whose reserve price was not met",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				return s.apply(cmd, funds, &engine.CloseAuction{ItemID: args[0], AcceptHighestBid: accept})
			})
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "sell to the highest bidder anyway")
	addFundsFlag(cmd, &funds)
	return cmd
}

func newAuctionFinalizeCmd(opts *globalOptions) *cobra.Command {
	var funds []string

	cmd := &cobra.Command{
		Use:   "finalize ITEM",
		Short: "Settle an ended auction whose reserve price was met",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				return s.apply(cmd, funds, &engine.FinalizeAuction{ItemID: args[0]})
			})
		},
	}

	addFundsFlag(cmd, &funds)
	return cmd
}

func newAuctionVoidCmd(opts *globalOptions) *cobra.Command {
	var funds []string

	cmd := &cobra.Command{
		Use:   "void ITEM",
		Short: "Return an expired auction's item to the seller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				return s.apply(cmd, funds, &engine.VoidAuction{ItemID: args[0]})
			})
		},
	}

	addFundsFlag(cmd, &funds)
	return cmd
}

func newAuctionGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ITEM",
		Short: "Show an auction with its status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				now, err := s.now()
				if err != nil {
					return err
				}
				resp, err := eng.Auction(cmd.Context(), args[0], now)
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			})
		},
	}
}

func newAuctionListCmd(opts *globalOptions) *cobra.Command {
	var (
		by           string
		account      string
		after        string
		descending   bool
		limit        int
		filterExpiry bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through auctions in index order",
		Long: `Page through live auctions ordered by an index: start_time, end_time,
highest_bid_price, seller_end_time or highest_bidder_end_time. The last two
need --account. --after resumes after the named item.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := store.ParseIndex(by)
			if err != nil {
				return err
			}
			var acct *string
			if idx.Compound() {
				if account == "" {
					return fmt.Errorf("--account is required for %s", idx)
				}
				acct = &account
			} else if account != "" {
				return fmt.Errorf("--account does not apply to %s", idx)
			}

			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				now, err := s.now()
				if err != nil {
					return err
				}

				q := engine.ListQuery{Descending: descending, Limit: limit, FilterExpiry: filterExpiry, Now: now}
				if after != "" {
					resp, err := eng.Auction(cmd.Context(), after, now)
					if err != nil {
						return fmt.Errorf("--after: %w", err)
					}
					q.After = store.CursorFor(idx, resp.Auction)
				}

				auctions, err := eng.List(cmd.Context(), idx, acct, q)
				if err != nil {
					return err
				}
				if auctions == nil {
					auctions = []*auction.Auction{}
				}
				return printJSON(cmd, auctions)
			})
		},
	}

	cmd.Flags().StringVar(&by, "by", string(store.IndexEndTime), "index to list by")
	cmd.Flags().StringVar(&account, "account", "", "seller or bidder for the compound indexes")
	cmd.Flags().StringVar(&after, "after", "", "resume after this item")
	cmd.Flags().BoolVar(&descending, "desc", false, "list in descending order")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (default 10, max 30)")
	cmd.Flags().BoolVar(&filterExpiry, "filter-expiry", false, "skip auctions that have ended")
	return cmd
}
