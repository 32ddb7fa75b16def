package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
)

// Administrative access to the bank and item registry kept beside the
// auction records. These writes are not auction requests and emit no events.
func newLedgerCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Manage balances, items and royalty terms",
	}
	cmd.AddCommand(
		newLedgerFundCmd(opts),
		newLedgerMintCmd(opts),
		newLedgerRoyaltyCmd(opts),
		newLedgerBalanceCmd(opts),
		newLedgerOwnerCmd(opts),
	)
	return cmd
}

// updateLedger runs fn in one committed unit of work. denom is the market
// denomination.
func (s *session) updateLedger(cmd *cobra.Command, fn func(view store.KV, denom string) error) error {
	eng, err := s.engine()
	if err != nil {
		return err
	}
	denom, err := s.denom(cmd.Context(), eng)
	if err != nil {
		return err
	}
	return eng.Update(cmd.Context(), func(view store.KV) error {
		return fn(view, denom)
	})
}

func newLedgerFundCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fund ACCOUNT COIN",
		Short: "Issue coins to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				l, err := s.ledger()
				if err != nil {
					return err
				}
				var coin auction.Coin
				err = s.updateLedger(cmd, func(view store.KV, denom string) error {
					c, err := parseCoin(args[1], denom)
					if err != nil {
						return err
					}
					coin = c
					return l.Fund(view, args[0], c)
				})
				if err != nil {
					return err
				}
				return printBalance(cmd, s, args[0], coin.Denom)
			})
		},
	}
}

func newLedgerMintCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mint ITEM OWNER",
		Short: "Register a new item held by OWNER",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				l, err := s.ledger()
				if err != nil {
					return err
				}
				err = s.updateLedger(cmd, func(view store.KV, _ string) error {
					return l.Mint(view, args[0], args[1])
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"item_id": args[0], "owner": args[1]})
			})
		},
	}
}

func newLedgerRoyaltyCmd(opts *globalOptions) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "royalty COLLECTION [ADDRESS SHARE_BPS]",
		Short: "Set or remove the royalty terms of a collection",
		Args: func(cmd *cobra.Command, args []string) error {
			if remove {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var terms *auction.RoyaltyTerms
			if !remove {
				bps, err := strconv.ParseUint(args[2], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid share: %w", err)
				}
				terms = &auction.RoyaltyTerms{PaymentAddress: args[1], ShareBps: bps}
			}

			return withSession(opts, func(s *session) error {
				l, err := s.ledger()
				if err != nil {
					return err
				}
				err = s.updateLedger(cmd, func(view store.KV, _ string) error {
					return l.SetRoyalty(view, args[0], terms)
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]interface{}{"collection": args[0], "terms": terms})
			})
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "remove the collection's terms")
	return cmd
}

type balanceOutput struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
	Denom   string `json:"denom"`
}

func printBalance(cmd *cobra.Command, s *session, account, denom string) error {
	eng, err := s.engine()
	if err != nil {
		return err
	}
	l, err := s.ledger()
	if err != nil {
		return err
	}
	var out balanceOutput
	err = eng.View(cmd.Context(), func(view store.KV) error {
		amount, err := l.Balance(view, account, denom)
		out = balanceOutput{Account: account, Amount: amount, Denom: denom}
		return err
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func newLedgerBalanceCmd(opts *globalOptions) *cobra.Command {
	var denom string

	cmd := &cobra.Command{
		Use:   "balance ACCOUNT",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				d := denom
				if d == "" {
					eng, err := s.engine()
					if err != nil {
						return err
					}
					if d, err = s.denom(cmd.Context(), eng); err != nil {
						return err
					}
				}
				return printBalance(cmd, s, args[0], d)
			})
		},
	}

	cmd.Flags().StringVar(&denom, "denom", "", "denomination (default the market's)")
	return cmd
}

func newLedgerOwnerCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "owner ITEM",
		Short: "Show the holder of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				eng, err := s.engine()
				if err != nil {
					return err
				}
				l, err := s.ledger()
				if err != nil {
					return err
				}
				var owner string
				err = eng.View(cmd.Context(), func(view store.KV) error {
					o, err := l.OwnerOf(view, args[0])
					owner = o
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"item_id": args[0], "owner": owner})
			})
		},
	}
}
