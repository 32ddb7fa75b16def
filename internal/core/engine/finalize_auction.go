package engine

import (
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// FinalizeAuction settles an ended auction whose reserve is met. Anyone may
// send it.
type FinalizeAuction struct {
	ItemID string `json:"item_id"`
}

func (m *FinalizeAuction) Name() string { return "finalize_auction" }

func (m *FinalizeAuction) Apply(ctx *ApplyContext) error {
	if err := ctx.NonPayable(); err != nil {
		return err
	}
	a, err := ctx.Load(m.ItemID)
	if err != nil {
		return err
	}
	if a.HighestBid == nil {
		return fmt.Errorf("%w: auction has no bid", auction.ErrReservePriceRestriction)
	}
	if !a.ReservePriceMet() {
		return fmt.Errorf("%w: reserve price not met", auction.ErrReservePriceRestriction)
	}
	if err := ctx.RequireStatus(a, "finalize", auction.StatusClosed, auction.StatusExpired); err != nil {
		return err
	}

	if err := ctx.settleSale(a); err != nil {
		return err
	}
	if err := ctx.Txn.Remove(a.ItemID); err != nil {
		return err
	}

	ctx.Emit(EventFinalizeAuction, a.ItemID, attr("item_id", a.ItemID))
	return nil
}
