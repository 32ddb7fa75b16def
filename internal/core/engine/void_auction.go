package engine

import (
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// VoidAuction unwinds an expired auction whose reserve was never met: the
// item returns to the seller and the highest bid is refunded.
type VoidAuction struct {
	ItemID string `json:"item_id"`
}

func (m *VoidAuction) Name() string { return "void_auction" }

func (m *VoidAuction) Apply(ctx *ApplyContext) error {
	if err := ctx.NonPayable(); err != nil {
		return err
	}
	a, err := ctx.Load(m.ItemID)
	if err != nil {
		return err
	}
	if a.ReservePriceMet() {
		return fmt.Errorf("%w: reserve price met, finalize instead", auction.ErrReservePriceRestriction)
	}
	if err := ctx.RequireStatus(a, "void", auction.StatusExpired); err != nil {
		return err
	}

	ctx.settleNoSale(a)
	if err := ctx.Txn.Remove(a.ItemID); err != nil {
		return err
	}

	ctx.Emit(EventVoidAuction, a.ItemID, attr("item_id", a.ItemID))
	return nil
}
