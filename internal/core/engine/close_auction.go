package engine

import (
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// CloseAuction lets the seller end an auction whose reserve is not met,
// optionally accepting the highest bid.
type CloseAuction struct {
	ItemID           string `json:"item_id"`
	AcceptHighestBid bool   `json:"accept_highest_bid"`
}

func (m *CloseAuction) Name() string { return "close_auction" }

func (m *CloseAuction) Apply(ctx *ApplyContext) error {
	if err := ctx.NonPayable(); err != nil {
		return err
	}
	a, err := ctx.Load(m.ItemID)
	if err != nil {
		return err
	}
	if a.Seller != ctx.Sender {
		return fmt.Errorf("%w: only the seller can close item %s", auction.ErrUnauthorized, a.ItemID)
	}
	if err := ctx.RequireStatus(a, "close", auction.StatusOpen, auction.StatusClosed); err != nil {
		return err
	}
	if a.ReservePriceMet() {
		return fmt.Errorf("%w: reserve price met, finalize instead", auction.ErrReservePriceRestriction)
	}

	isSale := m.AcceptHighestBid && a.HighestBid != nil
	if isSale {
		if err := ctx.settleSale(a); err != nil {
			return err
		}
	} else {
		ctx.settleNoSale(a)
	}

	if err := ctx.Txn.Remove(a.ItemID); err != nil {
		return err
	}

	ctx.Emit(EventCloseAuction, a.ItemID, attr("item_id", a.ItemID), boolAttr("is_sale", isSale))
	return nil
}
