package engine

import (
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// PlaceBid offers a new highest bid. The attached funds must match the
// price exactly; the previous highest bid is refunded.
type PlaceBid struct {
	ItemID string       `json:"item_id"`
	Price  auction.Coin `json:"price"`
}

func (m *PlaceBid) Name() string { return "place_bid" }

func (m *PlaceBid) Apply(ctx *ApplyContext) error {
	a, err := ctx.Load(m.ItemID)
	if err != nil {
		return err
	}
	if err := ctx.RequireStatus(a, "bid", auction.StatusOpen); err != nil {
		return err
	}

	if next := a.NextBidMin(ctx.Config.MinBidIncrement); m.Price.Amount < next {
		return fmt.Errorf("%w: %d below next minimum %d", auction.ErrBidTooLow, m.Price.Amount, next)
	}
	if err := auction.ValidatePrice(m.Price, ctx.Config); err != nil {
		return err
	}

	if a.HighestBid != nil {
		ctx.refundBid(a.ItemID, a.HighestBid)
	}

	if len(ctx.Funds) != 1 || ctx.Funds[0] != m.Price {
		return auction.BidPaymentError(m.Price, ctx.Funds)
	}

	extended := ctx.Now.Add(ctx.Config.BufferDuration)
	if !auction.Storable(extended) {
		return fmt.Errorf("%w: extended end time %s is out of range", auction.ErrInvalidStartEndTime, extended.Format(time.RFC3339))
	}

	err = ctx.Txn.Update(a.ItemID, func(rec *auction.Auction) error {
		rec.HighestBid = &auction.AuctionBid{Bidder: ctx.Sender, Price: m.Price}
		if extended.After(rec.EndTime) {
			rec.EndTime = extended
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx.Emit(EventSetAuctionBid, a.ItemID,
		attr("item_id", a.ItemID),
		attr("bidder", ctx.Sender),
		coinAttr("price", m.Price),
	)
	return nil
}
