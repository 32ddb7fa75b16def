package engine

import (
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// SetAuction lists an item for auction. The sender must hold the item; it
// moves into custody until the auction settles.
type SetAuction struct {
	ItemID         string        `json:"item_id"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	StartingPrice  auction.Coin  `json:"starting_price"`
	ReservePrice   *auction.Coin `json:"reserve_price,omitempty"`
	FundsRecipient string        `json:"funds_recipient,omitempty"`
}

func (m *SetAuction) Name() string { return "set_auction" }

func (m *SetAuction) Apply(ctx *ApplyContext) error {
	if err := ctx.NonPayable(); err != nil {
		return err
	}
	if err := auction.ValidateTimes(ctx.Now, m.StartTime, m.EndTime, ctx.Config); err != nil {
		return err
	}
	if err := auction.ValidatePrice(m.StartingPrice, ctx.Config); err != nil {
		return fmt.Errorf("starting price: %w", err)
	}
	if m.ReservePrice != nil {
		if err := auction.ValidatePrice(*m.ReservePrice, ctx.Config); err != nil {
			return fmt.Errorf("reserve price: %w", err)
		}
		if m.ReservePrice.Amount < m.StartingPrice.Amount {
			return fmt.Errorf("%w: reserve %s below starting price %s", auction.ErrInvalidReservePrice, m.ReservePrice, m.StartingPrice)
		}
	}

	owner, err := ctx.Engine.registry.OwnerOf(ctx.Txn, m.ItemID)
	if err != nil {
		return fmt.Errorf("owner of %s: %w", m.ItemID, err)
	}
	if owner != ctx.Sender {
		return fmt.Errorf("%w: %s does not hold item %s", auction.ErrUnauthorized, ctx.Sender, m.ItemID)
	}

	a := &auction.Auction{
		ItemID:         m.ItemID,
		Seller:         ctx.Sender,
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		StartingPrice:  m.StartingPrice,
		FundsRecipient: m.FundsRecipient,
	}
	if m.ReservePrice != nil {
		rp := *m.ReservePrice
		a.ReservePrice = &rp
	}
	if err := ctx.Txn.Create(a); err != nil {
		return err
	}

	ctx.Send(TransferItem{ItemID: m.ItemID, Recipient: ctx.Engine.custodian})

	attrs := []Attribute{
		attr("item_id", a.ItemID),
		attr("seller", a.Seller),
		timeAttr("start_time", a.StartTime),
		timeAttr("end_time", a.EndTime),
		coinAttr("starting_price", a.StartingPrice),
	}
	if a.ReservePrice != nil {
		attrs = append(attrs, coinAttr("reserve_price", *a.ReservePrice))
	}
	if a.FundsRecipient != "" {
		attrs = append(attrs, attr("funds_recipient", a.FundsRecipient))
	}
	ctx.Emit(EventSetAuction, a.ItemID, attrs...)
	return nil
}
