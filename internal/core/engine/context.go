package engine

import (
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
)

// ApplyContext carries the state an operation needs while it is applied.
type ApplyContext struct {
	// Txn is the unit of work. Record reads and writes go through it.
	Txn *store.Txn

	// Config is the market configuration at the start of the request.
	Config *auction.Config

	Sender string
	Funds  []auction.Coin
	Now    time.Time

	Engine *Engine

	resp *Response
}

// Emit appends an event to the response.
func (ctx *ApplyContext) Emit(typ, itemID string, attrs ...Attribute) {
	ctx.resp.Events = append(ctx.resp.Events, Event{
		Type:       typ,
		ItemID:     itemID,
		Sender:     ctx.Sender,
		Time:       ctx.Now,
		Attributes: attrs,
	})
}

// Send buffers a collaborator message.
func (ctx *ApplyContext) Send(m Message) {
	ctx.resp.Messages = append(ctx.resp.Messages, m)
}

// TransferItem buffers an item transfer and records it.
func (ctx *ApplyContext) TransferItem(itemID, recipient string) {
	ctx.Send(TransferItem{ItemID: itemID, Recipient: recipient})
	ctx.Emit(EventTransferItem, itemID, attr("item_id", itemID), attr("recipient", recipient))
}

// Pay buffers a payment out of custody.
func (ctx *ApplyContext) Pay(recipient string, amount auction.Coin) {
	ctx.Send(Payment{Recipient: recipient, Amount: amount})
}

// NonPayable rejects requests carrying funds.
func (ctx *ApplyContext) NonPayable() error {
	if len(ctx.Funds) > 0 {
		return fmt.Errorf("%w: operation does not accept funds, got %v", auction.ErrPayment, ctx.Funds)
	}
	return nil
}

// Load fetches an auction through the unit of work.
func (ctx *ApplyContext) Load(itemID string) (*auction.Auction, error) {
	a, found, err := ctx.Txn.Get(itemID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: item %s", auction.ErrNotFound, itemID)
	}
	return a, nil
}

// Status returns the phase of a at the request time.
func (ctx *ApplyContext) Status(a *auction.Auction) auction.Status {
	return auction.StatusAt(a, ctx.Now, ctx.Config.ClosedDuration)
}

// RequireStatus fails unless a is in one of the allowed phases.
func (ctx *ApplyContext) RequireStatus(a *auction.Auction, op string, allowed ...auction.Status) error {
	if s := ctx.Status(a); !auction.StatusIn(s, allowed...) {
		return auction.StatusError(s, op)
	}
	return nil
}
