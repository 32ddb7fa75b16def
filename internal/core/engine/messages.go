package engine

import (
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
)

// Message is a collaborator effect requested by an operation. Messages are
// buffered while the operation runs and dispatched in order once it succeeds.
type Message interface {
	dispatch(e *Engine, view store.KV) error
	String() string
}

// TransferItem moves an item to a new holder.
type TransferItem struct {
	ItemID    string
	Recipient string
}

func (m TransferItem) dispatch(e *Engine, view store.KV) error {
	if err := e.registry.Transfer(view, m.ItemID, m.Recipient); err != nil {
		return fmt.Errorf("transfer item %s to %s: %w", m.ItemID, m.Recipient, err)
	}
	return nil
}

func (m TransferItem) String() string {
	return fmt.Sprintf("transfer %s -> %s", m.ItemID, m.Recipient)
}

// Payment pays an amount out of custody.
type Payment struct {
	Recipient string
	Amount    auction.Coin
}

func (m Payment) dispatch(e *Engine, view store.KV) error {
	if err := e.bank.Pay(view, m.Recipient, m.Amount); err != nil {
		return fmt.Errorf("pay %s to %s: %w", m.Amount, m.Recipient, err)
	}
	return nil
}

func (m Payment) String() string {
	return fmt.Sprintf("pay %s -> %s", m.Amount, m.Recipient)
}
