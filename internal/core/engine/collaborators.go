package engine

import (
	"context"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
)

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mocks github.com/LeJamon/goAuctiond/internal/core/engine ItemRegistry,AssetTransfer,RoyaltyLookup,FundsCollector,EventSink

// Collaborators receive the unit-of-work view of the request being applied.
// Anything they write through it commits or is discarded together with the
// auction records.

// ItemRegistry owns the items being auctioned.
type ItemRegistry interface {
	OwnerOf(view store.KV, itemID string) (string, error)
	Transfer(view store.KV, itemID, recipient string) error
}

// AssetTransfer pays out of the market's custody.
type AssetTransfer interface {
	Pay(view store.KV, recipient string, amount auction.Coin) error
}

// RoyaltyLookup resolves the royalty policy of a collection. A nil result
// means the collection pays no royalty.
type RoyaltyLookup interface {
	CollectionTerms(view store.KV, collection string) (*auction.RoyaltyTerms, error)
}

// FundsCollector moves the funds attached to a request into custody.
type FundsCollector interface {
	Collect(view store.KV, from string, funds []auction.Coin) error
}

// EventSink receives the events of every committed request.
type EventSink interface {
	Publish(ctx context.Context, events []Event) error
}
