package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
)

// AuctionResponse is an auction with the values derived from it at a point
// in time.
type AuctionResponse struct {
	Auction         *auction.Auction `json:"auction"`
	Status          auction.Status   `json:"status"`
	ReservePriceMet bool             `json:"is_reserve_price_met"`
	NextBidMin      auction.Coin     `json:"next_bid_min"`
}

// Auction returns the live auction of an item as seen at now.
func (e *Engine) Auction(ctx context.Context, itemID string, now time.Time) (*AuctionResponse, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cfg, err := e.config(ctx)
	if err != nil {
		return nil, err
	}
	a, found, err := e.store.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: item %s", auction.ErrNotFound, itemID)
	}

	return &AuctionResponse{
		Auction:         a,
		Status:          auction.StatusAt(a, now, cfg.ClosedDuration),
		ReservePriceMet: a.ReservePriceMet(),
		NextBidMin:      auction.NewCoin(a.NextBidMin(cfg.MinBidIncrement), cfg.Denom),
	}, nil
}

// Config returns the committed market configuration.
func (e *Engine) Config(ctx context.Context) (*auction.Config, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config(ctx)
}

func (e *Engine) config(ctx context.Context) (*auction.Config, error) {
	cfg, err := e.store.Config(ctx)
	if errors.Is(err, store.ErrNoConfig) {
		return nil, fmt.Errorf("%w: market not instantiated", auction.ErrInvalidConfig)
	}
	return cfg, err
}

// ListQuery pages through an index.
type ListQuery struct {
	// After resumes the listing after this position (exclusive).
	After      *store.Cursor
	Descending bool
	// Limit defaults to 10 and is capped at 30.
	Limit int
	// FilterExpiry drops auctions whose end time is not after Now.
	FilterExpiry bool
	Now          time.Time
}

func (q ListQuery) rangeOptions(idx store.Index, account *string) store.RangeOptions {
	opts := store.RangeOptions{
		Index:      idx,
		Account:    account,
		After:      q.After,
		Descending: q.Descending,
		Limit:      q.Limit,
	}
	if q.FilterExpiry {
		now := q.Now
		opts.NotExpiredAt = &now
	}
	return opts
}

// List pages through any index. account is required for the seller and
// bidder indices and must be nil otherwise.
func (e *Engine) List(ctx context.Context, idx store.Index, account *string, q ListQuery) ([]*auction.Auction, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Range(ctx, q.rangeOptions(idx, account))
}

func (e *Engine) AuctionsByStartTime(ctx context.Context, q ListQuery) ([]*auction.Auction, error) {
	return e.List(ctx, store.IndexStartTime, nil, q)
}

func (e *Engine) AuctionsByEndTime(ctx context.Context, q ListQuery) ([]*auction.Auction, error) {
	return e.List(ctx, store.IndexEndTime, nil, q)
}

func (e *Engine) AuctionsByHighestBid(ctx context.Context, q ListQuery) ([]*auction.Auction, error) {
	return e.List(ctx, store.IndexHighestBidPrice, nil, q)
}

func (e *Engine) AuctionsBySeller(ctx context.Context, seller string, q ListQuery) ([]*auction.Auction, error) {
	return e.List(ctx, store.IndexSellerEndTime, &seller, q)
}

// AuctionsByBidder lists auctions where bidder holds the highest bid.
func (e *Engine) AuctionsByBidder(ctx context.Context, bidder string, q ListQuery) ([]*auction.Auction, error) {
	return e.List(ctx, store.IndexBidderEndTime, &bidder, q)
}
