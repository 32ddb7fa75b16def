// Package store persists live auctions and their secondary indices over an
// ordered key/value database.
//
// Writes go through a Txn, an overlay that is flushed to the database as a
// single batch on Commit. Reads outside a Txn observe committed state only.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/storage/database"
)

const (
	DefaultLimit = 10
	MaxLimit     = 30
)

// Options tunes a Store.
type Options struct {
	// CacheSize is the number of decoded records kept in memory. Zero disables the cache.
	CacheSize   int
	Compression Compression
}

// Store is the auction record store.
type Store struct {
	db    database.DB
	codec *Codec
	cache *recordCache
}

func New(db database.DB, opts Options) (*Store, error) {
	cache, err := newRecordCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create record cache: %w", err)
	}
	return &Store{
		db:    db,
		codec: NewCodec(opts.Compression),
		cache: cache,
	}, nil
}

// Codec returns the value codec used by the store, for collaborators that
// keep their own state in the same database.
func (s *Store) Codec() *Codec {
	return s.codec
}

// CacheStats reports the record cache counters. It is zero when caching is
// disabled.
func (s *Store) CacheStats() CacheStats {
	return s.cache.stats()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Begin opens a unit of work.
func (s *Store) Begin(ctx context.Context) *Txn {
	return &Txn{
		ctx:     ctx,
		store:   s,
		writes:  make(map[string]write),
		touched: make(map[string]struct{}),
	}
}

// Get loads a committed auction.
func (s *Store) Get(ctx context.Context, itemID string) (*auction.Auction, bool, error) {
	if a, ok := s.cache.get(itemID); ok {
		return a, true, nil
	}

	data, err := s.db.Read(ctx, recordKey(itemID))
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read auction %s: %w", itemID, err)
	}

	a, err := s.codec.decodeAuction(data)
	if err != nil {
		return nil, false, fmt.Errorf("auction %s: %w", itemID, err)
	}
	s.cache.add(a)
	return a, true, nil
}

// Config loads the committed market configuration.
func (s *Store) Config(ctx context.Context) (*auction.Config, error) {
	data, err := s.db.Read(ctx, configKey)
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return s.decodeConfig(data)
}

func (s *Store) decodeConfig(data []byte) (*auction.Config, error) {
	var r configRecord
	if err := s.codec.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return r.config(), nil
}

// Cursor is an exclusive position in an index, as returned by CursorFor.
type Cursor struct {
	ItemID string    `json:"item_id"`
	Time   time.Time `json:"time,omitempty"`
	Price  uint64    `json:"price,omitempty"`
}

// CursorFor returns the position of a in idx, suitable as RangeOptions.After
// to resume a listing after a.
func CursorFor(idx Index, a *auction.Auction) *Cursor {
	c := &Cursor{ItemID: a.ItemID}
	switch idx {
	case IndexStartTime:
		c.Time = a.StartTime
	case IndexHighestBidPrice:
		c.Price = a.HighestPrice()
	default:
		c.Time = a.EndTime
	}
	return c
}

// RangeOptions selects a page of an index.
type RangeOptions struct {
	Index Index
	// Account groups the compound indices by seller or highest bidder.
	// Required for those indices and rejected for the others.
	Account *string
	// After excludes every entry up to and including the cursor position
	// in the direction of iteration.
	After      *Cursor
	Descending bool
	// Limit defaults to DefaultLimit when not positive and is capped at MaxLimit.
	Limit int
	// NotExpiredAt keeps only auctions whose end time is after it.
	NotExpiredAt *time.Time
}

func (o *RangeOptions) limit() int {
	switch {
	case o.Limit <= 0:
		return DefaultLimit
	case o.Limit > MaxLimit:
		return MaxLimit
	default:
		return o.Limit
	}
}

// Range returns committed auctions in index order.
func (s *Store) Range(ctx context.Context, opts RangeOptions) ([]*auction.Auction, error) {
	if opts.Index.Compound() != (opts.Account != nil) {
		if opts.Account == nil {
			return nil, fmt.Errorf("index %s requires an account", opts.Index)
		}
		return nil, fmt.Errorf("index %s is not grouped by account", opts.Index)
	}
	if _, err := ParseIndex(string(opts.Index)); err != nil {
		return nil, err
	}

	base := indexBase(opts.Index, opts.Account)
	iterOpts := database.IterOptions{
		Lower:   base,
		Upper:   database.PrefixEnd(base),
		Reverse: opts.Descending,
	}
	if opts.After != nil {
		pos := cursorKey(opts.Index, opts.Account, opts.After)
		if opts.Descending {
			iterOpts.Upper = pos
		} else {
			iterOpts.Lower = append(pos, 0x00)
		}
	}

	iter, err := s.db.Iterator(ctx, iterOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", opts.Index, err)
	}
	defer iter.Close()

	limit := opts.limit()
	out := make([]*auction.Auction, 0, limit)
	for len(out) < limit && iter.Next() {
		itemID := string(iter.Value())
		a, found, err := s.Get(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: index %s points at missing auction %s", ErrCorruptRecord, opts.Index, itemID)
		}
		if opts.NotExpiredAt != nil && !opts.NotExpiredAt.Before(a.EndTime) {
			continue
		}
		out = append(out, a)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("index %s iteration: %w", opts.Index, err)
	}
	return out, nil
}
