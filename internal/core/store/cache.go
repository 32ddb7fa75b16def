package store

import (
	"sync/atomic"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	lru "github.com/hashicorp/golang-lru/v2"
)

// recordCache keeps decoded committed auctions. Entries are cloned on the
// way in and out so callers never share a record with the cache.
type recordCache struct {
	entries *lru.Cache[string, *auction.Auction]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// newRecordCache returns nil when size is not positive, which disables caching.
func newRecordCache(size int) (*recordCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, *auction.Auction](size)
	if err != nil {
		return nil, err
	}
	return &recordCache{entries: entries}, nil
}

func (c *recordCache) get(itemID string) (*auction.Auction, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := c.entries.Get(itemID)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return a.Clone(), true
}

func (c *recordCache) add(a *auction.Auction) {
	if c == nil {
		return
	}
	c.entries.Add(a.ItemID, a.Clone())
}

func (c *recordCache) invalidate(itemID string) {
	if c == nil {
		return
	}
	c.entries.Remove(itemID)
}

// CacheStats reports record cache effectiveness.
type CacheStats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

func (c *recordCache) stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{Size: c.entries.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}
