package store

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// Key space of the auction database. Every key is byte-ordered.
var (
	recordPrefix = []byte("a/")
	indexPrefix  = []byte("x/")
	configKey    = []byte("c/config")
)

// Index names a secondary ordering over live auctions.
type Index string

const (
	IndexStartTime       Index = "start_time"
	IndexEndTime         Index = "end_time"
	IndexHighestBidPrice Index = "highest_bid_price"
	IndexSellerEndTime   Index = "seller_end_time"
	IndexBidderEndTime   Index = "highest_bidder_end_time"
)

// Indexes lists every maintained index.
var Indexes = []Index{
	IndexStartTime,
	IndexEndTime,
	IndexHighestBidPrice,
	IndexSellerEndTime,
	IndexBidderEndTime,
}

// ParseIndex resolves an index by name.
func ParseIndex(name string) (Index, error) {
	for _, idx := range Indexes {
		if string(idx) == name {
			return idx, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIndex, name)
}

// Compound reports whether the index is grouped by an account.
func (idx Index) Compound() bool {
	return idx == IndexSellerEndTime || idx == IndexBidderEndTime
}

func recordKey(itemID string) []byte {
	return append(append([]byte{}, recordPrefix...), itemID...)
}

// indexBase returns x/<index>/ optionally followed by the account group.
func indexBase(idx Index, account *string) []byte {
	key := append([]byte{}, indexPrefix...)
	key = append(key, idx...)
	key = append(key, '/')
	if account != nil {
		key = appendAccount(key, *account)
	}
	return key
}

// indexKey builds the entry of a for idx.
func indexKey(idx Index, a *auction.Auction) []byte {
	var key []byte
	switch idx {
	case IndexStartTime:
		key = appendTime(indexBase(idx, nil), a.StartTime)
	case IndexEndTime:
		key = appendTime(indexBase(idx, nil), a.EndTime)
	case IndexHighestBidPrice:
		key = appendAmount(indexBase(idx, nil), a.HighestPrice())
	case IndexSellerEndTime:
		seller := a.Seller
		key = appendTime(indexBase(idx, &seller), a.EndTime)
	case IndexBidderEndTime:
		bidder := a.HighestBidder()
		key = appendTime(indexBase(idx, &bidder), a.EndTime)
	default:
		panic(fmt.Sprintf("unknown index %q", idx))
	}
	return append(key, a.ItemID...)
}

// cursorKey builds the index position a cursor points at.
func cursorKey(idx Index, account *string, c *Cursor) []byte {
	key := indexBase(idx, account)
	if idx == IndexHighestBidPrice {
		key = appendAmount(key, c.Price)
	} else {
		key = appendTime(key, c.Time)
	}
	return append(key, c.ItemID...)
}

// appendTime encodes t so that byte order matches chronological order,
// including instants before 1970.
func appendTime(b []byte, t time.Time) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(t.UnixNano())^(1<<63))
}

func appendAmount(b []byte, amount uint64) []byte {
	return binary.BigEndian.AppendUint64(b, amount)
}

func appendAccount(b []byte, account string) []byte {
	b = binary.BigEndian.AppendUint16(b, uint16(len(account)))
	return append(b, account...)
}
