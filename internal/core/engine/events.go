package engine

import (
	"strconv"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// Event types.
const (
	EventInstantiate         = "instantiate"
	EventSetAuction          = "set-auction"
	EventSetAuctionBid       = "set-auction-bid"
	EventCloseAuction        = "close-auction"
	EventFinalizeAuction     = "finalize-auction"
	EventVoidAuction         = "void-auction"
	EventFinalizeSale        = "finalize-sale"
	EventTransferItem        = "transfer-item"
	EventRefundAuctionBidder = "refund-auction-bidder"
	EventPayoutMarket        = "payout-market"
	EventPayoutRoyalty       = "payout-royalty"
	EventPayoutSeller        = "payout-seller"
	EventUpdateConfig        = "update-config"
)

// Attribute is a key/value pair attached to an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func coinAttr(key string, c auction.Coin) Attribute {
	return Attribute{Key: key, Value: c.String()}
}

func boolAttr(key string, v bool) Attribute {
	return Attribute{Key: key, Value: strconv.FormatBool(v)}
}

func timeAttr(key string, t time.Time) Attribute {
	return Attribute{Key: key, Value: t.UTC().Format(time.RFC3339Nano)}
}

// Event records something a committed request did.
type Event struct {
	Type       string      `json:"type"`
	ItemID     string      `json:"item_id,omitempty"`
	Sender     string      `json:"sender"`
	Time       time.Time   `json:"time"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attr returns the value of the first attribute named key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
