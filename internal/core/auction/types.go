// Package auction holds the auction domain model: records, market
// configuration, the lifecycle status function and shared validation.
package auction

import (
	"fmt"
	"time"
)

// BpsDenominator is the number of basis points in 100%.
const BpsDenominator = 10_000

// Coin is an amount of a single denomination.
type Coin struct {
	Amount uint64 `json:"amount"`
	Denom  string `json:"denom"`
}

func NewCoin(amount uint64, denom string) Coin {
	return Coin{Amount: amount, Denom: denom}
}

func (c Coin) String() string {
	return fmt.Sprintf("%d%s", c.Amount, c.Denom)
}

// IsZero reports whether the coin carries no value.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// AuctionBid is the current highest bid on an auction.
type AuctionBid struct {
	Bidder string `json:"bidder"`
	Price  Coin   `json:"price"`
}

// Auction is the live record of an item offered for sale.
type Auction struct {
	ItemID         string      `json:"item_id"`
	Seller         string      `json:"seller"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	StartingPrice  Coin        `json:"starting_price"`
	ReservePrice   *Coin       `json:"reserve_price,omitempty"`
	FundsRecipient string      `json:"funds_recipient,omitempty"`
	HighestBid     *AuctionBid `json:"highest_bid,omitempty"`
}

// Recipient returns the account credited with the seller proceeds.
func (a *Auction) Recipient() string {
	if a.FundsRecipient != "" {
		return a.FundsRecipient
	}
	return a.Seller
}

// NextBidMin returns the smallest amount a new bid must carry.
func (a *Auction) NextBidMin(increment uint64) uint64 {
	if a.HighestBid == nil {
		return a.StartingPrice.Amount
	}
	next := a.HighestBid.Price.Amount + increment
	if next < a.HighestBid.Price.Amount {
		// saturate rather than wrap
		return ^uint64(0)
	}
	return next
}

// ReservePriceMet reports whether the highest bid reaches the reserve.
// An auction without a reserve or without a bid has not met it.
func (a *Auction) ReservePriceMet() bool {
	if a.ReservePrice == nil || a.HighestBid == nil {
		return false
	}
	return a.HighestBid.Price.Amount >= a.ReservePrice.Amount
}

// HighestBidder returns the current highest bidder, or "" when nobody bid.
func (a *Auction) HighestBidder() string {
	if a.HighestBid == nil {
		return ""
	}
	return a.HighestBid.Bidder
}

// HighestPrice returns the highest bid amount, or 0 when nobody bid.
func (a *Auction) HighestPrice() uint64 {
	if a.HighestBid == nil {
		return 0
	}
	return a.HighestBid.Price.Amount
}

// Clone returns a deep copy of the auction.
func (a *Auction) Clone() *Auction {
	c := *a
	if a.ReservePrice != nil {
		rp := *a.ReservePrice
		c.ReservePrice = &rp
	}
	if a.HighestBid != nil {
		hb := *a.HighestBid
		c.HighestBid = &hb
	}
	return &c
}

// Config is the market-wide configuration.
type Config struct {
	ItemRegistry    string        `json:"item_registry"`
	Denom           string        `json:"denom"`
	Collector       string        `json:"collector"`
	TradingFeeBps   uint64        `json:"trading_fee_bps"`
	Operators       []string      `json:"operators"`
	MinPrice        uint64        `json:"min_price"`
	MinBidIncrement uint64        `json:"min_bid_increment"`
	MinDuration     time.Duration `json:"min_duration"`
	MaxDuration     time.Duration `json:"max_duration"`
	ClosedDuration  time.Duration `json:"closed_duration"`
	BufferDuration  time.Duration `json:"buffer_duration"`
}

// IsOperator reports whether account may change the configuration.
func (c *Config) IsOperator(account string) bool {
	for _, op := range c.Operators {
		if op == account {
			return true
		}
	}
	return false
}

// RoyaltyTerms is the royalty policy attached to an item collection.
type RoyaltyTerms struct {
	PaymentAddress string `json:"payment_address"`
	ShareBps       uint64 `json:"share_bps"`
}
