// Package auction provides fluent request builders for auction scenario
// tests, and the scenario tests themselves.
package auction

import (
	"time"

	core "github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/testing"
)

// CreateBuilder builds SetAuction requests.
type CreateBuilder struct {
	seller string
	funds  []core.Coin
	msg    engine.SetAuction
}

// Create starts a SetAuction request with a starting price of 1.
func Create(seller, itemID string, start, end time.Time) *CreateBuilder {
	return &CreateBuilder{
		seller: seller,
		msg: engine.SetAuction{
			ItemID:        itemID,
			StartTime:     start,
			EndTime:       end,
			StartingPrice: testing.USD(1),
		},
	}
}

// StartingPrice sets the starting price in the test denomination.
func (b *CreateBuilder) StartingPrice(amount uint64) *CreateBuilder {
	b.msg.StartingPrice = testing.USD(amount)
	return b
}

// StartingCoin sets the starting price in any denomination.
func (b *CreateBuilder) StartingCoin(c core.Coin) *CreateBuilder {
	b.msg.StartingPrice = c
	return b
}

// Reserve sets the reserve price in the test denomination.
func (b *CreateBuilder) Reserve(amount uint64) *CreateBuilder {
	b.msg.ReservePrice = testing.USDPtr(amount)
	return b
}

// FundsRecipient sends the seller proceeds to another account.
func (b *CreateBuilder) FundsRecipient(account string) *CreateBuilder {
	b.msg.FundsRecipient = account
	return b
}

// Funds attaches funds to the request.
func (b *CreateBuilder) Funds(coins ...core.Coin) *CreateBuilder {
	b.funds = coins
	return b
}

func (b *CreateBuilder) Build() testing.Tx {
	msg := b.msg
	return testing.Tx{Sender: b.seller, Funds: b.funds, Op: &msg}
}

// BidBuilder builds PlaceBid requests. By default the request carries
// exactly the bid price.
type BidBuilder struct {
	bidder string
	funds  []core.Coin
	custom bool
	msg    engine.PlaceBid
}

// Bid starts a PlaceBid request for amount of the test denomination.
func Bid(bidder, itemID string, amount uint64) *BidBuilder {
	return &BidBuilder{
		bidder: bidder,
		msg:    engine.PlaceBid{ItemID: itemID, Price: testing.USD(amount)},
	}
}

// Price overrides the bid price with any coin.
func (b *BidBuilder) Price(c core.Coin) *BidBuilder {
	b.msg.Price = c
	return b
}

// Funds replaces the attached funds.
func (b *BidBuilder) Funds(coins ...core.Coin) *BidBuilder {
	b.funds = coins
	b.custom = true
	return b
}

// NoFunds attaches nothing.
func (b *BidBuilder) NoFunds() *BidBuilder {
	return b.Funds()
}

func (b *BidBuilder) Build() testing.Tx {
	funds := b.funds
	if !b.custom {
		funds = []core.Coin{b.msg.Price}
	}
	msg := b.msg
	return testing.Tx{Sender: b.bidder, Funds: funds, Op: &msg}
}

// CloseBuilder builds CloseAuction requests.
type CloseBuilder struct {
	seller string
	funds  []core.Coin
	msg    engine.CloseAuction
}

func Close(seller, itemID string) *CloseBuilder {
	return &CloseBuilder{seller: seller, msg: engine.CloseAuction{ItemID: itemID}}
}

// Accept accepts the highest bid.
func (b *CloseBuilder) Accept() *CloseBuilder {
	b.msg.AcceptHighestBid = true
	return b
}

func (b *CloseBuilder) Funds(coins ...core.Coin) *CloseBuilder {
	b.funds = coins
	return b
}

func (b *CloseBuilder) Build() testing.Tx {
	msg := b.msg
	return testing.Tx{Sender: b.seller, Funds: b.funds, Op: &msg}
}

// Finalize builds a FinalizeAuction request.
func Finalize(sender, itemID string) testing.Tx {
	return testing.Tx{Sender: sender, Op: &engine.FinalizeAuction{ItemID: itemID}}
}

// Void builds a VoidAuction request.
func Void(sender, itemID string) testing.Tx {
	return testing.Tx{Sender: sender, Op: &engine.VoidAuction{ItemID: itemID}}
}

// ConfigBuilder builds UpdateConfig requests.
type ConfigBuilder struct {
	sender string
	msg    engine.UpdateConfig
}

func UpdateConfig(sender string) *ConfigBuilder {
	return &ConfigBuilder{sender: sender}
}

func (b *ConfigBuilder) TradingFee(bps uint64) *ConfigBuilder {
	b.msg.TradingFeeBps = &bps
	return b
}

func (b *ConfigBuilder) Collector(account string) *ConfigBuilder {
	b.msg.Collector = &account
	return b
}

func (b *ConfigBuilder) Operators(accounts ...string) *ConfigBuilder {
	b.msg.Operators = accounts
	return b
}

func (b *ConfigBuilder) MinPrice(amount uint64) *ConfigBuilder {
	b.msg.MinPrice = &amount
	return b
}

func (b *ConfigBuilder) MinBidIncrement(amount uint64) *ConfigBuilder {
	b.msg.MinBidIncrement = &amount
	return b
}

func (b *ConfigBuilder) Durations(minDuration, maxDuration time.Duration) *ConfigBuilder {
	b.msg.MinDuration = &minDuration
	b.msg.MaxDuration = &maxDuration
	return b
}

func (b *ConfigBuilder) ClosedDuration(d time.Duration) *ConfigBuilder {
	b.msg.ClosedDuration = &d
	return b
}

func (b *ConfigBuilder) BufferDuration(d time.Duration) *ConfigBuilder {
	b.msg.BufferDuration = &d
	return b
}

func (b *ConfigBuilder) Build() testing.Tx {
	msg := b.msg
	return testing.Tx{Sender: b.sender, Op: &msg}
}
