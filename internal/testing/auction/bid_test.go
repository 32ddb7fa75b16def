package auction

import (
	"math"
	stdtesting "testing"
	"time"

	core "github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Starting 110, reserve 210, increment 3: after a 140 bid, 142 is too low
// and 143 is accepted.
func TestBidIncrement(t *stdtesting.T) {
	env, _ := listed(t, 210)

	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 140).Build()))
	testing.RequireBalance(t, env, bob, 10_000-140)
	assert.Equal(t, testing.USD(143), env.Auction("1").NextBidMin)

	before := env.Auction("1")
	testing.AssertNoBalanceChange(t, env, carol, func() {
		testing.RequireError(t, env.Submit(Bid(carol, "1", 142).Build()), core.ErrBidTooLow)
	})
	assert.Equal(t, before, env.Auction("1"), "rejected bid leaves the auction untouched")

	result := env.Submit(Bid(carol, "1", 143).Build())
	testing.RequireSuccess(t, result)
	testing.RequireBalance(t, env, bob, 10_000)
	testing.RequireBalance(t, env, carol, 10_000-143)
	testing.RequireBalance(t, env, testing.Custodian, 143)

	refunds := result.Events(engine.EventRefundAuctionBidder)
	require.Len(t, refunds, 1)
	bidder, _ := refunds[0].Attr("bidder")
	assert.Equal(t, bob, bidder)

	hb := env.Auction("1").Auction.HighestBid
	require.NotNil(t, hb)
	assert.Equal(t, carol, hb.Bidder)
	assert.Equal(t, testing.USD(143), hb.Price)
}

func TestFirstBidMustReachStartingPrice(t *stdtesting.T) {
	env, _ := listed(t, 0)

	testing.RequireError(t, env.Submit(Bid(bob, "1", 109).Build()), core.ErrBidTooLow)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 110).Build()))
}

func TestBidOutsideOpenWindow(t *stdtesting.T) {
	env, s := newMarket(t)
	testing.RequireSuccess(t, env.Submit(Create(alice, "1", s.start, s.end).StartingPrice(110).Build()))

	testing.RequireError(t, env.Submit(Bid(bob, "1", 200).Build()), core.ErrInvalidStatus)

	env.SetTime(s.end)
	testing.RequireError(t, env.Submit(Bid(bob, "1", 200).Build()), core.ErrInvalidStatus)
	testing.RequireBalance(t, env, bob, 10_000)

	testing.RequireError(t, env.Submit(Bid(bob, "404", 200).Build()), core.ErrNotFound)
}

func TestBidPaymentMismatch(t *stdtesting.T) {
	tests := []struct {
		name string
		tx   testing.Tx
		want error
	}{
		{"no funds", Bid(carol, "1", 150).NoFunds().Build(), core.ErrIncorrectBidPayment},
		{"less than price", Bid(carol, "1", 150).Funds(testing.USD(149)).Build(), core.ErrIncorrectBidPayment},
		{"more than price", Bid(carol, "1", 150).Funds(testing.USD(151)).Build(), core.ErrIncorrectBidPayment},
		{"extra coin", Bid(carol, "1", 150).Funds(testing.USD(150), testing.USD(1)).Build(), core.ErrIncorrectBidPayment},
		{"wrong denom price", Bid(carol, "1", 0).Price(core.NewCoin(150, "uatom")).Build(), core.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *stdtesting.T) {
			env, _ := listed(t, 0)
			env.FundCoin(carol, core.NewCoin(1000, "uatom"))
			testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 140).Build()))

			testing.RequireError(t, env.Submit(tt.tx), tt.want)
			testing.RequireBalance(t, env, bob, 10_000-140)
			testing.RequireBalance(t, env, carol, 10_000)
			assert.Equal(t, bob, env.Auction("1").Auction.HighestBid.Bidder)
		})
	}
}

func TestBidExtendsEndTime(t *stdtesting.T) {
	env, s := listed(t, 0)
	buffer := env.Config().BufferDuration

	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 110).Build()))
	assert.Equal(t, s.end, env.Auction("1").Auction.EndTime, "early bid keeps the schedule")

	late := s.end.Add(-time.Minute)
	env.SetTime(late)
	testing.RequireSuccess(t, env.Submit(Bid(carol, "1", 113).Build()))
	assert.Equal(t, late.Add(buffer), env.Auction("1").Auction.EndTime)

	// still open inside the extension
	env.SetTime(s.end.Add(time.Minute))
	assert.Equal(t, core.StatusOpen, env.Auction("1").Status)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 116).Build()))
	assert.Equal(t, s.end.Add(time.Minute+buffer), env.Auction("1").Auction.EndTime)
}

func TestBidExtensionPastStorableRange(t *stdtesting.T) {
	env, _ := newMarket(t)
	end := time.Unix(0, math.MaxInt64).UTC().Add(-time.Minute)
	start := end.Add(-2 * time.Hour)
	testing.RequireSuccess(t, env.Submit(Create(alice, "1", start, end).StartingPrice(110).Build()))

	env.SetTime(end.Add(-2 * time.Minute))
	testing.AssertNoBalanceChange(t, env, bob, func() {
		testing.RequireError(t, env.Submit(Bid(bob, "1", 110).Build()), core.ErrInvalidStartEndTime)
	})
	got := env.Auction("1")
	assert.Nil(t, got.Auction.HighestBid)
	assert.True(t, got.Auction.EndTime.Equal(end))
}

func TestBidsConserveSupply(t *stdtesting.T) {
	env, _ := listed(t, 0)
	total := uint64(20_000)

	for i, bidder := range []string{bob, carol, bob, carol, bob} {
		amount := uint64(110 + 3*i)
		testing.RequireSuccess(t, env.Submit(Bid(bidder, "1", amount).Build()))
		testing.RequireSupply(t, env, total, everyone...)
		testing.RequireBalance(t, env, testing.Custodian, amount)
	}
}
