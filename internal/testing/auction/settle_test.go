package auction

import (
	stdtesting "testing"
	"time"

	core "github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attr(t *stdtesting.T, ev engine.Event, key string) string {
	t.Helper()
	v, ok := ev.Attr(key)
	require.True(t, ok, "event %s has no attribute %s", ev.Type, key)
	return v
}

// Fee 2%, royalty 10%, price 150: collector 3, artist 15, seller 132.
func TestFinalizePayout(t *stdtesting.T) {
	env, s := listed(t, 150)
	env.SetRoyalty(artist, 1000)

	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 150).Build()))
	assert.True(t, env.Auction("1").ReservePriceMet)

	env.SetTime(s.end)
	result := env.Submit(Finalize(carol, "1"))
	testing.RequireSuccess(t, result)

	testing.RequireBalance(t, env, testing.Collector, 3)
	testing.RequireBalance(t, env, artist, 15)
	testing.RequireBalance(t, env, alice, 132)
	testing.RequireBalance(t, env, testing.Custodian, 0)
	testing.RequireBalance(t, env, bob, 10_000-150)
	testing.RequireOwner(t, env, "1", bob)
	testing.RequireNoAuction(t, env, "1")

	assert.Equal(t, "3uusd", attr(t, result.Events(engine.EventPayoutMarket)[0], "coin"))
	assert.Equal(t, "15uusd", attr(t, result.Events(engine.EventPayoutRoyalty)[0], "coin"))
	assert.Equal(t, "132uusd", attr(t, result.Events(engine.EventPayoutSeller)[0], "coin"))
	assert.Equal(t, bob, attr(t, result.Events(engine.EventFinalizeSale)[0], "buyer"))
	assert.Len(t, result.Events(engine.EventFinalizeAuction), 1)
}

func TestFinalizePaysFundsRecipient(t *stdtesting.T) {
	env, s := newMarket(t)
	testing.RequireSuccess(t, env.Submit(
		Create(alice, "1", s.start, s.end).StartingPrice(110).Reserve(110).FundsRecipient("treasury").Build()))
	env.SetTime(s.start)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 1000).Build()))

	env.SetTime(s.end.Add(48 * time.Hour))
	testing.RequireSuccess(t, env.Submit(Finalize(bob, "1")))

	testing.RequireBalance(t, env, "treasury", 980)
	testing.RequireBalance(t, env, alice, 0)
	testing.RequireBalance(t, env, testing.Collector, 20)
	testing.RequireSupply(t, env, 20_000, everyone...)
}

func TestFinalizeRejected(t *stdtesting.T) {
	env, s := listed(t, 200)

	testing.RequireError(t, env.Submit(Finalize(carol, "1")), core.ErrReservePriceRestriction)

	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 150).Build()))
	env.SetTime(s.end)
	testing.RequireError(t, env.Submit(Finalize(carol, "1")), core.ErrReservePriceRestriction)

	env.SetTime(s.start)
	testing.RequireSuccess(t, env.Submit(Bid(carol, "1", 200).Build()))
	testing.RequireError(t, env.Submit(Finalize(carol, "1")), core.ErrInvalidStatus)

	testing.RequireError(t, env.Submit(Finalize(carol, "404")), core.ErrNotFound)
	assert.NotNil(t, env.Auction("1"))
}

func TestFinalizeWithoutReserveIsRestricted(t *stdtesting.T) {
	env, s := listed(t, 0)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 500).Build()))

	env.SetTime(s.end)
	testing.RequireError(t, env.Submit(Finalize(carol, "1")), core.ErrReservePriceRestriction)

	// the seller can still accept while closed
	testing.RequireSuccess(t, env.Submit(Close(alice, "1").Accept().Build()))
	testing.RequireOwner(t, env, "1", bob)
	testing.RequireBalance(t, env, alice, 490)
	testing.RequireBalance(t, env, testing.Collector, 10)
}

func TestCloseNeverBid(t *stdtesting.T) {
	env, s := listed(t, 210)
	env.SetTime(s.end.Add(time.Hour))

	result := env.Submit(Close(alice, "1").Build())
	testing.RequireSuccess(t, result)

	testing.RequireOwner(t, env, "1", alice)
	testing.RequireNoAuction(t, env, "1")
	assert.Empty(t, result.Events(engine.EventPayoutSeller))
	assert.Empty(t, result.Events(engine.EventFinalizeSale))
	assert.Empty(t, result.Events(engine.EventRefundAuctionBidder))
	require.Len(t, result.Events(engine.EventCloseAuction), 1)
	assert.Equal(t, "false", attr(t, result.Events(engine.EventCloseAuction)[0], "is_sale"))
	testing.RequireSupply(t, env, 20_000, everyone...)
}

func TestCloseRefundsWhenNotAccepted(t *stdtesting.T) {
	env, _ := listed(t, 210)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 150).Build()))

	testing.RequireSuccess(t, env.Submit(Close(alice, "1").Build()))
	testing.RequireBalance(t, env, bob, 10_000)
	testing.RequireOwner(t, env, "1", alice)
	testing.RequireBalance(t, env, testing.Custodian, 0)
}

func TestCloseAcceptBelowReserve(t *stdtesting.T) {
	env, _ := listed(t, 210)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 150).Build()))

	result := env.Submit(Close(alice, "1").Accept().Build())
	testing.RequireSuccess(t, result)
	assert.Equal(t, "true", attr(t, result.Events(engine.EventCloseAuction)[0], "is_sale"))
	testing.RequireOwner(t, env, "1", bob)
	testing.RequireBalance(t, env, alice, 147)
	testing.RequireBalance(t, env, testing.Collector, 3)
}

func TestCloseAcceptWithoutBid(t *stdtesting.T) {
	env, _ := listed(t, 0)

	result := env.Submit(Close(alice, "1").Accept().Build())
	testing.RequireSuccess(t, result)
	assert.Equal(t, "false", attr(t, result.Events(engine.EventCloseAuction)[0], "is_sale"))
	testing.RequireOwner(t, env, "1", alice)
}

func TestCloseRejected(t *stdtesting.T) {
	env, s := newMarket(t)
	testing.RequireSuccess(t, env.Submit(Create(alice, "1", s.start, s.end).StartingPrice(110).Reserve(150).Build()))

	testing.RequireError(t, env.Submit(Close(alice, "1").Build()), core.ErrInvalidStatus)

	env.SetTime(s.start)
	testing.RequireError(t, env.Submit(Close(bob, "1").Build()), core.ErrUnauthorized)
	testing.RequireError(t, env.Submit(Close(alice, "1").Funds(testing.USD(1)).Build()), core.ErrPayment)

	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 150).Build()))
	testing.RequireError(t, env.Submit(Close(alice, "1").Accept().Build()), core.ErrReservePriceRestriction)

	env.SetTime(s.end.Add(env.Config().ClosedDuration))
	testing.RequireError(t, env.Submit(Close(alice, "1").Build()), core.ErrInvalidStatus)
	testing.RequireOwner(t, env, "1", testing.Custodian)
}

func TestVoid(t *stdtesting.T) {
	env, s := listed(t, 500)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 200).Build()))

	env.SetTime(s.end)
	testing.RequireError(t, env.Submit(Void(carol, "1")), core.ErrInvalidStatus)

	env.SetTime(s.end.Add(env.Config().ClosedDuration))
	result := env.Submit(Void(carol, "1"))
	testing.RequireSuccess(t, result)

	testing.RequireBalance(t, env, bob, 10_000)
	testing.RequireOwner(t, env, "1", alice)
	testing.RequireNoAuction(t, env, "1")
	assert.Len(t, result.Events(engine.EventVoidAuction), 1)
	assert.Len(t, result.Events(engine.EventRefundAuctionBidder), 1)
}

func TestVoidReserveMet(t *stdtesting.T) {
	env, s := listed(t, 200)
	testing.RequireSuccess(t, env.Submit(Bid(bob, "1", 200).Build()))

	env.SetTime(s.end.Add(env.Config().ClosedDuration))
	testing.RequireError(t, env.Submit(Void(carol, "1")), core.ErrReservePriceRestriction)
	testing.RequireSuccess(t, env.Submit(Finalize(carol, "1")))
}

func TestSettlementSplitsEveryPrice(t *stdtesting.T) {
	for _, fee := range []uint64{0, 1, 250, 9999, 10_000} {
		for _, royalty := range []uint64{0, 1, 333} {
			if fee+royalty > 10_000 {
				continue
			}
			for _, price := range []uint64{1, 7, 99, 150, 12_345} {
				p, err := engine.SplitPayout(price, fee, royalty)
				require.NoError(t, err)
				require.Equal(t, price, p.Fee+p.Royalty+p.Proceeds, "fee=%d royalty=%d price=%d", fee, royalty, price)
			}
		}
	}
}
