package auction

import (
	stdtesting "testing"
	"time"

	"github.com/LeJamon/goAuctiond/internal/testing"
)

const (
	alice  = "alice"
	bob    = "bob"
	carol  = "carol"
	artist = "artist"
)

// schedule is the timeline of one test auction.
type schedule struct {
	start, end time.Time
}

// newMarket returns a market with increment 3 where alice holds items 1-3
// and bob and carol hold 10000 each.
func newMarket(t *stdtesting.T) (*testing.TestEnv, schedule) {
	t.Helper()
	cfg := testing.DefaultConfig()
	cfg.MinBidIncrement = 3

	env := testing.NewTestEnvWithConfig(t, cfg)
	env.Mint(alice, "1", "2", "3")
	env.Fund(10_000, bob, carol)

	start := env.Now().Add(time.Minute)
	return env, schedule{start: start, end: start.Add(2 * time.Hour)}
}

// listed creates the standard auction on item 1 and opens it.
func listed(t *stdtesting.T, reserve uint64) (*testing.TestEnv, schedule) {
	t.Helper()
	env, s := newMarket(t)

	b := Create(alice, "1", s.start, s.end).StartingPrice(110)
	if reserve > 0 {
		b.Reserve(reserve)
	}
	testing.RequireSuccess(t, env.Submit(b.Build()))
	env.SetTime(s.start)
	return env, s
}

var everyone = []string{alice, bob, carol, artist, testing.Collector, testing.Custodian, "treasury"}
