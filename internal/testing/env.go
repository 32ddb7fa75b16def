package testing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/LeJamon/goAuctiond/internal/ledger"
	"github.com/LeJamon/goAuctiond/internal/storage/database/pebble"
	"github.com/sirupsen/logrus"
)

// Well-known accounts of every TestEnv market.
const (
	Custodian  = "market"
	Collector  = "collector"
	Operator   = "operator"
	Collection = "collection"
)

// DefaultConfig returns the market configuration used by NewTestEnv.
func DefaultConfig() auction.Config {
	return auction.Config{
		ItemRegistry:    Collection,
		Denom:           Denom,
		Collector:       Collector,
		TradingFeeBps:   200,
		Operators:       []string{Operator},
		MinPrice:        1,
		MinBidIncrement: 1,
		MinDuration:     time.Hour,
		MaxDuration:     7 * 24 * time.Hour,
		ClosedDuration:  24 * time.Hour,
		BufferDuration:  10 * time.Minute,
	}
}

// Tx is a request waiting to be submitted. The TestEnv stamps it with the
// clock time on submission.
type Tx struct {
	Sender string
	Funds  []auction.Coin
	Op     engine.Operation
}

// EventLog is an engine.EventSink recording every published event.
type EventLog struct {
	mu     sync.Mutex
	events []engine.Event
}

func (l *EventLog) Publish(_ context.Context, events []engine.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, events...)
	return nil
}

// All returns every event recorded so far.
func (l *EventLog) All() []engine.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]engine.Event(nil), l.events...)
}

// TestEnv is a market running over an in-memory pebble database with the
// local ledger as its collaborators.
type TestEnv struct {
	t      *testing.T
	store  *store.Store
	ledger *ledger.Ledger
	engine *engine.Engine
	clock  *ManualClock
	events *EventLog
}

// NewTestEnv creates a market instantiated with DefaultConfig.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithConfig(t, DefaultConfig())
}

// NewTestEnvWithConfig creates a market instantiated with cfg.
func NewTestEnvWithConfig(t *testing.T, cfg auction.Config) *TestEnv {
	t.Helper()

	db, err := pebble.OpenMem()
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st, err := store.New(db, store.Options{CacheSize: 64, Compression: store.CompressionLZ4})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	l := ledger.New(Custodian, st.Codec())
	events := &EventLog{}
	eng, err := engine.New(st, engine.Options{
		Custodian: Custodian,
		Registry:  l,
		Bank:      l,
		Royalties: l,
		Funds:     l,
		Sink:      events,
		Logger:    logrus.NewEntry(logger),
	})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	env := &TestEnv{
		t:      t,
		store:  st,
		ledger: l,
		engine: eng,
		clock:  NewManualClock(),
		events: events,
	}

	if _, err := eng.Instantiate(context.Background(), Operator, env.Now(), cfg); err != nil {
		t.Fatalf("Failed to instantiate market: %v", err)
	}
	return env
}

func (e *TestEnv) Engine() *engine.Engine { return e.engine }
func (e *TestEnv) Ledger() *ledger.Ledger { return e.ledger }
func (e *TestEnv) Store() *store.Store    { return e.store }
func (e *TestEnv) Clock() *ManualClock    { return e.clock }

// Now returns the current time of the environment clock.
func (e *TestEnv) Now() time.Time {
	return e.clock.Now()
}

// Advance moves the environment clock forward.
func (e *TestEnv) Advance(d time.Duration) {
	e.clock.Advance(d)
}

// SetTime moves the environment clock to t.
func (e *TestEnv) SetTime(t time.Time) {
	e.clock.Set(t)
}

func (e *TestEnv) update(fn func(view store.KV) error) {
	e.t.Helper()
	if err := e.engine.Update(context.Background(), fn); err != nil {
		e.t.Fatalf("Ledger update failed: %v", err)
	}
}

// Fund credits each account with amount of the test denomination.
func (e *TestEnv) Fund(amount uint64, accounts ...string) {
	e.t.Helper()
	e.update(func(view store.KV) error {
		for _, acc := range accounts {
			if err := e.ledger.Fund(view, acc, USD(amount)); err != nil {
				return err
			}
		}
		return nil
	})
}

// FundCoin credits account with a coin of any denomination.
func (e *TestEnv) FundCoin(account string, c auction.Coin) {
	e.t.Helper()
	e.update(func(view store.KV) error {
		return e.ledger.Fund(view, account, c)
	})
}

// Mint registers items held by owner.
func (e *TestEnv) Mint(owner string, itemIDs ...string) {
	e.t.Helper()
	e.update(func(view store.KV) error {
		for _, id := range itemIDs {
			if err := e.ledger.Mint(view, id, owner); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetRoyalty attaches a royalty to the market's collection.
func (e *TestEnv) SetRoyalty(paymentAddress string, shareBps uint64) {
	e.t.Helper()
	e.update(func(view store.KV) error {
		return e.ledger.SetRoyalty(view, Collection, &auction.RoyaltyTerms{PaymentAddress: paymentAddress, ShareBps: shareBps})
	})
}

// Submit applies tx at the current clock time.
func (e *TestEnv) Submit(tx Tx) Result {
	e.t.Helper()
	resp, err := e.engine.Apply(context.Background(), engine.Request{
		Sender: tx.Sender,
		Funds:  tx.Funds,
		Now:    e.Now(),
		Msg:    tx.Op,
	})
	return Result{Response: resp, Err: err}
}

// Balance returns the test denomination balance of account.
func (e *TestEnv) Balance(account string) uint64 {
	e.t.Helper()
	var bal uint64
	err := e.engine.View(context.Background(), func(view store.KV) error {
		var err error
		bal, err = e.ledger.Balance(view, account, Denom)
		return err
	})
	if err != nil {
		e.t.Fatalf("Failed to read balance of %s: %v", account, err)
	}
	return bal
}

// Owner returns the current holder of an item.
func (e *TestEnv) Owner(itemID string) string {
	e.t.Helper()
	var owner string
	err := e.engine.View(context.Background(), func(view store.KV) error {
		var err error
		owner, err = e.ledger.OwnerOf(view, itemID)
		return err
	})
	if err != nil {
		e.t.Fatalf("Failed to read owner of %s: %v", itemID, err)
	}
	return owner
}

// Auction returns the auction of an item at the current time, or nil when
// none is live.
func (e *TestEnv) Auction(itemID string) *engine.AuctionResponse {
	e.t.Helper()
	resp, err := e.engine.Auction(context.Background(), itemID, e.Now())
	if errors.Is(err, auction.ErrNotFound) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("Failed to query auction %s: %v", itemID, err)
	}
	return resp
}

// Config returns the committed market configuration.
func (e *TestEnv) Config() *auction.Config {
	e.t.Helper()
	cfg, err := e.engine.Config(context.Background())
	if err != nil {
		e.t.Fatalf("Failed to query config: %v", err)
	}
	return cfg
}

// Events returns every event published so far.
func (e *TestEnv) Events() []engine.Event {
	return e.events.All()
}
