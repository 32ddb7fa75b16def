// Package engine applies auction operations: lifecycle gating, bid
// admission, settlement and configuration, each request as one atomic unit
// of work over the record store and the collaborators.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/sirupsen/logrus"
)

// Options wires an Engine to its collaborators.
type Options struct {
	// Custodian is the account holding items and funds while auctions run.
	Custodian string

	Registry  ItemRegistry
	Bank      AssetTransfer
	Royalties RoyaltyLookup

	// Funds, when set, collects the funds attached to every request into
	// custody before the operation runs.
	Funds FundsCollector

	// Sink, when set, receives the events of every committed request.
	Sink EventSink

	Logger *logrus.Entry
}

// Engine serializes requests against a Store. Apply holds the write lock for
// the whole unit of work; queries take the read lock.
type Engine struct {
	mu sync.RWMutex

	store     *store.Store
	custodian string
	registry  ItemRegistry
	bank      AssetTransfer
	royalties RoyaltyLookup
	funds     FundsCollector
	sink      EventSink
	log       *logrus.Entry
}

func New(st *store.Store, opts Options) (*Engine, error) {
	switch {
	case st == nil:
		return nil, errors.New("engine: store is required")
	case opts.Custodian == "":
		return nil, errors.New("engine: custodian is required")
	case opts.Registry == nil:
		return nil, errors.New("engine: item registry is required")
	case opts.Bank == nil:
		return nil, errors.New("engine: asset transfer is required")
	}

	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Engine{
		store:     st,
		custodian: opts.Custodian,
		registry:  opts.Registry,
		bank:      opts.Bank,
		royalties: opts.Royalties,
		funds:     opts.Funds,
		sink:      opts.Sink,
		log:       log.WithField("component", "engine"),
	}, nil
}

// Custodian returns the account holding items and funds in custody.
func (e *Engine) Custodian() string {
	return e.custodian
}

// Operation is implemented by every request message.
type Operation interface {
	// Name identifies the operation in logs.
	Name() string
	Apply(ctx *ApplyContext) error
}

// Request is one call into the engine.
type Request struct {
	Sender string
	// Funds are attached to the request and collected into custody.
	Funds []auction.Coin
	// Now is the time the request is evaluated at.
	Now time.Time
	Msg Operation
}

// Response reports what a committed request did.
type Response struct {
	Events   []Event   `json:"events"`
	Messages []Message `json:"-"`
}

// EventsOf returns the events of the given type, in emission order.
func (r *Response) EventsOf(typ string) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// Instantiate saves the genesis market configuration. It can only run once.
func (e *Engine) Instantiate(ctx context.Context, sender string, now time.Time, cfg auction.Config) (*Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(ctx)
	defer txn.Discard()

	if _, err := txn.Config(); err == nil {
		return nil, fmt.Errorf("%w: market already instantiated", auction.ErrInvalidConfig)
	} else if !errors.Is(err, store.ErrNoConfig) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := txn.SaveConfig(&cfg); err != nil {
		return nil, err
	}

	resp := &Response{}
	actx := &ApplyContext{Txn: txn, Config: &cfg, Sender: sender, Now: now, Engine: e, resp: resp}
	actx.Emit(EventInstantiate, "",
		attr("denom", cfg.Denom),
		attr("item_registry", cfg.ItemRegistry),
		attr("collector", cfg.Collector),
	)

	if err := txn.Commit(); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{"denom": cfg.Denom, "operators": cfg.Operators}).Info("Market instantiated")
	e.publish(ctx, resp.Events)
	return resp, nil
}

// Apply runs req as one unit of work. On error nothing is written, no
// collaborator effect takes place and no event is published.
func (e *Engine) Apply(ctx context.Context, req Request) (*Response, error) {
	if req.Msg == nil {
		return nil, errors.New("engine: request has no message")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.log.WithFields(logrus.Fields{"op": req.Msg.Name(), "sender": req.Sender})

	resp, err := e.apply(ctx, req)
	if err != nil {
		log.WithError(err).Debug("Request rejected")
		return nil, err
	}

	log.WithField("events", len(resp.Events)).Debug("Request applied")
	e.publish(ctx, resp.Events)
	return resp, nil
}

func (e *Engine) apply(ctx context.Context, req Request) (*Response, error) {
	txn := e.store.Begin(ctx)
	defer txn.Discard()

	cfg, err := txn.Config()
	if errors.Is(err, store.ErrNoConfig) {
		return nil, fmt.Errorf("%w: market not instantiated", auction.ErrInvalidConfig)
	}
	if err != nil {
		return nil, err
	}

	if len(req.Funds) > 0 && e.funds != nil {
		if err := e.funds.Collect(txn, req.Sender, req.Funds); err != nil {
			return nil, fmt.Errorf("%w: %w", auction.ErrPayment, err)
		}
	}

	resp := &Response{}
	actx := &ApplyContext{
		Txn:    txn,
		Config: cfg,
		Sender: req.Sender,
		Funds:  req.Funds,
		Now:    req.Now,
		Engine: e,
		resp:   resp,
	}
	if err := req.Msg.Apply(actx); err != nil {
		return nil, err
	}

	for _, m := range resp.Messages {
		if err := m.dispatch(e, txn); err != nil {
			return nil, err
		}
	}

	if err := txn.Commit(); err != nil {
		return nil, err
	}
	return resp, nil
}

// publish hands committed events to the sink. The request has already
// committed, so a sink failure is logged and not returned.
func (e *Engine) publish(ctx context.Context, events []Event) {
	if e.sink == nil || len(events) == 0 {
		return
	}
	if err := e.sink.Publish(ctx, events); err != nil {
		e.log.WithError(err).WithField("events", len(events)).Warn("Failed to publish events")
	}
}

// View runs fn against a read-only snapshot of committed state.
func (e *Engine) View(ctx context.Context, fn func(view store.KV) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	txn := e.store.Begin(ctx)
	defer txn.Discard()
	return fn(txn)
}

// Update runs fn in a read-write unit of work and commits it when fn
// succeeds. It serves administrative writes to collaborator state kept in
// the same database, such as funding accounts.
func (e *Engine) Update(ctx context.Context, fn func(view store.KV) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(ctx)
	defer txn.Discard()
	if err := fn(txn); err != nil {
		return err
	}
	return txn.Commit()
}
