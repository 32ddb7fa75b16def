package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/storage/database"
)

// KV is the raw read/write view of a unit of work. Collaborators keeping
// state in the auction database write through it so their effects commit
// or vanish together with the auction records.
type KV interface {
	// Read returns database.ErrKeyNotFound for absent keys.
	Read(key []byte) ([]byte, error)
	Write(key, value []byte) error
	Delete(key []byte) error
}

type write struct {
	value   []byte
	deleted bool
}

// Txn buffers writes over committed state. It is not safe for concurrent use.
type Txn struct {
	ctx   context.Context
	store *Store

	writes  map[string]write
	order   []string
	touched map[string]struct{}
	done    bool
}

var _ KV = (*Txn)(nil)

func (t *Txn) Read(key []byte) ([]byte, error) {
	if t.done {
		return nil, ErrTxnDone
	}
	if w, ok := t.writes[string(key)]; ok {
		if w.deleted {
			return nil, database.ErrKeyNotFound
		}
		return append([]byte(nil), w.value...), nil
	}
	return t.store.db.Read(t.ctx, key)
}

func (t *Txn) Write(key, value []byte) error {
	return t.set(key, write{value: append([]byte{}, value...)})
}

func (t *Txn) Delete(key []byte) error {
	return t.set(key, write{deleted: true})
}

func (t *Txn) set(key []byte, w write) error {
	if t.done {
		return ErrTxnDone
	}
	k := string(key)
	if _, ok := t.writes[k]; !ok {
		t.order = append(t.order, k)
	}
	t.writes[k] = w
	return nil
}

// Get loads an auction as seen by this unit of work.
func (t *Txn) Get(itemID string) (*auction.Auction, bool, error) {
	if t.done {
		return nil, false, ErrTxnDone
	}
	w, ok := t.writes[string(recordKey(itemID))]
	if !ok {
		return t.store.Get(t.ctx, itemID)
	}
	if w.deleted {
		return nil, false, nil
	}
	a, err := t.store.codec.decodeAuction(w.value)
	if err != nil {
		return nil, false, fmt.Errorf("auction %s: %w", itemID, err)
	}
	return a, true, nil
}

// Create saves a new auction with its index entries.
func (t *Txn) Create(a *auction.Auction) error {
	_, found, err := t.Get(a.ItemID)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("%w: item %s", auction.ErrAlreadyExists, a.ItemID)
	}
	return t.put(a)
}

// Update loads an auction, applies fn to a copy and rewrites the record and
// its index entries. The item and seller cannot change.
func (t *Txn) Update(itemID string, fn func(*auction.Auction) error) error {
	old, found, err := t.Get(itemID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: item %s", auction.ErrNotFound, itemID)
	}

	next := old.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if next.ItemID != old.ItemID || next.Seller != old.Seller {
		return ErrIdentityChanged
	}

	if err := t.deleteIndexes(old); err != nil {
		return err
	}
	return t.put(next)
}

// Remove deletes an auction and every index entry pointing at it.
func (t *Txn) Remove(itemID string) error {
	old, found, err := t.Get(itemID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: item %s", auction.ErrNotFound, itemID)
	}

	if err := t.Delete(recordKey(itemID)); err != nil {
		return err
	}
	t.touched[itemID] = struct{}{}
	return t.deleteIndexes(old)
}

func (t *Txn) put(a *auction.Auction) error {
	if len(a.Seller) > math.MaxUint16 || len(a.HighestBidder()) > math.MaxUint16 {
		return fmt.Errorf("account name too long for item %s", a.ItemID)
	}

	data, err := t.store.codec.encodeAuction(a)
	if err != nil {
		return fmt.Errorf("failed to encode auction %s: %w", a.ItemID, err)
	}
	if err := t.Write(recordKey(a.ItemID), data); err != nil {
		return err
	}
	t.touched[a.ItemID] = struct{}{}

	for _, idx := range Indexes {
		if err := t.Write(indexKey(idx, a), []byte(a.ItemID)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Txn) deleteIndexes(a *auction.Auction) error {
	for _, idx := range Indexes {
		if err := t.Delete(indexKey(idx, a)); err != nil {
			return err
		}
	}
	return nil
}

// Config loads the market configuration as seen by this unit of work.
func (t *Txn) Config() (*auction.Config, error) {
	data, err := t.Read(configKey)
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return t.store.decodeConfig(data)
}

// SaveConfig writes the market configuration.
func (t *Txn) SaveConfig(cfg *auction.Config) error {
	data, err := t.store.codec.Marshal(toConfigRecord(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return t.Write(configKey, data)
}

// Len returns the number of keys written or deleted so far.
func (t *Txn) Len() int {
	return len(t.order)
}

// Commit flushes every buffered write as one database batch.
func (t *Txn) Commit() error {
	if t.done {
		return ErrTxnDone
	}
	t.done = true

	if len(t.order) == 0 {
		return nil
	}

	ops := make([]database.BatchOperation, 0, len(t.order))
	for _, k := range t.order {
		w := t.writes[k]
		if w.deleted {
			ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: []byte(k)})
		} else {
			ops = append(ops, database.BatchOperation{Type: database.BatchPut, Key: []byte(k), Value: w.value})
		}
	}

	err := t.store.db.Batch(t.ctx, ops)
	for itemID := range t.touched {
		t.store.cache.invalidate(itemID)
	}
	if err != nil {
		return fmt.Errorf("failed to commit %d writes: %w", len(ops), err)
	}
	return nil
}

// Discard drops every buffered write.
func (t *Txn) Discard() {
	t.done = true
	t.writes = nil
	t.order = nil
}
