// Package relationaldb keeps the event journal: an append-only SQL history
// of the events every committed request emitted.
package relationaldb

import (
	"context"
	"time"
)

// Entry is one journaled event.
type Entry struct {
	// Seq orders entries in append order. It is assigned by the database.
	Seq int64 `json:"seq"`
	// ID identifies the entry.
	ID string `json:"id"`
	// RequestID groups the entries of one committed request.
	RequestID  string      `json:"request_id"`
	Type       string      `json:"type"`
	ItemID     string      `json:"item_id,omitempty"`
	Sender     string      `json:"sender"`
	Time       time.Time   `json:"time"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute is a key/value pair of an entry.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	ItemID string
	Type   string
	Sender string
	// AfterSeq returns entries appended after this sequence number.
	AfterSeq int64
	// Limit caps the result; zero means DefaultLimit.
	Limit int
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Database is a journal backend.
type Database interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error

	// Append stores entries atomically, in order.
	Append(ctx context.Context, entries []Entry) error
	// Entries returns the entries matching f in append order.
	Entries(ctx context.Context, f Filter) ([]Entry, error)
	// Count returns the number of journaled entries.
	Count(ctx context.Context) (int64, error)
}
