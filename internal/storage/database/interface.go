package database

import (
	"context"
)

// DB defines the basic operations any database implementation must support.
// Keys are ordered bytewise; iterators walk the half-open range [Lower, Upper).
type DB interface {
	// Read Basic operations
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Batch applies every operation atomically or none of them.
	Batch(ctx context.Context, ops []BatchOperation) error
	Iterator(ctx context.Context, opts IterOptions) (Iterator, error)

	Close() error
}

// IterOptions bounds an iteration. A nil bound is unbounded on that side.
type IterOptions struct {
	Lower   []byte
	Upper   []byte
	Reverse bool
}

// Iterator allows traversing over database entries
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// PrefixEnd returns the smallest key greater than every key that starts
// with prefix, or nil when no such key exists.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
