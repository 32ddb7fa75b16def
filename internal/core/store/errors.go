package store

import "errors"

var (
	// ErrIdentityChanged is returned when an update rewrites the item or seller.
	ErrIdentityChanged = errors.New("auction identity cannot change")
	// ErrTxnDone is returned when a committed or discarded Txn is reused.
	ErrTxnDone = errors.New("transaction already finished")
	// ErrNoConfig is returned before the market configuration is saved.
	ErrNoConfig = errors.New("market configuration not found")
	// ErrUnknownIndex is returned for an unrecognised index name.
	ErrUnknownIndex = errors.New("unknown index")
	// ErrCorruptRecord is returned when a stored value cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)
