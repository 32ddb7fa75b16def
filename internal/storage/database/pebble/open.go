package pebble

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Open opens a single standalone database at path. Closing the returned DB
// closes the underlying pebble handle.
func Open(path string) (*DB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return &DB{db: db, owned: true}, nil
}

// OpenMem opens a standalone in-memory database.
func OpenMem() (*DB, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return &DB{db: db, owned: true}, nil
}
