// Package storage selects the key/value backend the auction store runs on.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LeJamon/goAuctiond/internal/storage/database"
	"github.com/LeJamon/goAuctiond/internal/storage/database/bbolt"
	"github.com/LeJamon/goAuctiond/internal/storage/database/leveldb"
	"github.com/LeJamon/goAuctiond/internal/storage/database/pebble"
)

// Backend names a key/value implementation.
type Backend string

const (
	BackendPebble  Backend = "pebble"
	BackendBBolt   Backend = "bbolt"
	BackendLevelDB Backend = "leveldb"
	// BackendMemory is pebble over an in-memory filesystem.
	BackendMemory Backend = "memory"
)

// Backends lists the supported backends.
var Backends = []Backend{BackendPebble, BackendBBolt, BackendLevelDB, BackendMemory}

// ParseBackend resolves a backend name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", database.ErrUnknownBackend, name)
}

const bucketName = "auctiond"

// OpenDatabase opens the database of backend under dir. The returned DB owns
// its handle: closing it releases the files.
func OpenDatabase(backend Backend, dir string) (database.DB, error) {
	if backend == BackendMemory {
		db, err := pebble.OpenMem()
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	if dir == "" {
		return nil, fmt.Errorf("storage: %s backend needs a data directory", backend)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var (
		db  database.DB
		err error
	)
	switch backend {
	case BackendPebble:
		db, err = pebble.Open(filepath.Join(dir, "pebble"))
	case BackendBBolt:
		db, err = bbolt.Open(filepath.Join(dir, bucketName+".db"), bucketName)
	case BackendLevelDB:
		db, err = leveldb.Open(filepath.Join(dir, "leveldb"))
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	return db, nil
}
