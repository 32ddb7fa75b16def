// Package leveldb implements database.DB on top of goleveldb.
package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var syncWrites = &opt.WriteOptions{Sync: true}

type DB struct {
	db *leveldb.DB
}

// Open opens or creates a leveldb database in the directory at path.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if lerrors.IsCorrupted(err) {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

// OpenMem opens a database whose files live in memory only.
func OpenMem() (*DB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory leveldb: %w", err)
	}
	return &DB{db: db}, nil
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}

	value, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, database.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (l *DB) Write(ctx context.Context, key []byte, value []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return l.db.Put(key, value, syncWrites)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return l.db.Delete(key, syncWrites)
}

func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if l.db == nil {
		return database.ErrDBClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			batch.Put(op.Key, op.Value)
		case database.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}
	return l.db.Write(batch, syncWrites)
}

func (l *DB) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

type Iterator struct {
	iter    iterator.Iterator
	reverse bool
	started bool
}

func (l *DB) Iterator(ctx context.Context, opts database.IterOptions) (database.Iterator, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}

	return &Iterator{
		iter:    l.db.NewIterator(&util.Range{Start: opts.Lower, Limit: opts.Upper}, nil),
		reverse: opts.Reverse,
	}, nil
}

func (i *Iterator) Next() bool {
	if !i.started {
		i.started = true
		if i.reverse {
			return i.iter.Last()
		}
		return i.iter.First()
	}
	if i.reverse {
		return i.iter.Prev()
	}
	return i.iter.Next()
}

func (i *Iterator) Key() []byte {
	return append([]byte(nil), i.iter.Key()...)
}

func (i *Iterator) Value() []byte {
	return append([]byte(nil), i.iter.Value()...)
}

func (i *Iterator) Error() error {
	return i.iter.Error()
}

func (i *Iterator) Close() error {
	i.iter.Release()
	return nil
}
