package bbolt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/storage/database"
	"go.etcd.io/bbolt"
)

type DB struct {
	db     *bbolt.DB
	bucket []byte
	owned  bool
}

func NewDB(db *bbolt.DB, bucket []byte) *DB {
	return &DB{
		db:     db,
		bucket: bucket,
	}
}

func (b *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}

	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", string(b.bucket))
		}

		v := bucket.Get(key)
		if v == nil {
			return database.ErrKeyNotFound
		}

		// bbolt values are only valid for the life of the transaction
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (b *DB) Write(ctx context.Context, key []byte, value []byte) error {
	if b.db == nil {
		return database.ErrDBClosed
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", string(b.bucket))
		}
		return bucket.Put(key, value)
	})
}

func (b *DB) Delete(ctx context.Context, key []byte) error {
	if b.db == nil {
		return database.ErrDBClosed
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", string(b.bucket))
		}
		return bucket.Delete(key)
	})
}

// Batch runs every operation in one read-write transaction.
func (b *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if b.db == nil {
		return database.ErrDBClosed
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", string(b.bucket))
		}

		for _, op := range ops {
			var err error
			switch op.Type {
			case database.BatchPut:
				err = bucket.Put(op.Key, op.Value)
			case database.BatchDelete:
				err = bucket.Delete(op.Key)
			default:
				return fmt.Errorf("unknown batch operation type: %d", op.Type)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *DB) Close() error {
	if b.db == nil || !b.owned {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

type Iterator struct {
	tx      *bbolt.Tx
	cursor  *bbolt.Cursor
	lower   []byte
	upper   []byte
	reverse bool
	started bool
	current struct {
		key, value []byte
	}
	err error
}

func (b *DB) Iterator(ctx context.Context, opts database.IterOptions) (database.Iterator, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}

	tx, err := b.db.Begin(false) // Read-only transaction
	if err != nil {
		return nil, err
	}

	bucket := tx.Bucket(b.bucket)
	if bucket == nil {
		tx.Rollback()
		return nil, fmt.Errorf("bucket %s not found", string(b.bucket))
	}

	return &Iterator{
		tx:      tx,
		cursor:  bucket.Cursor(),
		lower:   opts.Lower,
		upper:   opts.Upper,
		reverse: opts.Reverse,
	}, nil
}

func (it *Iterator) Next() bool {
	var k, v []byte
	switch {
	case !it.started && it.reverse:
		k, v = it.seekLast()
	case !it.started:
		if it.lower == nil {
			k, v = it.cursor.First()
		} else {
			k, v = it.cursor.Seek(it.lower)
		}
	case it.reverse:
		k, v = it.cursor.Prev()
	default:
		k, v = it.cursor.Next()
	}
	it.started = true

	if k == nil || !it.inRange(k) {
		it.current.key = nil
		it.current.value = nil
		return false
	}

	it.current.key = k
	it.current.value = v
	return true
}

// seekLast positions the cursor on the greatest key below the upper bound.
func (it *Iterator) seekLast() ([]byte, []byte) {
	if it.upper == nil {
		return it.cursor.Last()
	}
	k, _ := it.cursor.Seek(it.upper)
	if k == nil {
		return it.cursor.Last()
	}
	return it.cursor.Prev()
}

func (it *Iterator) inRange(k []byte) bool {
	if it.lower != nil && bytes.Compare(k, it.lower) < 0 {
		return false
	}
	if it.upper != nil && bytes.Compare(k, it.upper) >= 0 {
		return false
	}
	return true
}

func (it *Iterator) Key() []byte {
	return it.current.key
}

func (it *Iterator) Value() []byte {
	return it.current.value
}

func (it *Iterator) Error() error {
	return it.err
}

func (it *Iterator) Close() error {
	return it.tx.Rollback()
}
