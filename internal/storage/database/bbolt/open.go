package bbolt

import (
	"fmt"

	"go.etcd.io/bbolt"
)

// Open opens a standalone bbolt file holding a single bucket.
func Open(path, bucket string) (*DB, error) {
	db, err := openBucket(path, bucket)
	if err != nil {
		return nil, err
	}
	return &DB{db: db, bucket: []byte(bucket), owned: true}, nil
}

func openBucket(path, bucket string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket for %s: %w", bucket, err)
	}
	return db, nil
}
