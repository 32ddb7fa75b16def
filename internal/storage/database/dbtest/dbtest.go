// Package dbtest holds a conformance suite shared by every database backend.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/LeJamon/goAuctiond/internal/storage/database"
)

// Run exercises db against the contract documented on database.DB.
func Run(t *testing.T, db database.DB) {
	t.Helper()
	ctx := context.Background()

	t.Run("Write and Read", func(t *testing.T) {
		key := []byte("test-key")
		value := []byte("test-value")

		if err := db.Write(ctx, key, value); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		got, err := db.Read(ctx, key)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if string(got) != string(value) {
			t.Errorf("Read returned wrong value: got %s, want %s", got, value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		key := []byte("test-key")

		if err := db.Delete(ctx, key); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err := db.Read(ctx, key)
		if !errors.Is(err, database.ErrKeyNotFound) {
			t.Errorf("Expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("Batch Operations", func(t *testing.T) {
		ops := []database.BatchOperation{
			{Type: database.BatchPut, Key: []byte("key1"), Value: []byte("value1")},
			{Type: database.BatchPut, Key: []byte("key2"), Value: []byte("value2")},
			{Type: database.BatchDelete, Key: []byte("key1")},
		}

		if err := db.Batch(ctx, ops); err != nil {
			t.Fatalf("Batch failed: %v", err)
		}

		if _, err := db.Read(ctx, []byte("key1")); !errors.Is(err, database.ErrKeyNotFound) {
			t.Errorf("Expected key1 to be deleted, got %v", err)
		}

		value, err := db.Read(ctx, []byte("key2"))
		if err != nil {
			t.Fatalf("Read key2 failed: %v", err)
		}
		if string(value) != "value2" {
			t.Errorf("Wrong value for key2: got %s, want value2", value)
		}
	})

	t.Run("Iterator bounds and order", func(t *testing.T) {
		var ops []database.BatchOperation
		for i := 0; i < 5; i++ {
			ops = append(ops, database.BatchOperation{
				Type:  database.BatchPut,
				Key:   []byte(fmt.Sprintf("it/%d", i)),
				Value: []byte(fmt.Sprintf("v%d", i)),
			})
		}
		if err := db.Batch(ctx, ops); err != nil {
			t.Fatalf("Batch failed: %v", err)
		}

		forward := collect(t, db, database.IterOptions{Lower: []byte("it/1"), Upper: []byte("it/4")})
		if want := []string{"it/1", "it/2", "it/3"}; !equal(forward, want) {
			t.Errorf("forward iteration: got %v, want %v", forward, want)
		}

		reverse := collect(t, db, database.IterOptions{Lower: []byte("it/1"), Upper: []byte("it/4"), Reverse: true})
		if want := []string{"it/3", "it/2", "it/1"}; !equal(reverse, want) {
			t.Errorf("reverse iteration: got %v, want %v", reverse, want)
		}

		prefix := []byte("it/")
		all := collect(t, db, database.IterOptions{Lower: prefix, Upper: database.PrefixEnd(prefix)})
		if len(all) != 5 {
			t.Errorf("prefix iteration returned %d keys, want 5", len(all))
		}
	})
}

func collect(t *testing.T, db database.DB, opts database.IterOptions) []string {
	t.Helper()
	iter, err := db.Iterator(context.Background(), opts)
	if err != nil {
		t.Fatalf("Iterator creation failed: %v", err)
	}
	defer func() {
		if err := iter.Close(); err != nil {
			t.Fatalf("Iterator close failed: %v", err)
		}
	}()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		t.Errorf("Iterator error: %v", err)
	}
	return keys
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
