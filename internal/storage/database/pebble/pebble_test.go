package pebble

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goAuctiond/internal/storage/database/dbtest"
)

func TestPebbleDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auctions")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	dbtest.Run(t, db)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Database directory was not created")
	}
}

func TestPebbleMemDB(t *testing.T) {
	db, err := OpenMem()
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	dbtest.Run(t, db)
}

func TestPebbleReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auctions")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Write(ctx, []byte("k"), []byte("v")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	got, err := db.Read(ctx, []byte("k"))
	if err != nil {
		t.Fatalf("Read after reopen failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Expected %q after reopen, got %q", "v", got)
	}
}
