package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/storage/database"
)

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend(" PebBle ")
	require.NoError(t, err)
	assert.Equal(t, BackendPebble, b)

	_, err = ParseBackend("rocksdb")
	assert.ErrorIs(t, err, database.ErrUnknownBackend)
}

func TestOpenDatabasePersists(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []Backend{BackendPebble, BackendBBolt, BackendLevelDB} {
		t.Run(string(backend), func(t *testing.T) {
			dir := t.TempDir()

			db, err := OpenDatabase(backend, dir)
			require.NoError(t, err)
			require.NoError(t, db.Write(ctx, []byte("k"), []byte("v")))
			require.NoError(t, db.Close())

			db, err = OpenDatabase(backend, dir)
			require.NoError(t, err)
			defer db.Close()
			v, err := db.Read(ctx, []byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), v)
		})
	}
}

func TestOpenDatabaseMemory(t *testing.T) {
	db, err := OpenDatabase(BackendMemory, "")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Read(context.Background(), []byte("missing"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func TestOpenDatabaseNeedsDirectory(t *testing.T) {
	_, err := OpenDatabase(BackendPebble, "")
	assert.Error(t, err)
	_, err = OpenDatabase(Backend("rocksdb"), t.TempDir())
	assert.ErrorIs(t, err, database.ErrUnknownBackend)
}
