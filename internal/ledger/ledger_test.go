package ledger

import (
	"context"
	"testing"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/LeJamon/goAuctiond/internal/storage/database/leveldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Ledger, *store.Txn) {
	t.Helper()
	db, err := leveldb.OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := store.New(db, store.Options{})
	require.NoError(t, err)

	txn := st.Begin(context.Background())
	t.Cleanup(txn.Discard)
	return New("market", st.Codec()), txn
}

func TestFundAndPay(t *testing.T) {
	l, view := setup(t)

	require.NoError(t, l.Fund(view, "bob", auction.NewCoin(500, "uusd")))
	require.NoError(t, l.Collect(view, "bob", []auction.Coin{auction.NewCoin(200, "uusd")}))

	bal, err := l.Balance(view, "bob", "uusd")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), bal)

	bal, err = l.Balance(view, "market", "uusd")
	require.NoError(t, err)
	assert.Equal(t, uint64(200), bal)

	require.NoError(t, l.Pay(view, "alice", auction.NewCoin(150, "uusd")))
	err = l.Pay(view, "alice", auction.NewCoin(51, "uusd"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	bal, err = l.Balance(view, "alice", "uusd")
	require.NoError(t, err)
	assert.Equal(t, uint64(150), bal)

	// zero payments are no-ops
	require.NoError(t, l.Pay(view, "carol", auction.NewCoin(0, "uusd")))

	err = l.Collect(view, "bob", []auction.Coin{auction.NewCoin(1, "uatom")})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestItems(t *testing.T) {
	l, view := setup(t)

	_, err := l.OwnerOf(view, "1")
	assert.ErrorIs(t, err, ErrUnknownItem)

	require.NoError(t, l.Mint(view, "1", "alice"))
	assert.ErrorIs(t, l.Mint(view, "1", "bob"), ErrItemExists)

	owner, err := l.OwnerOf(view, "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)

	require.NoError(t, l.Transfer(view, "1", "market"))
	owner, err = l.OwnerOf(view, "1")
	require.NoError(t, err)
	assert.Equal(t, "market", owner)

	assert.ErrorIs(t, l.Transfer(view, "2", "bob"), ErrUnknownItem)
}

func TestRoyalty(t *testing.T) {
	l, view := setup(t)

	terms, err := l.CollectionTerms(view, "collection")
	require.NoError(t, err)
	assert.Nil(t, terms)

	want := &auction.RoyaltyTerms{PaymentAddress: "artist", ShareBps: 1000}
	require.NoError(t, l.SetRoyalty(view, "collection", want))

	terms, err = l.CollectionTerms(view, "collection")
	require.NoError(t, err)
	assert.Equal(t, want, terms)

	assert.ErrorIs(t, l.SetRoyalty(view, "collection", &auction.RoyaltyTerms{PaymentAddress: "artist", ShareBps: 10001}), ErrInvalidRoyalty)
	assert.ErrorIs(t, l.SetRoyalty(view, "collection", &auction.RoyaltyTerms{ShareBps: 10}), ErrInvalidRoyalty)

	require.NoError(t, l.SetRoyalty(view, "collection", nil))
	terms, err = l.CollectionTerms(view, "collection")
	require.NoError(t, err)
	assert.Nil(t, terms)
}
