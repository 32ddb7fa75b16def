package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/core/engine/mocks"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/LeJamon/goAuctiond/internal/storage/database/pebble"
)

var genesis = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const custodian = "market"

type fixture struct {
	engine    *engine.Engine
	registry  *mocks.MockItemRegistry
	bank      *mocks.MockAssetTransfer
	royalties *mocks.MockRoyaltyLookup
	funds     *mocks.MockFundsCollector
	sink      *mocks.MockEventSink
	logs      *logtest.Hook
}

func marketConfig() auction.Config {
	return auction.Config{
		ItemRegistry:    "collection",
		Denom:           "uusd",
		Collector:       "fees",
		TradingFeeBps:   200,
		Operators:       []string{"operator"},
		MinPrice:        1,
		MinBidIncrement: 1,
		MinDuration:     time.Hour,
		MaxDuration:     24 * time.Hour,
		ClosedDuration:  time.Hour,
		BufferDuration:  5 * time.Minute,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, err := pebble.OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st, err := store.New(db, store.Options{CacheSize: 16})
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &fixture{
		registry:  mocks.NewMockItemRegistry(ctrl),
		bank:      mocks.NewMockAssetTransfer(ctrl),
		royalties: mocks.NewMockRoyaltyLookup(ctrl),
		funds:     mocks.NewMockFundsCollector(ctrl),
		sink:      mocks.NewMockEventSink(ctrl),
		logs:      hook,
	}
	f.engine, err = engine.New(st, engine.Options{
		Custodian: custodian,
		Registry:  f.registry,
		Bank:      f.bank,
		Royalties: f.royalties,
		Funds:     f.funds,
		Sink:      f.sink,
		Logger:    logrus.NewEntry(logger),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) instantiate(t *testing.T) {
	t.Helper()
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Len(1)).Return(nil)
	_, err := f.engine.Instantiate(context.Background(), "operator", genesis, marketConfig())
	require.NoError(t, err)
}

func (f *fixture) create(t *testing.T, itemID string) {
	t.Helper()
	f.registry.EXPECT().OwnerOf(gomock.Any(), itemID).Return("alice", nil)
	f.registry.EXPECT().Transfer(gomock.Any(), itemID, custodian).Return(nil)
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis,
		Msg: &engine.SetAuction{
			ItemID:        itemID,
			StartTime:     genesis,
			EndTime:       genesis.Add(2 * time.Hour),
			StartingPrice: auction.NewCoin(100, "uusd"),
		},
	})
	require.NoError(t, err)
}

func TestNewRequiresCollaborators(t *testing.T) {
	db, err := pebble.OpenMem()
	require.NoError(t, err)
	defer db.Close()
	st, err := store.New(db, store.Options{})
	require.NoError(t, err)

	_, err = engine.New(nil, engine.Options{})
	assert.Error(t, err)
	_, err = engine.New(st, engine.Options{Custodian: custodian})
	assert.Error(t, err)
}

func TestApplyBeforeInstantiate(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis,
		Msg:    &engine.FinalizeAuction{ItemID: "1"},
	})
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)

	_, err = f.engine.Config(context.Background())
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)
}

func TestInstantiateTwice(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)

	_, err := f.engine.Instantiate(context.Background(), "operator", genesis, marketConfig())
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)
}

func TestCreateMovesItemIntoCustody(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)

	f.registry.EXPECT().OwnerOf(gomock.Any(), "1").Return("alice", nil)
	f.registry.EXPECT().Transfer(gomock.Any(), "1", custodian).Return(nil)
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, events []engine.Event) error {
			require.Len(t, events, 1)
			assert.Equal(t, engine.EventSetAuction, events[0].Type)
			assert.Equal(t, "alice", events[0].Sender)
			return nil
		})

	resp, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis,
		Msg: &engine.SetAuction{
			ItemID:        "1",
			StartTime:     genesis,
			EndTime:       genesis.Add(2 * time.Hour),
			StartingPrice: auction.NewCoin(100, "uusd"),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, engine.TransferItem{ItemID: "1", Recipient: custodian}, resp.Messages[0])

	got, err := f.engine.Auction(context.Background(), "1", genesis)
	require.NoError(t, err)
	assert.Equal(t, auction.StatusOpen, got.Status)
}

func TestFailedTransferRollsBack(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)

	f.registry.EXPECT().OwnerOf(gomock.Any(), "1").Return("alice", nil)
	f.registry.EXPECT().Transfer(gomock.Any(), "1", custodian).Return(errors.New("registry offline"))

	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis,
		Msg: &engine.SetAuction{
			ItemID:        "1",
			StartTime:     genesis,
			EndTime:       genesis.Add(2 * time.Hour),
			StartingPrice: auction.NewCoin(100, "uusd"),
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry offline")

	_, err = f.engine.Auction(context.Background(), "1", genesis)
	assert.ErrorIs(t, err, auction.ErrNotFound)
}

func TestFailedCollectRejectsBid(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)
	f.create(t, "1")

	insufficient := errors.New("insufficient funds")
	price := auction.NewCoin(150, "uusd")
	f.funds.EXPECT().Collect(gomock.Any(), "bob", []auction.Coin{price}).Return(insufficient)

	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "bob",
		Funds:  []auction.Coin{price},
		Now:    genesis.Add(time.Minute),
		Msg:    &engine.PlaceBid{ItemID: "1", Price: price},
	})
	assert.ErrorIs(t, err, auction.ErrPayment)
	assert.ErrorIs(t, err, insufficient)

	got, err := f.engine.Auction(context.Background(), "1", genesis)
	require.NoError(t, err)
	assert.Nil(t, got.Auction.HighestBid)
}

func TestSettlementDispatchOrder(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)
	f.create(t, "1")

	price := auction.NewCoin(150, "uusd")
	f.funds.EXPECT().Collect(gomock.Any(), "bob", []auction.Coin{price}).Return(nil)
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "bob",
		Funds:  []auction.Coin{price},
		Now:    genesis.Add(time.Minute),
		Msg:    &engine.PlaceBid{ItemID: "1", Price: price},
	})
	require.NoError(t, err)

	f.royalties.EXPECT().CollectionTerms(gomock.Any(), "collection").
		Return(&auction.RoyaltyTerms{PaymentAddress: "artist", ShareBps: 1000}, nil)
	gomock.InOrder(
		f.bank.EXPECT().Pay(gomock.Any(), "fees", auction.NewCoin(3, "uusd")).Return(nil),
		f.bank.EXPECT().Pay(gomock.Any(), "artist", auction.NewCoin(15, "uusd")).Return(nil),
		f.bank.EXPECT().Pay(gomock.Any(), "alice", auction.NewCoin(132, "uusd")).Return(nil),
		f.registry.EXPECT().Transfer(gomock.Any(), "1", "bob").Return(nil),
	)
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis.Add(150 * time.Minute),
		Msg:    &engine.CloseAuction{ItemID: "1", AcceptHighestBid: true},
	})
	require.NoError(t, err)
	assert.Len(t, resp.EventsOf(engine.EventFinalizeSale), 1)

	_, err = f.engine.Auction(context.Background(), "1", genesis)
	assert.ErrorIs(t, err, auction.ErrNotFound)
}

func TestFailedPayoutKeepsAuction(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)
	f.create(t, "1")

	price := auction.NewCoin(150, "uusd")
	f.funds.EXPECT().Collect(gomock.Any(), "bob", gomock.Any()).Return(nil)
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "bob",
		Funds:  []auction.Coin{price},
		Now:    genesis.Add(time.Minute),
		Msg:    &engine.PlaceBid{ItemID: "1", Price: price},
	})
	require.NoError(t, err)

	f.royalties.EXPECT().CollectionTerms(gomock.Any(), "collection").Return(nil, nil)
	f.bank.EXPECT().Pay(gomock.Any(), "fees", gomock.Any()).Return(nil)
	f.bank.EXPECT().Pay(gomock.Any(), "alice", gomock.Any()).Return(errors.New("bank unavailable"))

	_, err = f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis.Add(150 * time.Minute),
		Msg:    &engine.CloseAuction{ItemID: "1", AcceptHighestBid: true},
	})
	require.Error(t, err)

	got, err := f.engine.Auction(context.Background(), "1", genesis)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Auction.HighestBidder())
}

func TestSinkFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)

	f.registry.EXPECT().OwnerOf(gomock.Any(), "1").Return("alice", nil)
	f.registry.EXPECT().Transfer(gomock.Any(), "1", custodian).Return(nil)
	f.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("journal full"))

	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "alice",
		Now:    genesis,
		Msg: &engine.SetAuction{
			ItemID:        "1",
			StartTime:     genesis,
			EndTime:       genesis.Add(2 * time.Hour),
			StartingPrice: auction.NewCoin(100, "uusd"),
		},
	})
	require.NoError(t, err)

	var warned bool
	for _, entry := range f.logs.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "Failed to publish events" {
			warned = true
		}
	}
	assert.True(t, warned, "sink failure should be logged")

	_, err = f.engine.Auction(context.Background(), "1", genesis)
	assert.NoError(t, err)
}

func TestRejectedRequestPublishesNothing(t *testing.T) {
	f := newFixture(t)
	f.instantiate(t)

	_, err := f.engine.Apply(context.Background(), engine.Request{
		Sender: "mallory",
		Now:    genesis,
		Msg:    &engine.UpdateConfig{},
	})
	assert.ErrorIs(t, err, auction.ErrUnauthorized)
}
