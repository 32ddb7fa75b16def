package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

var genesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(d time.Duration) string {
	return genesis.Add(d).Format(time.RFC3339)
}

// writeConfig writes a market configuration keeping all state under a
// temporary directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	conf := filepath.Join(dir, "auctiond.toml")
	content := fmt.Sprintf(`[storage]
backend = "pebble"
path = %q

[journal]
driver = "sqlite"
database = %q

[market]
collector = "collector"
trading_fee_bps = 200
operators = ["operator"]
min_duration = "1h"
closed_duration = "1h"
buffer_duration = "5m"
`, filepath.Join(dir, "data"), filepath.Join(dir, "journal.db"))
	require.NoError(t, os.WriteFile(conf, []byte(content), 0o644))
	return conf
}

func run(t *testing.T, conf string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--conf", conf, "--quiet"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, conf string, args ...string) string {
	t.Helper()
	out, err := run(t, conf, args...)
	require.NoError(t, err, "auctiond %v", args)
	return out
}

func decode(t *testing.T, out string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

type eventsOutput struct {
	Events []struct {
		Type string `json:"type"`
	} `json:"events"`
}

func eventTypes(t *testing.T, out string) []string {
	var resp eventsOutput
	decode(t, out, &resp)
	types := make([]string, len(resp.Events))
	for i, ev := range resp.Events {
		types[i] = ev.Type
	}
	return types
}

func balance(t *testing.T, conf, account string) uint64 {
	t.Helper()
	var b balanceOutput
	decode(t, mustRun(t, conf, "ledger", "balance", account), &b)
	assert.Equal(t, "uusd", b.Denom)
	return b.Amount
}

func TestAuctionLifecycle(t *testing.T) {
	conf := writeConfig(t)

	out := mustRun(t, conf, "init", "--from", "admin", "--now", at(0))
	assert.Equal(t, []string{"instantiate"}, eventTypes(t, out))

	mustRun(t, conf, "ledger", "mint", "item-1", "alice")
	mustRun(t, conf, "ledger", "fund", "bob", "500")
	assert.Equal(t, uint64(500), balance(t, conf, "bob"))

	out = mustRun(t, conf, "auction", "create", "item-1", "--from", "alice", "--now", at(0),
		"--start", "1m", "--end", "2h", "--starting-price", "100", "--reserve-price", "150uusd")
	assert.Contains(t, eventTypes(t, out), "set-auction")

	var owner map[string]string
	decode(t, mustRun(t, conf, "ledger", "owner", "item-1"), &owner)
	assert.Equal(t, "market", owner["owner"])

	out = mustRun(t, conf, "auction", "bid", "item-1", "150", "--from", "bob", "--now", at(30*time.Minute))
	assert.Contains(t, eventTypes(t, out), "set-auction-bid")
	assert.Equal(t, uint64(350), balance(t, conf, "bob"))

	var got struct {
		Status          string       `json:"status"`
		ReservePriceMet bool         `json:"is_reserve_price_met"`
		NextBidMin      auction.Coin `json:"next_bid_min"`
	}
	decode(t, mustRun(t, conf, "auction", "get", "item-1", "--now", at(30*time.Minute)), &got)
	assert.Equal(t, "open", got.Status)
	assert.True(t, got.ReservePriceMet)
	assert.Equal(t, auction.NewCoin(151, "uusd"), got.NextBidMin)

	var listed []auction.Auction
	decode(t, mustRun(t, conf, "auction", "list", "--by", "highest_bidder_end_time", "--account", "bob"), &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "item-1", listed[0].ItemID)

	out = mustRun(t, conf, "auction", "finalize", "item-1", "--from", "carol", "--now", at(2*time.Hour))
	assert.Contains(t, eventTypes(t, out), "finalize-sale")

	decode(t, mustRun(t, conf, "ledger", "owner", "item-1"), &owner)
	assert.Equal(t, "bob", owner["owner"])
	assert.Equal(t, uint64(3), balance(t, conf, "collector"))
	assert.Equal(t, uint64(147), balance(t, conf, "alice"))

	_, err := run(t, conf, "auction", "get", "item-1")
	assert.ErrorIs(t, err, auction.ErrNotFound)

	var entries []struct {
		Type   string `json:"type"`
		ItemID string `json:"item_id"`
	}
	decode(t, mustRun(t, conf, "events", "--item", "item-1"), &entries)
	require.NotEmpty(t, entries)
	types := make([]string, len(entries))
	for i, e := range entries {
		assert.Equal(t, "item-1", e.ItemID)
		types[i] = e.Type
	}
	assert.Contains(t, types, "set-auction")
	assert.Contains(t, types, "set-auction-bid")
	assert.Contains(t, types, "finalize-auction")
}

func TestRequestErrors(t *testing.T) {
	conf := writeConfig(t)
	mustRun(t, conf, "init", "--from", "admin", "--now", at(0))

	_, err := run(t, conf, "init", "--from", "admin", "--now", at(0))
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)

	mustRun(t, conf, "ledger", "mint", "item-1", "alice")
	mustRun(t, conf, "ledger", "fund", "bob", "500")

	_, err = run(t, conf, "auction", "create", "item-1", "--from", "bob", "--now", at(0),
		"--start", "1m", "--end", "2h", "--starting-price", "100")
	assert.ErrorIs(t, err, auction.ErrUnauthorized)

	mustRun(t, conf, "auction", "create", "item-1", "--from", "alice", "--now", at(0),
		"--start", "1m", "--end", "2h", "--starting-price", "100")

	_, err = run(t, conf, "auction", "bid", "item-1", "150", "--funds", "140", "--from", "bob", "--now", at(30*time.Minute))
	assert.ErrorIs(t, err, auction.ErrIncorrectBidPayment)
	assert.Equal(t, uint64(500), balance(t, conf, "bob"))

	_, err = run(t, conf, "auction", "bid", "item-1", "150", "--now", at(30*time.Minute))
	assert.EqualError(t, err, "--from is required")

	_, err = run(t, conf, "auction", "list", "--by", "seller_end_time")
	assert.Error(t, err)
	_, err = run(t, conf, "auction", "list", "--by", "nope")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	conf := writeConfig(t)
	mustRun(t, conf, "init", "--from", "admin", "--now", at(0))

	out := mustRun(t, conf, "config", "update", "--from", "operator", "--now", at(time.Minute),
		"--trading-fee-bps", "500", "--buffer-duration", "15m")
	assert.Equal(t, []string{"update-config"}, eventTypes(t, out))

	var cfg auction.Config
	decode(t, mustRun(t, conf, "config", "show"), &cfg)
	assert.Equal(t, uint64(500), cfg.TradingFeeBps)
	assert.Equal(t, 15*time.Minute, cfg.BufferDuration)
	assert.Equal(t, time.Hour, cfg.ClosedDuration)
	assert.Equal(t, "collector", cfg.Collector)

	_, err := run(t, conf, "config", "update", "--from", "mallory", "--trading-fee-bps", "1")
	assert.ErrorIs(t, err, auction.ErrUnauthorized)
}

func TestSweepCommand(t *testing.T) {
	conf := writeConfig(t)
	mustRun(t, conf, "init", "--from", "admin", "--now", at(0))
	mustRun(t, conf, "ledger", "mint", "item-1", "alice")
	mustRun(t, conf, "auction", "create", "item-1", "--from", "alice", "--now", at(0),
		"--start", "1m", "--end", "2h", "--starting-price", "100")

	var results []struct {
		ItemID string `json:"item_id"`
		Action string `json:"action"`
	}
	decode(t, mustRun(t, conf, "sweep", "--from", "keeper", "--now", at(time.Hour)), &results)
	assert.Empty(t, results)

	decode(t, mustRun(t, conf, "sweep", "--from", "keeper", "--now", at(4*time.Hour)), &results)
	require.Len(t, results, 1)
	assert.Equal(t, "item-1", results[0].ItemID)

	var owner map[string]string
	decode(t, mustRun(t, conf, "ledger", "owner", "item-1"), &owner)
	assert.Equal(t, "alice", owner["owner"])
}

func TestExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.toml")
	mustRun(t, writeConfig(t), "init", "--example-config", path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out := mustRun(t, writeConfig(t), "version")
	assert.Contains(t, out, "auctiond version "+Version)
}

func TestParseCoin(t *testing.T) {
	tests := []struct {
		in      string
		want    auction.Coin
		wantErr bool
	}{
		{in: "150", want: auction.NewCoin(150, "uusd")},
		{in: "150uatom", want: auction.NewCoin(150, "uatom")},
		{in: " 7uusd ", want: auction.NewCoin(7, "uusd")},
		{in: "uusd", wantErr: true},
		{in: "", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCoin(tt.in, "uusd")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("90m", genesis)
	require.NoError(t, err)
	assert.Equal(t, genesis.Add(90*time.Minute), got)

	got, err = parseTime("2024-02-01T10:00:00+02:00", genesis)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), got)

	_, err = parseTime("tomorrow", genesis)
	assert.Error(t, err)
}
