package di

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/config"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

func TestContainer(t *testing.T) {
	c := New()
	builds := 0
	c.RegisterBuilder("answer", func(*Container) (interface{}, error) {
		builds++
		return 42, nil
	})
	c.Register("name", "auctiond")

	v, err := c.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	_, _ = c.Get("answer")
	assert.Equal(t, 1, builds)

	assert.True(t, c.Has("name"))
	assert.ElementsMatch(t, []string{"answer", "name"}, c.ServiceNames())

	_, err = c.Get("missing")
	assert.Error(t, err)
	assert.Panics(t, func() { c.MustGet("missing") })
}

func TestContainerConcurrentGet(t *testing.T) {
	c := New()
	var builds atomic.Int32
	release := make(chan struct{})
	c.RegisterBuilder("db", func(*Container) (interface{}, error) {
		builds.Add(1)
		<-release
		return &struct{ name string }{"db"}, nil
	})

	const callers = 16
	results := make([]interface{}, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get("db")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, v := range results {
		assert.Same(t, results[0], v)
	}
}

func TestContainerRetriesFailedBuild(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	fail := true
	c.RegisterBuilder("flaky", func(*Container) (interface{}, error) {
		if fail {
			return nil, boom
		}
		return "ok", nil
	})
	c.RegisterBuilder("dependent", func(c *Container) (interface{}, error) {
		v, err := c.Get("flaky")
		if err != nil {
			return nil, err
		}
		return v.(string) + "!", nil
	})

	_, err := c.Get("dependent")
	assert.ErrorIs(t, err, boom)

	fail = false
	v, err := c.Get("dependent")
	require.NoError(t, err)
	assert.Equal(t, "ok!", v)
}

func TestContainerCloseOrder(t *testing.T) {
	c := New()
	var order []string
	boom := errors.New("boom")
	c.OnClose(func() error { order = append(order, "first"); return nil })
	c.OnClose(func() error { order = append(order, "second"); return boom })

	assert.ErrorIs(t, c.Close(), boom)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, c.Close())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Storage.Backend = "memory"
	cfg.Journal.Database = relationaldb.MemoryDatabase
	cfg.Market.Collector = "collector"
	cfg.Market.Operators = []string{"operator"}
	return cfg
}

func TestProviderWiresEngine(t *testing.T) {
	cfg := testConfig(t)
	c := New()
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	p := NewProvider(c, cfg, logger)
	require.NoError(t, p.RegisterAll())
	defer c.Close()

	e, err := p.GetEngine()
	require.NoError(t, err)
	journal, err := p.GetJournal()
	require.NoError(t, err)
	require.NotNil(t, journal)

	genesis, err := cfg.Market.Genesis()
	require.NoError(t, err)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = e.Instantiate(context.Background(), "operator", now, genesis)
	require.NoError(t, err)

	n, err := journal.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := e.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "collector", got.Collector)
	assert.Equal(t, cfg, p.GetConfig())
}

func TestProviderWithoutJournal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal.Driver = config.JournalDriverNone

	c := New()
	p := NewProvider(c, cfg, nil)
	require.NoError(t, p.RegisterAll())
	defer c.Close()

	journal, err := p.GetJournal()
	require.NoError(t, err)
	assert.Nil(t, journal)

	_, err = p.GetEngine()
	require.NoError(t, err)
}

func TestProviderLogsCacheStatsOnClose(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal.Driver = config.JournalDriverNone

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)

	c := New()
	p := NewProvider(c, cfg, logger)
	require.NoError(t, p.RegisterAll())

	st, err := p.GetStore()
	require.NoError(t, err)
	_, _, err = st.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	var entry map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var e map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if e["msg"] == "Record cache stats" {
			entry = e
		}
	}
	require.NotNil(t, entry, out.String())
	assert.Equal(t, float64(1), entry["misses"])
	assert.Equal(t, float64(0), entry["hits"])
}
