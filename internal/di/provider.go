package di

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goAuctiond/internal/config"
	"github.com/LeJamon/goAuctiond/internal/core/engine"
	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/LeJamon/goAuctiond/internal/ledger"
	"github.com/LeJamon/goAuctiond/internal/storage"
	"github.com/LeJamon/goAuctiond/internal/storage/database"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb/postgres"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb/sqlite"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
	log       *logrus.Logger
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config, log *logrus.Logger) *Provider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Provider{
		container: container,
		config:    cfg,
		log:       log,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)

	p.registerStorageBuilders()
	p.registerMarketBuilders()
	return nil
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceDatabase, func(c *Container) (interface{}, error) {
		backend, err := storage.ParseBackend(p.config.Storage.Backend)
		if err != nil {
			return nil, err
		}
		db, err := storage.OpenDatabase(backend, p.config.Storage.Path)
		if err != nil {
			return nil, err
		}
		c.OnClose(db.Close)
		p.log.WithFields(logrus.Fields{"backend": backend, "path": p.config.Storage.Path}).Debug("Database opened")
		return db, nil
	})

	p.container.RegisterBuilder(ServiceStore, func(c *Container) (interface{}, error) {
		db, err := c.Get(ServiceDatabase)
		if err != nil {
			return nil, err
		}
		opts, err := p.config.Storage.StoreOptions()
		if err != nil {
			return nil, err
		}
		st, err := store.New(db.(database.DB), opts)
		if err != nil {
			return nil, err
		}
		c.OnClose(func() error {
			stats := st.CacheStats()
			p.log.WithFields(logrus.Fields{
				"size":   stats.Size,
				"hits":   stats.Hits,
				"misses": stats.Misses,
			}).Debug("Record cache stats")
			return nil
		})
		return st, nil
	})

	// Journal builder. A disabled journal resolves to nil.
	p.container.RegisterBuilder(ServiceJournal, func(c *Container) (interface{}, error) {
		if !p.config.Journal.Enabled() {
			return (*relationaldb.Manager)(nil), nil
		}

		cfg := p.config.Journal.RelationalConfig()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		var (
			db  relationaldb.Database
			err error
		)
		switch cfg.Driver {
		case relationaldb.DriverPostgres:
			db, err = postgres.NewDatabase(cfg)
		case relationaldb.DriverSQLite:
			db, err = sqlite.NewDatabase(cfg)
		default:
			err = fmt.Errorf("%w: %s", relationaldb.ErrInvalidDriver, cfg.Driver)
		}
		if err != nil {
			return nil, err
		}

		m := relationaldb.NewManager(db, cfg, relationaldb.WithLogger(logrus.NewEntry(p.log)))
		if err := m.Open(context.Background()); err != nil {
			return nil, err
		}
		c.OnClose(func() error { return m.Close(context.Background()) })
		return m, nil
	})
}

// registerMarketBuilders registers the ledger and the engine.
func (p *Provider) registerMarketBuilders() {
	p.container.RegisterBuilder(ServiceLedger, func(c *Container) (interface{}, error) {
		st, err := p.GetStore()
		if err != nil {
			return nil, err
		}
		return ledger.New(p.config.Market.Custodian, st.Codec()), nil
	})

	p.container.RegisterBuilder(ServiceEngine, func(c *Container) (interface{}, error) {
		st, err := p.GetStore()
		if err != nil {
			return nil, err
		}
		l, err := p.GetLedger()
		if err != nil {
			return nil, err
		}
		journal, err := p.GetJournal()
		if err != nil {
			return nil, err
		}

		opts := engine.Options{
			Custodian: p.config.Market.Custodian,
			Registry:  l,
			Bank:      l,
			Royalties: l,
			Funds:     l,
			Logger:    logrus.NewEntry(p.log),
		}
		if journal != nil {
			opts.Sink = journal
		}
		return engine.New(st, opts)
	})
}

// GetStore returns the record store from the container.
func (p *Provider) GetStore() (*store.Store, error) {
	svc, err := p.container.Get(ServiceStore)
	if err != nil {
		return nil, err
	}
	return svc.(*store.Store), nil
}

// GetLedger returns the local ledger from the container.
func (p *Provider) GetLedger() (*ledger.Ledger, error) {
	svc, err := p.container.Get(ServiceLedger)
	if err != nil {
		return nil, err
	}
	return svc.(*ledger.Ledger), nil
}

// GetJournal returns the event journal, or nil when it is disabled.
func (p *Provider) GetJournal() (*relationaldb.Manager, error) {
	svc, err := p.container.Get(ServiceJournal)
	if err != nil {
		return nil, err
	}
	return svc.(*relationaldb.Manager), nil
}

// GetEngine returns the auction engine from the container.
func (p *Provider) GetEngine() (*engine.Engine, error) {
	svc, err := p.container.Get(ServiceEngine)
	if err != nil {
		return nil, err
	}
	return svc.(*engine.Engine), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
