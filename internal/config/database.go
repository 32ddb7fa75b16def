package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/store"
	"github.com/LeJamon/goAuctiond/internal/storage"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

// StorageConfig represents the [storage] section
type StorageConfig struct {
	// Backend is one of pebble, bbolt, leveldb or memory.
	Backend string `toml:"backend" mapstructure:"backend"`
	// Path is the data directory. Ignored by the memory backend.
	Path string `toml:"path" mapstructure:"path"`
	// CacheSize is the number of decoded auctions cached in memory. 0 disables the cache.
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`
	// Compression is none or lz4.
	Compression string `toml:"compression" mapstructure:"compression"`
}

// Validate performs validation on the storage configuration
func (s *StorageConfig) Validate() error {
	backend, err := storage.ParseBackend(s.Backend)
	if err != nil {
		return err
	}
	if backend != storage.BackendMemory && s.Path == "" {
		return fmt.Errorf("path is required for backend %s", backend)
	}
	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", s.CacheSize)
	}
	if _, err := store.ParseCompression(s.Compression); err != nil {
		return err
	}
	return nil
}

// StoreOptions converts the section into record store options.
func (s *StorageConfig) StoreOptions() (store.Options, error) {
	c, err := store.ParseCompression(s.Compression)
	if err != nil {
		return store.Options{}, err
	}
	return store.Options{CacheSize: s.CacheSize, Compression: c}, nil
}

// JournalDriverNone disables the event journal.
const JournalDriverNone = "none"

// JournalConfig represents the [journal] section
type JournalConfig struct {
	// Driver is sqlite, postgres or none.
	Driver string `toml:"driver" mapstructure:"driver"`
	// DSN overrides every other connection field when set.
	DSN string `toml:"dsn" mapstructure:"dsn"`
	// Database is the SQLite file or the PostgreSQL database name.
	Database string `toml:"database" mapstructure:"database"`
	Host     string `toml:"host" mapstructure:"host"`
	Port     int    `toml:"port" mapstructure:"port"`
	Username string `toml:"username" mapstructure:"username"`
	Password string `toml:"password" mapstructure:"password"`
	SSLMode  string `toml:"ssl_mode" mapstructure:"ssl_mode"`

	MaxRetries int           `toml:"max_retries" mapstructure:"max_retries"`
	Timeout    time.Duration `toml:"timeout" mapstructure:"timeout"`
}

// Enabled reports whether events are journaled.
func (j *JournalConfig) Enabled() bool {
	return !strings.EqualFold(j.Driver, JournalDriverNone) && j.Driver != ""
}

// Validate performs validation on the journal configuration
func (j *JournalConfig) Validate() error {
	if !j.Enabled() {
		return nil
	}
	return j.RelationalConfig().Validate()
}

// RelationalConfig builds the journal database settings.
func (j *JournalConfig) RelationalConfig() *relationaldb.Config {
	var cfg *relationaldb.Config
	switch strings.ToLower(j.Driver) {
	case relationaldb.DriverPostgres, "postgresql":
		cfg = relationaldb.PostgresConfig()
		if j.Host != "" {
			cfg.Host = j.Host
		}
		if j.Port != 0 {
			cfg.Port = j.Port
		}
		if j.Database != "" {
			cfg.Database = j.Database
		}
		if j.Username != "" {
			cfg.Username = j.Username
		}
		if j.SSLMode != "" {
			cfg.SSLMode = j.SSLMode
		}
		cfg.Password = j.Password
	default:
		cfg = relationaldb.SQLiteConfig(j.Database)
		cfg.Driver = j.Driver
	}

	cfg.ConnectionString = j.DSN
	if j.MaxRetries > 0 {
		cfg.MaxRetries = j.MaxRetries
	}
	if j.Timeout > 0 {
		cfg.DefaultTimeout = j.Timeout
	}
	return cfg
}
