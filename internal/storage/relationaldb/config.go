package relationaldb

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MemoryDatabase opens a private in-memory SQLite journal.
const MemoryDatabase = ":memory:"

// Config contains journal database settings
type Config struct {
	// Database connection settings
	Driver           string `json:"driver" mapstructure:"driver"`
	ConnectionString string `json:"connection_string" mapstructure:"dsn"`
	Host             string `json:"host" mapstructure:"host"`
	Port             int    `json:"port" mapstructure:"port"`
	Database         string `json:"database" mapstructure:"database"`
	Username         string `json:"username" mapstructure:"username"`
	Password         string `json:"password" mapstructure:"password"`
	SSLMode          string `json:"ssl_mode" mapstructure:"ssl_mode"`

	// Connection pool settings
	MaxOpenConns    int           `json:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`

	DefaultTimeout time.Duration `json:"default_timeout" mapstructure:"default_timeout"`

	// Retry settings
	MaxRetries    int           `json:"max_retries" mapstructure:"max_retries"`
	RetryDelay    time.Duration `json:"retry_delay" mapstructure:"retry_delay"`
	RetryMaxDelay time.Duration `json:"retry_max_delay" mapstructure:"retry_max_delay"`

	EnableWALMode bool `json:"enable_wal_mode" mapstructure:"enable_wal_mode"`
}

// NewConfig creates a new Config with sensible defaults
func NewConfig() *Config {
	return &Config{
		Driver:          DriverSQLite,
		Host:            "localhost",
		Port:            5432,
		Database:        "auctiond",
		Username:        "auctiond",
		SSLMode:         "prefer",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		DefaultTimeout:  10 * time.Second,
		MaxRetries:      3,
		RetryDelay:      100 * time.Millisecond,
		RetryMaxDelay:   2 * time.Second,
		EnableWALMode:   true,
	}
}

// PostgresConfig creates a PostgreSQL-specific configuration
func PostgresConfig() *Config {
	config := NewConfig()
	config.Driver = DriverPostgres
	return config
}

// SQLiteConfig creates a SQLite-specific configuration. Pass MemoryDatabase
// for a throwaway journal.
func SQLiteConfig(dbPath string) *Config {
	config := NewConfig()
	config.Driver = DriverSQLite
	config.Database = dbPath
	config.MaxOpenConns = 1 // one writer; also pins a :memory: database to one connection
	config.MaxIdleConns = 1
	config.ConnMaxLifetime = 0
	return config
}

// Validate checks the configuration for common errors
func (c *Config) Validate() error {
	switch c.Driver {
	case "postgres", "postgresql":
		c.Driver = DriverPostgres
	case "sqlite", "sqlite3":
		c.Driver = DriverSQLite
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDriver, c.Driver)
	}

	if c.Driver == DriverPostgres && c.ConnectionString == "" {
		if c.Host == "" {
			return ErrMissingHost
		}
		if c.Port <= 0 || c.Port > 65535 {
			return ErrInvalidPort
		}
		if c.Database == "" {
			return ErrMissingDatabase
		}
		if c.Username == "" {
			return ErrMissingUsername
		}
		switch c.SSLMode {
		case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		default:
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	}
	if c.Driver == DriverSQLite && c.ConnectionString == "" && c.Database == "" {
		return ErrMissingDatabase
	}

	if c.MaxOpenConns < 0 {
		return ErrInvalidMaxOpenConns
	}
	if c.MaxIdleConns < 0 {
		return ErrInvalidMaxIdleConns
	}
	if c.MaxIdleConns > c.MaxOpenConns && c.MaxOpenConns > 0 {
		return ErrMaxIdleExceedsMaxOpen
	}
	if c.DefaultTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	if c.RetryMaxDelay < c.RetryDelay {
		return ErrInvalidRetryMaxDelay
	}
	return nil
}

// BuildConnectionString builds a connection string from the config
func (c *Config) BuildConnectionString() (string, error) {
	if c.ConnectionString != "" {
		return c.ConnectionString, nil
	}

	switch c.Driver {
	case DriverPostgres:
		return c.buildPostgresConnectionString(), nil
	case DriverSQLite:
		return c.buildSQLiteConnectionString(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidDriver, c.Driver)
	}
}

func (c *Config) buildPostgresConnectionString() string {
	params := url.Values{}
	params.Set("sslmode", c.SSLMode)
	params.Set("connect_timeout", fmt.Sprintf("%d", int(c.DefaultTimeout.Seconds())))
	params.Set("application_name", "auctiond")

	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: params.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	} else {
		u.User = url.User(c.Username)
	}
	return u.String()
}

// buildSQLiteConnectionString uses the _pragma parameters understood by
// modernc.org/sqlite.
func (c *Config) buildSQLiteConnectionString() string {
	if c.Database == MemoryDatabase {
		return MemoryDatabase
	}

	pragmas := []string{"busy_timeout(5000)", "foreign_keys(1)"}
	if c.EnableWALMode {
		pragmas = append(pragmas, "journal_mode(WAL)", "synchronous(NORMAL)")
	}

	params := make([]string, 0, len(pragmas))
	for _, p := range pragmas {
		params = append(params, "_pragma="+url.QueryEscape(p))
	}
	return "file:" + c.Database + "?" + strings.Join(params, "&")
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WithConnectionString returns a new config with the specified connection string
func (c *Config) WithConnectionString(connStr string) *Config {
	clone := c.Clone()
	clone.ConnectionString = connStr
	return clone
}

// WithRetrySettings returns a new config with the specified retry settings
func (c *Config) WithRetrySettings(maxRetries int, delay, maxDelay time.Duration) *Config {
	clone := c.Clone()
	clone.MaxRetries = maxRetries
	clone.RetryDelay = delay
	clone.RetryMaxDelay = maxDelay
	return clone
}

// String returns a string representation of the config (with password redacted)
func (c *Config) String() string {
	clone := c.Clone()
	if clone.Password != "" {
		clone.Password = "***"
	}
	if clone.ConnectionString != "" {
		clone.ConnectionString = redactDSN(clone.ConnectionString)
	}

	connStr, _ := clone.BuildConnectionString()
	return fmt.Sprintf("Config{Driver: %s, Host: %s, Port: %d, Database: %s, Connection: %s}",
		clone.Driver, clone.Host, clone.Port, clone.Database, connStr)
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
