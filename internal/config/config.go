package config

import (
	"path/filepath"
)

// DefaultConfigFile is the configuration file name looked up by default.
const DefaultConfigFile = "auctiond.toml"

// Config represents the complete auctiond configuration
type Config struct {
	// Storage selects the key/value database holding auctions and the ledger.
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`

	// Journal is the SQL history of emitted events.
	Journal JournalConfig `toml:"journal" mapstructure:"journal"`

	// Market holds the genesis market parameters used by init.
	Market MarketConfig `toml:"market" mapstructure:"market"`

	Log LogConfig `toml:"log" mapstructure:"log"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ConfigPathFromDir returns the configuration file path inside configDir
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, DefaultConfigFile)
}

// GetConfigPath returns the path the configuration was loaded from. It is
// empty when only defaults and the environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}
