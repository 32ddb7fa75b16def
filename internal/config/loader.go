package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. AUCTIOND_STORAGE_BACKEND.
const EnvPrefix = "AUCTIOND"

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (auctiond.toml), when configPath is not empty
// 3. Environment variables (AUCTIOND_ prefix)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		if err := loadMainConfig(v, configPath); err != nil {
			return nil, fmt.Errorf("failed to load main config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = configPath

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// loadMainConfig loads the main configuration file
func loadMainConfig(v *viper.Viper, configPath string) error {
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return nil
}

// LoadConfigFromDir loads auctiond.toml from configDir
func LoadConfigFromDir(configDir string) (*Config, error) {
	return LoadConfig(ConfigPathFromDir(configDir))
}

// LoadDefaultConfig loads ./auctiond.toml when it exists and falls back to
// defaults and the environment otherwise.
func LoadDefaultConfig() (*Config, error) {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadConfig(DefaultConfigFile)
	}
	return LoadConfig("")
}

// ReloadConfig reloads configuration from the same path
func ReloadConfig(existingConfig *Config) (*Config, error) {
	return LoadConfig(existingConfig.GetConfigPath())
}

// SaveExampleConfig saves an example configuration file
func SaveExampleConfig(configPath string) error {
	v := viper.New()
	for key, value := range generateExampleConfig() {
		v.Set(key, value)
	}

	v.SetConfigFile(configPath)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}
	return nil
}

// generateExampleConfig generates example configuration values
func generateExampleConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage.backend":     "pebble",
		"storage.path":        "/var/lib/auctiond",
		"storage.cache_size":  1024,
		"storage.compression": "lz4",

		"journal.driver":   "sqlite",
		"journal.database": "/var/lib/auctiond/journal.db",

		"market.custodian":         "market",
		"market.item_registry":     "collection",
		"market.denom":             "uusd",
		"market.collector":         "collector",
		"market.trading_fee_bps":   200,
		"market.operators":         []string{"operator"},
		"market.min_price":         1,
		"market.min_bid_increment": 1,
		"market.min_duration":      "1h",
		"market.max_duration":      "168h",
		"market.closed_duration":   "24h",
		"market.buffer_duration":   "10m",

		"log.level":  "info",
		"log.format": "text",
	}
}
