package config

import "github.com/spf13/viper"

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "data")
	v.SetDefault("storage.cache_size", 1024)
	v.SetDefault("storage.compression", "lz4")

	v.SetDefault("journal.driver", "sqlite")
	v.SetDefault("journal.dsn", "")
	v.SetDefault("journal.database", "data/journal.db")
	v.SetDefault("journal.host", "localhost")
	v.SetDefault("journal.port", 5432)
	v.SetDefault("journal.username", "auctiond")
	v.SetDefault("journal.password", "")
	v.SetDefault("journal.ssl_mode", "prefer")
	v.SetDefault("journal.max_retries", 3)
	v.SetDefault("journal.timeout", "10s")

	v.SetDefault("market.custodian", "market")
	v.SetDefault("market.item_registry", "collection")
	v.SetDefault("market.denom", "uusd")
	v.SetDefault("market.collector", "")
	v.SetDefault("market.trading_fee_bps", 0)
	v.SetDefault("market.operators", []string{})
	v.SetDefault("market.min_price", 1)
	v.SetDefault("market.min_bid_increment", 1)
	v.SetDefault("market.min_duration", "1h")
	v.SetDefault("market.max_duration", "168h")
	v.SetDefault("market.closed_duration", "24h")
	v.SetDefault("market.buffer_duration", "10m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}
