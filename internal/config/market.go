package config

import (
	"fmt"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// MarketConfig represents the [market] section: the custody account and the
// parameters the market is instantiated with.
type MarketConfig struct {
	Custodian       string        `toml:"custodian" mapstructure:"custodian"`
	ItemRegistry    string        `toml:"item_registry" mapstructure:"item_registry"`
	Denom           string        `toml:"denom" mapstructure:"denom"`
	Collector       string        `toml:"collector" mapstructure:"collector"`
	TradingFeeBps   uint64        `toml:"trading_fee_bps" mapstructure:"trading_fee_bps"`
	Operators       []string      `toml:"operators" mapstructure:"operators"`
	MinPrice        uint64        `toml:"min_price" mapstructure:"min_price"`
	MinBidIncrement uint64        `toml:"min_bid_increment" mapstructure:"min_bid_increment"`
	MinDuration     time.Duration `toml:"min_duration" mapstructure:"min_duration"`
	MaxDuration     time.Duration `toml:"max_duration" mapstructure:"max_duration"`
	ClosedDuration  time.Duration `toml:"closed_duration" mapstructure:"closed_duration"`
	BufferDuration  time.Duration `toml:"buffer_duration" mapstructure:"buffer_duration"`
}

// Validate checks the section. The genesis parameters are only checked by
// Genesis, since most commands never instantiate.
func (m *MarketConfig) Validate() error {
	if m.Custodian == "" {
		return fmt.Errorf("custodian is required")
	}
	return nil
}

// Genesis returns the validated market configuration for instantiation.
func (m *MarketConfig) Genesis() (auction.Config, error) {
	cfg := auction.Config{
		ItemRegistry:    m.ItemRegistry,
		Denom:           m.Denom,
		Collector:       m.Collector,
		TradingFeeBps:   m.TradingFeeBps,
		Operators:       append([]string(nil), m.Operators...),
		MinPrice:        m.MinPrice,
		MinBidIncrement: m.MinBidIncrement,
		MinDuration:     m.MinDuration,
		MaxDuration:     m.MaxDuration,
		ClosedDuration:  m.ClosedDuration,
		BufferDuration:  m.BufferDuration,
	}
	if err := cfg.Validate(); err != nil {
		return auction.Config{}, fmt.Errorf("market: %w", err)
	}
	return cfg, nil
}
