package auction

import (
	"fmt"
	"math"
	"time"
)

// Records hold times as Unix nanoseconds.
var (
	minStoredTime = time.Unix(0, math.MinInt64).UTC()
	maxStoredTime = time.Unix(0, math.MaxInt64).UTC()
)

// Storable reports whether t fits the Unix nanosecond range records use.
func Storable(t time.Time) bool {
	return !t.Before(minStoredTime) && !t.After(maxStoredTime)
}

// ValidateTimes checks the schedule of a new auction.
func ValidateTimes(now, start, end time.Time, cfg *Config) error {
	if !Storable(start) || !Storable(end) {
		return fmt.Errorf("%w: time outside %s to %s", ErrInvalidStartEndTime,
			minStoredTime.Format(time.RFC3339), maxStoredTime.Format(time.RFC3339))
	}
	if !start.After(now) {
		return fmt.Errorf("%w: start time must be in the future", ErrInvalidStartEndTime)
	}
	if start.Add(cfg.MinDuration).After(end) {
		return fmt.Errorf("%w: duration shorter than %s", ErrInvalidStartEndTime, cfg.MinDuration)
	}
	if start.Add(cfg.MaxDuration).Before(end) {
		return fmt.Errorf("%w: duration longer than %s", ErrInvalidStartEndTime, cfg.MaxDuration)
	}
	return nil
}

// ValidatePrice checks that a price is usable in this market.
func ValidatePrice(price Coin, cfg *Config) error {
	if price.IsZero() {
		return fmt.Errorf("%w: amount must be non-zero", ErrInvalidPrice)
	}
	if price.Denom != cfg.Denom {
		return fmt.Errorf("%w: denom %q, expected %q", ErrInvalidPrice, price.Denom, cfg.Denom)
	}
	if price.Amount < cfg.MinPrice {
		return fmt.Errorf("%w: %d below minimum %d", ErrInvalidPrice, price.Amount, cfg.MinPrice)
	}
	return nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	switch {
	case c.ItemRegistry == "":
		return fmt.Errorf("%w: item registry is required", ErrInvalidConfig)
	case c.Denom == "":
		return fmt.Errorf("%w: denom is required", ErrInvalidConfig)
	case c.Collector == "":
		return fmt.Errorf("%w: collector is required", ErrInvalidConfig)
	case c.TradingFeeBps > BpsDenominator:
		return fmt.Errorf("%w: trading fee %d bps exceeds 100%%", ErrInvalidConfig, c.TradingFeeBps)
	case len(c.Operators) == 0:
		return fmt.Errorf("%w: at least one operator is required", ErrInvalidConfig)
	case c.MinPrice == 0:
		return fmt.Errorf("%w: min price must be positive", ErrInvalidConfig)
	case c.MinBidIncrement == 0:
		return fmt.Errorf("%w: min bid increment must be positive", ErrInvalidConfig)
	case c.MinDuration <= 0:
		return fmt.Errorf("%w: min duration must be positive", ErrInvalidConfig)
	case c.MaxDuration <= 0:
		return fmt.Errorf("%w: max duration must be positive", ErrInvalidConfig)
	case c.MinDuration > c.MaxDuration:
		return fmt.Errorf("%w: min duration exceeds max duration", ErrInvalidConfig)
	case c.ClosedDuration <= 0:
		return fmt.Errorf("%w: closed duration must be positive", ErrInvalidConfig)
	case c.BufferDuration < 0:
		return fmt.Errorf("%w: buffer duration must not be negative", ErrInvalidConfig)
	}
	return nil
}
