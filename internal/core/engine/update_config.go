package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
)

// UpdateConfig changes market parameters. Nil fields are left unchanged.
// The denomination and the item registry are fixed at instantiation.
type UpdateConfig struct {
	Collector       *string        `json:"collector,omitempty"`
	TradingFeeBps   *uint64        `json:"trading_fee_bps,omitempty"`
	Operators       []string       `json:"operators,omitempty"`
	MinPrice        *uint64        `json:"min_price,omitempty"`
	MinBidIncrement *uint64        `json:"min_bid_increment,omitempty"`
	MinDuration     *time.Duration `json:"min_duration,omitempty"`
	MaxDuration     *time.Duration `json:"max_duration,omitempty"`
	ClosedDuration  *time.Duration `json:"closed_duration,omitempty"`
	BufferDuration  *time.Duration `json:"buffer_duration,omitempty"`
}

func (m *UpdateConfig) Name() string { return "update_config" }

func (m *UpdateConfig) Apply(ctx *ApplyContext) error {
	if err := ctx.NonPayable(); err != nil {
		return err
	}
	if !ctx.Config.IsOperator(ctx.Sender) {
		return fmt.Errorf("%w: %s is not an operator", auction.ErrUnauthorized, ctx.Sender)
	}

	cfg := *ctx.Config
	cfg.Operators = append([]string(nil), ctx.Config.Operators...)

	var changed []Attribute
	if m.Collector != nil {
		cfg.Collector = *m.Collector
		changed = append(changed, attr("collector", cfg.Collector))
	}
	if m.TradingFeeBps != nil {
		cfg.TradingFeeBps = *m.TradingFeeBps
		changed = append(changed, attr("trading_fee_bps", strconv.FormatUint(cfg.TradingFeeBps, 10)))
	}
	if m.Operators != nil {
		cfg.Operators = append([]string(nil), m.Operators...)
		changed = append(changed, attr("operators", strings.Join(cfg.Operators, ",")))
	}
	if m.MinPrice != nil {
		cfg.MinPrice = *m.MinPrice
		changed = append(changed, attr("min_price", strconv.FormatUint(cfg.MinPrice, 10)))
	}
	if m.MinBidIncrement != nil {
		cfg.MinBidIncrement = *m.MinBidIncrement
		changed = append(changed, attr("min_bid_increment", strconv.FormatUint(cfg.MinBidIncrement, 10)))
	}
	if m.MinDuration != nil {
		cfg.MinDuration = *m.MinDuration
		changed = append(changed, attr("min_duration", cfg.MinDuration.String()))
	}
	if m.MaxDuration != nil {
		cfg.MaxDuration = *m.MaxDuration
		changed = append(changed, attr("max_duration", cfg.MaxDuration.String()))
	}
	if m.ClosedDuration != nil {
		cfg.ClosedDuration = *m.ClosedDuration
		changed = append(changed, attr("closed_duration", cfg.ClosedDuration.String()))
	}
	if m.BufferDuration != nil {
		cfg.BufferDuration = *m.BufferDuration
		changed = append(changed, attr("buffer_duration", cfg.BufferDuration.String()))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Txn.SaveConfig(&cfg); err != nil {
		return err
	}

	ctx.Emit(EventUpdateConfig, "", changed...)
	return nil
}
