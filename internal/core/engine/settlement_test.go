package engine

import (
	"math"
	"testing"

	"github.com/LeJamon/goAuctiond/internal/core/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPayout(t *testing.T) {
	tests := []struct {
		name       string
		price      uint64
		feeBps     uint64
		royaltyBps uint64
		want       Payout
	}{
		{"fee and royalty", 150, 200, 1000, Payout{Fee: 3, Royalty: 15, Proceeds: 132}},
		{"rounds down", 99, 250, 333, Payout{Fee: 2, Royalty: 3, Proceeds: 94}},
		{"no fee", 1000, 0, 0, Payout{Proceeds: 1000}},
		{"smallest price", 1, 9999, 0, Payout{Proceeds: 1}},
		{"everything to the market", 77, 10_000, 0, Payout{Fee: 77}},
		{"half and half", 10, 5000, 5000, Payout{Fee: 5, Royalty: 5}},
		{"max price", math.MaxUint64, 10_000, 0, Payout{Fee: math.MaxUint64}},
		{"max price split", math.MaxUint64, 5000, 0, Payout{Fee: math.MaxUint64 / 2, Proceeds: math.MaxUint64 - math.MaxUint64/2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitPayout(tt.price, tt.feeBps, tt.royaltyBps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitPayoutSumsToPrice(t *testing.T) {
	prices := []uint64{1, 2, 3, 7, 10, 99, 101, 9999, 10_000, 123_456_789, math.MaxUint64}
	for feeBps := uint64(0); feeBps <= auction.BpsDenominator; feeBps += 125 {
		for royaltyBps := uint64(0); feeBps+royaltyBps <= auction.BpsDenominator; royaltyBps += 375 {
			for _, price := range prices {
				p, err := SplitPayout(price, feeBps, royaltyBps)
				require.NoError(t, err)
				require.Equal(t, price, p.Fee+p.Royalty+p.Proceeds,
					"price=%d fee=%d royalty=%d", price, feeBps, royaltyBps)
			}
		}
	}
}

func TestSplitPayoutRejectsOverOneHundredPercent(t *testing.T) {
	_, err := SplitPayout(100, 10_001, 0)
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)

	_, err = SplitPayout(100, 0, 10_001)
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)

	_, err = SplitPayout(100, 6000, 5000)
	assert.ErrorIs(t, err, auction.ErrInvalidConfig)

	// the combined cut only fails once the rounded shares exceed the price
	p, err := SplitPayout(1, 6000, 5000)
	require.NoError(t, err)
	assert.Equal(t, Payout{Proceeds: 1}, p)
}
