package program

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestConvertOut(t *testing.T) {
	cases := []struct {
		name     string
		amountIn uint64
		rate     uint128.Uint128
		want     uint64
	}{
		{"identity rate", 1_000_000_000, uint128.From64(RateScale), 1_000_000_000},
		{"double rate", 500, uint128.From64(2 * RateScale), 1000},
		{"half rate", 1000, uint128.From64(RateScale / 2), 500},
		{"floors toward zero", 1, uint128.From64(1), 0},
		{"floors remainder", 3, uint128.From64(RateScale/2 + 1), 1},
		{"zero amount", 0, uint128.From64(RateScale), 0},
		{"zero rate", math.MaxUint64, uint128.From64(0), 0},
		{"usdc for sol at 1000", 1_000_000_000, uint128.From64(1000 * 1_000_000), 1_000_000_000_000},
		{"wide rate small amount", 1, uint128.New(0, 1), 18_446_744_073},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvertOut(tc.amountIn, tc.rate)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConvertOutRejectsLargeOrders(t *testing.T) {
	cases := []struct {
		name     string
		amountIn uint64
		rate     uint128.Uint128
	}{
		{"quotient exceeds u64", math.MaxUint64, uint128.From64(2 * RateScale)},
		{"product exceeds u128", math.MaxUint64, uint128.Max},
		{"high limb product", 2, uint128.New(0, math.MaxUint64)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ConvertOut(tc.amountIn, tc.rate)
			require.ErrorIs(t, err, ErrOrderTooLarge)
		})
	}
}

func TestConvertOutLargestRepresentable(t *testing.T) {
	// MaxUint64 output is still accepted when the math fits exactly.
	got, err := ConvertOut(math.MaxUint64, uint128.From64(RateScale))
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), got)
}
