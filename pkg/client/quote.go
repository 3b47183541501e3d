package client

import (
	"fmt"

	"cosmossdk.io/math"
	"lukechampine.com/uint128"

	"fixedswap/pkg/program"
)

// Quote previews a swap with arbitrary-precision arithmetic:
// floor(amountIn * rate / 10^9). Mirrors the on-chain converter but never
// overflows, so it can also be used to sanity-check order sizing.
func Quote(amountIn math.Int, rate math.Int) math.Int {
	return amountIn.Mul(rate).Quo(math.NewInt(program.RateScale))
}

// QuoteUint64 previews a swap with the program's exact semantics, including
// its overflow rejection.
func QuoteUint64(amountIn uint64, rate uint128.Uint128) (uint64, error) {
	out, err := program.ConvertOut(amountIn, rate)
	if err != nil {
		return 0, fmt.Errorf("quote: %w", err)
	}
	return out, nil
}
