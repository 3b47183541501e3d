package program

import (
	"math/bits"

	"lukechampine.com/uint128"
)

// ConvertOut computes floor(amountIn * rate / 10^9). The product is checked
// against the 128-bit range and the quotient against the 64-bit range;
// either overflow rejects the order. Truncation drops the remainder in the
// pool's favor, never the requester's.
func ConvertOut(amountIn uint64, rate uint128.Uint128) (uint64, error) {
	loHi, loLo := bits.Mul64(amountIn, rate.Lo)
	hiHi, hiLo := bits.Mul64(amountIn, rate.Hi)
	if hiHi != 0 {
		return 0, ErrOrderTooLarge
	}
	hi, carry := bits.Add64(loHi, hiLo, 0)
	if carry != 0 {
		return 0, ErrOrderTooLarge
	}

	quo := uint128.New(loLo, hi).Div64(RateScale)
	if quo.Hi != 0 {
		return 0, ErrOrderTooLarge
	}
	return quo.Lo, nil
}
