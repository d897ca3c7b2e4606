package safemath

import (
	"errors"
	"math/bits"
)

var ErrOverflow = errors.New("number overflow")

// Add32 returns a+b and reports whether the sum fits a uint32.
func Add32(a, b uint32) (uint32, bool) {
	v, carry := bits.Add32(a, b, 0)
	return v, carry == 0
}

// Add64 returns a+b and reports whether the sum fits a uint64.
func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

// Sub64 returns a-b and reports whether the subtraction did not borrow.
func Sub64(a, b uint64) (uint64, bool) {
	v, borrow := bits.Sub64(a, b, 0)
	return v, borrow == 0
}

// Mul64 returns a*b and reports whether the product fits a uint64.
func Mul64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
