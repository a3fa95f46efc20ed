// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Min returns the minimum of a and b.
func Min[V constraints.Ordered](a, b V) V {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum of a and b.
func Max[V constraints.Ordered](a, b V) V {
	if a >= b {
		return a
	}
	return b
}

// Abs returns |x|.
func Abs[V constraints.Signed | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// MaxAbsSlice returns max(|x_i|) as an unsigned integer.
func MaxAbsSlice[V constraints.Signed](slice []V) (max uint64) {
	for _, x := range slice {
		var a uint64
		if x < 0 {
			a = uint64(-(x + 1)) + 1 // avoids overflow on the minimum value
		} else {
			a = uint64(x)
		}
		max = Max(max, a)
	}
	return
}

// IsPowerOfTwo returns true if x is a positive power of two.
func IsPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// NextPowerOfTwo returns the smallest power of two greater or equal to x.
func NextPowerOfTwo(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len64(uint64(x-1))
}

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64(index, bitLen uint64) uint64 {
	if bitLen == 0 {
		return 0
	}
	return bits.Reverse64(index) >> (64 - bitLen)
}
