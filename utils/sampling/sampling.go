// Package sampling implements secure sampling of bytes and integers.
package sampling

import (
	"encoding/binary"
	"fmt"
)

// ReadUint64 returns a value in [0, 2^64) read from prng.
func ReadUint64(prng PRNG) (uint64, error) {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		return 0, fmt.Errorf("cannot ReadUint64: %w", err)
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadFloat64 returns a float in [min, max) with 53 bits of
// randomness read from prng.
func ReadFloat64(prng PRNG, min, max float64) (float64, error) {
	x, err := ReadUint64(prng)
	if err != nil {
		return 0, fmt.Errorf("cannot ReadFloat64: %w", err)
	}
	f := float64(x>>11) / (1 << 53)
	return min + f*(max-min), nil
}

// ReadUint64N returns a value uniformly distributed in [0, n) read
// from prng by rejection sampling on the smallest power-of-two mask.
// n must be positive.
func ReadUint64N(prng PRNG, n uint64) (uint64, error) {

	if n == 0 {
		return 0, fmt.Errorf("cannot ReadUint64N: bound must be positive")
	}

	mask := uint64(1)
	for mask < n-1 {
		mask = mask<<1 | 1
	}

	for {
		x, err := ReadUint64(prng)
		if err != nil {
			return 0, fmt.Errorf("cannot ReadUint64N: %w", err)
		}
		if x &= mask; x < n {
			return x, nil
		}
	}
}
