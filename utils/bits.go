package utils

import (
	"fmt"
)

// BytesToBits expands each byte into 8 bits, most significant bit first.
func BytesToBits(data []byte) (bitstream []uint64) {
	bitstream = make([]uint64, 8*len(data))
	for i, b := range data {
		for j := 0; j < 8; j++ {
			bitstream[8*i+j] = uint64(b>>(7-j)) & 1
		}
	}
	return
}

// BitsToBytes packs bits, most significant bit first, into bytes.
// It returns an error if the length of bitstream is not a multiple
// of 8 or if one of its values is not a bit.
func BitsToBytes(bitstream []uint64) (data []byte, err error) {

	if len(bitstream)&7 != 0 {
		return nil, fmt.Errorf("cannot BitsToBytes: %w: bit-length %d is not a multiple of 8", ErrDimensionMismatch, len(bitstream))
	}

	data = make([]byte, len(bitstream)>>3)

	for i := range data {
		var b byte
		for j, bit := range bitstream[8*i : 8*i+8] {
			if bit > 1 {
				return nil, fmt.Errorf("cannot BitsToBytes: value %d at index %d is not a bit", bit, 8*i+j)
			}
			b |= byte(bit) << (7 - j)
		}
		data[i] = b
	}

	return
}
