package ring

import (
	"fmt"
)

// CheckPlaintextModulus returns an error if messages modulo p cannot be
// scaled into Z_q, i.e. if p < 2 or q < 2p.
func CheckPlaintextModulus(q, p uint64) error {
	if p < 2 {
		return fmt.Errorf("invalid plaintext modulus p=%d: must be at least 2", p)
	}
	if q/p < 2 {
		return fmt.Errorf("invalid plaintext modulus p=%d: must satisfy q=%d >= 2p", p, q)
	}
	return nil
}

// Encode scales a message m in [0, p) to m * floor(q/p) in [0, q).
// m is taken modulo p.
func Encode(m, q, p uint64) uint64 {
	return (m % p) * (q / p)
}

// Decode maps x in Z_q back to a message in [0, p).
//
// For p = 2 the decision is made on the centered representative:
// |x| <= floor(q/4) decodes to 0 and anything else to 1, the boundary
// being inclusive.
// For p > 2, x decodes to the index of the nearest multiple of floor(q/p),
// ties going to the smaller message.
func Decode(x, q, p uint64) uint64 {

	if x >= q {
		x %= q
	}

	if p == 2 {
		c := CenteredReduce(x, q)
		if c < 0 {
			c = -c
		}
		if uint64(c) <= q>>2 {
			return 0
		}
		return 1
	}

	delta := q / p

	// values past (p-1/2) * delta wrap around to 0
	if m := (x + (delta-1)>>1) / delta; m < p {
		return m
	}

	return 0
}

// EncodeVec evaluates out[i] = Encode(m[i], q, p).
func EncodeVec(m []uint64, q, p uint64, out []uint64) {
	for i := range m {
		out[i] = Encode(m[i], q, p)
	}
}

// DecodeVec evaluates out[i] = Decode(x[i], q, p).
func DecodeVec(x []uint64, q, p uint64, out []uint64) {
	for i := range x {
		out[i] = Decode(x[i], q, p)
	}
}
