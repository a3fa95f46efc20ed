package ring

import (
	"math/big"
	"math/bits"
)

// Reduce returns x mod q in [0, q-1] for any int64 x, including math.MinInt64.
func Reduce(x int64, q uint64) uint64 {
	if x >= 0 {
		return uint64(x) % q
	}
	// -(x+1) cannot overflow
	return q - 1 - uint64(-(x+1))%q
}

// CenteredReduce returns the representative of x mod q in (-q/2, q/2].
func CenteredReduce(x, q uint64) int64 {
	if x >= q {
		x %= q
	}
	if x > q>>1 {
		return int64(x) - int64(q)
	}
	return int64(x)
}

// ReduceVec evaluates out[i] = in[i] mod q.
func ReduceVec(in []int64, q uint64, out []uint64) {
	for i := range in {
		out[i] = Reduce(in[i], q)
	}
}

// CenteredReduceVec evaluates out[i] = CenteredReduce(in[i], q).
func CenteredReduceVec(in []uint64, q uint64, out []int64) {
	for i := range in {
		out[i] = CenteredReduce(in[i], q)
	}
}

// MulMod returns x*y mod q using an exact 128-bit product.
func MulMod(x, y, q uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return bits.Rem64(hi, lo, q)
}

//==========================
//=== BARRETT REDUCTION  ===
//==========================

// GenBRedConstant computes the constant for the BRed algorithm.
// Returns ((2^128)/q)/(2^64) and (2^128)/q mod 2^64.
func GenBRedConstant(q uint64) [2]uint64 {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))

	mlo := bigR.Uint64()
	mhi := bigR.Rsh(bigR, 64).Uint64()

	return [2]uint64{mhi, mlo}
}

// BRedAdd computes a mod q.
func BRedAdd(a, q uint64, bredconstant [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, bredconstant[0])
	r = a - mhi*q
	if r >= q {
		r -= q
	}
	return
}

// BRed computes x*y mod q.
// q is required to be at most 61 bits.
func BRed(x, y, q uint64, bredconstant [2]uint64) (r uint64) {

	var lhi, mhi, mlo, s0, s1, carry uint64

	u := bredconstant

	ahi, alo := bits.Mul64(x, y)

	// (alo*ulo)>>64

	lhi, _ = bits.Mul64(alo, u[1])

	// ((ahi*ulo + alo*uhi) + (alo*ulo))>>64

	mhi, mlo = bits.Mul64(alo, u[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])

	_, carry = bits.Add64(mlo, s0, 0)

	lhi = mhi + carry

	// (ahi*uhi) + (((ahi*ulo + alo*uhi) + (alo*ulo))>>64)

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q

	if r >= q {
		r -= q
	}

	return
}

//===============================
//==== CONDITIONAL REDUCTION ====
//===============================

// CRed reduce returns a mod q, where
// a is required to be in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
