package ring

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// TernarySampler keeps the state of a polynomial sampler in the ternary distribution.
type TernarySampler struct {
	*baseSampler
	density float64
	hw      int
}

// NewTernarySampler creates a new instance of TernarySampler from a PRNG, the modulus q and the distribution
// parameters (see type Ternary).
func NewTernarySampler(prng sampling.PRNG, modulus uint64, X Ternary) (ts *TernarySampler, err error) {

	ts = &TernarySampler{
		baseSampler: &baseSampler{prng: prng, modulus: modulus},
	}

	switch {
	case X.P != 0 && X.H == 0:
		if X.P < 0 || X.P > 1 {
			return nil, fmt.Errorf("invalid TernaryDistribution: P=%f must be in [0, 1]", X.P)
		}
		ts.density = X.P
	case X.P == 0 && X.H != 0:
		if X.H < 0 {
			return nil, fmt.Errorf("invalid TernaryDistribution: H=%d must be positive", X.H)
		}
		ts.hw = X.H
	default:
		return nil, fmt.Errorf("invalid TernaryDistribution: at exactly one of (H, P) should be > 0")
	}

	return
}

// Read samples a polynomial into pol.
func (ts *TernarySampler) Read(pol Poly) {
	ts.read(pol, ts.ReadInt64, false)
}

// ReadNew allocates and samples a polynomial with N coefficients.
func (ts *TernarySampler) ReadNew(N int) (pol Poly) {
	pol = NewPoly(N)
	ts.Read(pol)
	return pol
}

// ReadAndAdd samples a polynomial and adds it to pol.
func (ts *TernarySampler) ReadAndAdd(pol Poly) {
	ts.read(pol, ts.ReadInt64, true)
}

// ReadInt64 samples values in [-1, 0, 1] on v.
func (ts *TernarySampler) ReadInt64(v []int64) {
	if ts.hw != 0 {
		ts.sampleSparse(v)
	} else {
		ts.sampleProba(v)
	}
}

// sampleProba draws each value independently: non-zero with probability
// P and with a uniform sign.
func (ts *TernarySampler) sampleProba(v []int64) {
	for i := range v {

		x := ts.readUint64()

		// 53 upper bits for the density, lowest bit for the sign
		if float64(x>>11)/(1<<53) < ts.density {
			v[i] = 1 - 2*int64(x&1)
		} else {
			v[i] = 0
		}
	}
}

// sampleSparse draws exactly min(H, len(v)) non-zero values at uniformly
// random positions with uniform signs.
func (ts *TernarySampler) sampleSparse(v []int64) {

	N := len(v)

	hw := ts.hw
	if hw > N {
		hw = N
	}

	index := make([]int, N)
	for i := range index {
		index[i] = i
		v[i] = 0
	}

	// partial Fisher-Yates shuffle
	for i := 0; i < hw; i++ {
		j := i + int(ts.readUint64N(uint64(N-i)))
		index[i], index[j] = index[j], index[i]
		v[index[i]] = 1 - 2*int64(ts.readUint64()&1)
	}
}

// BinarySampler keeps the state of a polynomial sampler with uniform
// coefficients in [0, 1].
type BinarySampler struct {
	*baseSampler
}

// NewBinarySampler creates a new instance of BinarySampler from a PRNG and the modulus q.
func NewBinarySampler(prng sampling.PRNG, modulus uint64) *BinarySampler {
	return &BinarySampler{
		baseSampler: &baseSampler{prng: prng, modulus: modulus},
	}
}

// Read samples a polynomial into pol.
func (bs *BinarySampler) Read(pol Poly) {
	bs.read(pol, bs.ReadInt64, false)
}

// ReadNew allocates and samples a polynomial with N coefficients.
func (bs *BinarySampler) ReadNew(N int) (pol Poly) {
	pol = NewPoly(N)
	bs.Read(pol)
	return pol
}

// ReadAndAdd samples a polynomial and adds it to pol.
func (bs *BinarySampler) ReadAndAdd(pol Poly) {
	bs.read(pol, bs.ReadInt64, true)
}

// ReadInt64 samples values in [0, 1] on v.
func (bs *BinarySampler) ReadInt64(v []int64) {

	randomBytes := make([]byte, (len(v)+7)>>3)

	if _, err := bs.prng.Read(randomBytes); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	for i := range v {
		v[i] = int64(randomBytes[i>>3]>>(i&7)) & 1
	}
}
