package ring

import (
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler of uniform polynomials.
type UniformSampler struct {
	*baseSampler
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and the modulus q.
func NewUniformSampler(prng sampling.PRNG, modulus uint64) (u *UniformSampler) {
	return &UniformSampler{
		baseSampler: &baseSampler{prng: prng, modulus: modulus},
	}
}

// Read samples a uniform polynomial into pol.
func (u *UniformSampler) Read(pol Poly) {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = u.readUint64N(u.modulus)
	}
}

// ReadNew allocates and samples a uniform polynomial with N coefficients.
func (u *UniformSampler) ReadNew(N int) (pol Poly) {
	pol = NewPoly(N)
	u.Read(pol)
	return
}

// ReadAndAdd samples a uniform polynomial and adds it to pol.
func (u *UniformSampler) ReadAndAdd(pol Poly) {
	u.read(pol, u.ReadInt64, true)
}

// ReadInt64 samples values uniformly distributed in [0, q).
// Each value is obtained by rejection sampling on the smallest
// power-of-two mask covering q.
func (u *UniformSampler) ReadInt64(v []int64) {
	for i := range v {
		v[i] = int64(u.readUint64N(u.modulus))
	}
}
