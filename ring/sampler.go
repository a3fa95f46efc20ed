package ring

import (
	"fmt"
	"math/bits"

	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// Sampler is an interface for random polynomial samplers.
// Samplers read all their randomness from the sampling.PRNG they
// were created with, and are not safe for concurrent use.
type Sampler interface {
	// Read samples the coefficients of pol, reduced modulo q.
	Read(pol Poly)
	// ReadNew allocates and samples a polynomial with N coefficients.
	ReadNew(N int) (pol Poly)
	// ReadAndAdd samples a polynomial and adds it to pol modulo q.
	ReadAndAdd(pol Poly)
	// ReadInt64 samples signed integer values on v. Values of the Uniform
	// distribution are in [0, q), all the others are small centered values.
	ReadInt64(v []int64)
}

// NewSampler instantiates a new Sampler from a PRNG, the modulus q of
// the ring and the distribution parameters X.
func NewSampler(prng sampling.PRNG, modulus uint64, X DistributionParameters) (Sampler, error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot NewSampler: prng is nil")
	}

	if modulus < 2 || bits.Len64(modulus) > MaxModulusBits {
		return nil, fmt.Errorf("cannot NewSampler: invalid modulus q=%d: must satisfy 2 <= q < 2^%d", modulus, MaxModulusBits)
	}

	switch X := X.(type) {
	case DiscreteGaussian:
		return NewGaussianSampler(prng, modulus, X)
	case RoundedGaussian:
		return NewRoundedGaussianSampler(prng, modulus, X)
	case Ternary:
		return NewTernarySampler(prng, modulus, X)
	case Binary:
		return NewBinarySampler(prng, modulus), nil
	case Uniform:
		return NewUniformSampler(prng, modulus), nil
	default:
		return nil, fmt.Errorf("invalid distribution: want ring.DiscreteGaussian, ring.RoundedGaussian, ring.Ternary, ring.Binary or ring.Uniform but have %T", X)
	}
}

type baseSampler struct {
	prng    sampling.PRNG
	modulus uint64
	buffer  []int64
}

// read samples len(pol.Coeffs) values with readInt64 and either
// overwrites or accumulates them on pol.
func (b *baseSampler) read(pol Poly, readInt64 func(v []int64), add bool) {

	N := pol.N()

	if cap(b.buffer) < N {
		b.buffer = make([]int64, N)
	}

	buff := b.buffer[:N]

	readInt64(buff)

	q := b.modulus

	for i, c := range buff {
		if v := Reduce(c, q); add {
			pol.Coeffs[i] = CRed(pol.Coeffs[i]%q+v, q)
		} else {
			pol.Coeffs[i] = v
		}
	}
}

// readUint64 reads a uniform uint64 from the PRNG.
func (b *baseSampler) readUint64() uint64 {
	x, err := sampling.ReadUint64(b.prng)
	// Sanity check, this error should not happen.
	if err != nil {
		panic(err)
	}
	return x
}

// readUniformFloat64 reads a float64 uniform in [0, 1) with 53 bits of randomness.
func (b *baseSampler) readUniformFloat64() float64 {
	return float64(b.readUint64()>>11) / (1 << 53)
}

// readUint64N reads a uint64 uniform in [0, n).
func (b *baseSampler) readUint64N(n uint64) uint64 {
	x, err := sampling.ReadUint64N(b.prng, n)
	// Sanity check, this error should not happen.
	if err != nil {
		panic(err)
	}
	return x
}

// CheckDistribution returns an error if no [Sampler] can be instantiated
// for the distribution X modulo q.
func CheckDistribution(modulus uint64, X DistributionParameters) (err error) {
	_, err = NewSampler(sampling.NewShakePRNG(nil), modulus, X)
	return
}
