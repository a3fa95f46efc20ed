package ring

import (
	"fmt"
	"math"
	"math/big"

	"github.com/SadeemSajid/crypto-lattice/utils/bignum"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// gaussianTablePrecision is the bit-precision of the arithmetic used
// to build the cumulative distribution table.
const gaussianTablePrecision = 128

// gaussianTableLogScale is the bit-size of the table thresholds.
const gaussianTableLogScale = 63

// GaussianSampler keeps the state of a discrete Gaussian sampler.
// Samples are drawn by inversion of a fixed cumulative distribution table
// over [-floor(Bound), floor(Bound)]: a 63-bit uniform value is compared
// against every threshold of the table.
type GaussianSampler struct {
	*baseSampler
	bound      int64
	thresholds []uint64
}

// discreteGaussianBound returns floor(Bound), or floor(6*Sigma) if Bound is zero.
func discreteGaussianBound(X DiscreteGaussian) int64 {
	if X.Bound == 0 {
		return int64(6 * X.Sigma)
	}
	return int64(X.Bound)
}

// NewGaussianSampler creates a new instance of GaussianSampler from a PRNG, the modulus q and
// the distribution parameters (see type DiscreteGaussian).
func NewGaussianSampler(prng sampling.PRNG, modulus uint64, X DiscreteGaussian) (g *GaussianSampler, err error) {

	if X.Sigma < 0 || X.Bound < 0 || math.IsNaN(X.Sigma) || math.IsNaN(X.Bound) {
		return nil, fmt.Errorf("invalid DiscreteGaussian: Sigma=%f and Bound=%f must be non-negative", X.Sigma, X.Bound)
	}

	bound := discreteGaussianBound(X)

	if X.Sigma == 0 {
		bound = 0
	}

	if bound > 1<<16 {
		return nil, fmt.Errorf("invalid DiscreteGaussian: Bound=%d is too large for a table based sampler", bound)
	}

	g = &GaussianSampler{
		baseSampler: &baseSampler{prng: prng, modulus: modulus},
		bound:       bound,
		thresholds:  gaussianThresholds(X.Sigma, bound),
	}

	return
}

// gaussianThresholds returns the table t with t[i] = floor(2^63 * CDF(i - bound)).
// The last entry is always 2^63.
func gaussianThresholds(sigma float64, bound int64) (thresholds []uint64) {

	size := 2*bound + 1

	thresholds = make([]uint64, size)

	if size == 1 {
		thresholds[0] = 1 << gaussianTableLogScale
		return
	}

	weights := make([]*big.Float, size)

	total := bignum.NewFloat(0, gaussianTablePrecision)

	for i := range weights {
		weights[i] = bignum.GaussianWeight(int64(i)-bound, sigma, gaussianTablePrecision)
		total.Add(total, weights[i])
	}

	scale := bignum.NewFloat(uint64(1)<<gaussianTableLogScale, gaussianTablePrecision)

	cumul := bignum.NewFloat(0, gaussianTablePrecision)
	tmp := bignum.NewFloat(0, gaussianTablePrecision)

	for i := range thresholds {
		cumul.Add(cumul, weights[i])
		tmp.Quo(cumul, total)
		tmp.Mul(tmp, scale)
		thresholds[i], _ = tmp.Uint64()
	}

	thresholds[size-1] = 1 << gaussianTableLogScale

	return
}

// Read samples a polynomial into pol.
func (g *GaussianSampler) Read(pol Poly) {
	g.read(pol, g.ReadInt64, false)
}

// ReadNew allocates and samples a polynomial with N coefficients.
func (g *GaussianSampler) ReadNew(N int) (pol Poly) {
	pol = NewPoly(N)
	g.Read(pol)
	return pol
}

// ReadAndAdd samples a polynomial and adds it to pol.
func (g *GaussianSampler) ReadAndAdd(pol Poly) {
	g.read(pol, g.ReadInt64, true)
}

// ReadInt64 samples values in [-floor(Bound), floor(Bound)] on v.
func (g *GaussianSampler) ReadInt64(v []int64) {

	if g.bound == 0 {
		for i := range v {
			v[i] = 0
		}
		return
	}

	for i := range v {

		u := g.readUint64() >> (64 - gaussianTableLogScale)

		// full scan of the table: the index is the number of thresholds <= u
		var idx int64
		for _, t := range g.thresholds {
			idx += int64((u - t) >> 63 ^ 1)
		}

		v[i] = idx - g.bound
	}
}

// RoundedGaussianSampler keeps the state of a sampler of rounded continuous
// Gaussian values.
type RoundedGaussianSampler struct {
	*baseSampler
	mean, sigma float64
	lo, hi      float64
	clamp       bool
}

// NewRoundedGaussianSampler creates a new instance of RoundedGaussianSampler from a PRNG,
// the modulus q and the distribution parameters (see type RoundedGaussian).
func NewRoundedGaussianSampler(prng sampling.PRNG, modulus uint64, X RoundedGaussian) (g *RoundedGaussianSampler, err error) {

	if X.Sigma < 0 || X.Bound < 0 || math.IsNaN(X.Sigma) || math.IsNaN(X.Bound) || math.IsNaN(X.Mean) {
		return nil, fmt.Errorf("invalid RoundedGaussian: Sigma=%f and Bound=%f must be non-negative", X.Sigma, X.Bound)
	}

	if math.Abs(X.Mean)+X.Bound > 1<<52 || math.Abs(X.Mean)+12*X.Sigma > 1<<52 {
		return nil, fmt.Errorf("invalid RoundedGaussian: Mean=%f, Sigma=%f and Bound=%f are too large", X.Mean, X.Sigma, X.Bound)
	}

	g = &RoundedGaussianSampler{
		baseSampler: &baseSampler{prng: prng, modulus: modulus},
		mean:        X.Mean,
		sigma:       X.Sigma,
	}

	if X.Bound > 0 {
		g.clamp = true
		g.lo = math.Ceil(X.Mean - X.Bound)
		g.hi = math.Floor(X.Mean + X.Bound)
	}

	return
}

// Read samples a polynomial into pol.
func (g *RoundedGaussianSampler) Read(pol Poly) {
	g.read(pol, g.ReadInt64, false)
}

// ReadNew allocates and samples a polynomial with N coefficients.
func (g *RoundedGaussianSampler) ReadNew(N int) (pol Poly) {
	pol = NewPoly(N)
	g.Read(pol)
	return pol
}

// ReadAndAdd samples a polynomial and adds it to pol.
func (g *RoundedGaussianSampler) ReadAndAdd(pol Poly) {
	g.read(pol, g.ReadInt64, true)
}

// ReadInt64 samples round(Mean + Sigma * z) with z a standard normal value
// obtained with the Box-Muller transform.
func (g *RoundedGaussianSampler) ReadInt64(v []int64) {
	for i := range v {

		x := g.mean

		if g.sigma != 0 {
			// u1 in (0, 1], u2 in [0, 1)
			u1 := 1 - g.readUniformFloat64()
			u2 := g.readUniformFloat64()
			x += g.sigma * math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		}

		x = math.RoundToEven(x)

		if g.clamp {
			x = math.Max(g.lo, math.Min(g.hi, x))
		}

		v[i] = int64(x)
	}
}
