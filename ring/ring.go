// Package ring implements modular arithmetic over Z_q and over the negacyclic
// polynomial ring Z_q[X]/(X^N+1), exact polynomial multiplication through a
// number theoretic transform, plaintext scaling and noise sampling.
package ring

import (
	"fmt"
	"math/bits"

	"github.com/SadeemSajid/crypto-lattice/utils"
)

// MaxModulusBits is the maximum bit-size of the modulus of a Ring.
const MaxModulusBits = 62

// Ring is a structure that keeps all the variables required to operate on
// polynomials in Z_q[X]/(X^N+1).
type Ring struct {
	n       int
	modulus uint64

	// true if the product of two centered polynomials of the ring
	// fits the exactness bound of Multiply.
	transformExact bool
}

// NewRing creates a new Ring of degree N and modulus q.
// N must be positive and q must satisfy 2 <= q < 2^62.
// N = 1 is the integer ring Z_q.
func NewRing(N int, q uint64) (r *Ring, err error) {

	if N < 1 {
		return nil, fmt.Errorf("cannot NewRing: invalid ring degree N=%d: must be positive", N)
	}

	if q < 2 || bits.Len64(q) > MaxModulusBits {
		return nil, fmt.Errorf("cannot NewRing: invalid modulus q=%d: must satisfy 2 <= q < 2^%d", q, MaxModulusBits)
	}

	r = &Ring{n: N, modulus: q}

	half := q >> 1
	r.transformExact = multiplicationIsExact(N, half, half)

	return r, nil
}

// N returns the ring degree.
func (r Ring) N() int {
	return r.n
}

// Modulus returns the modulus q of the ring.
func (r Ring) Modulus() uint64 {
	return r.modulus
}

// NewPoly allocates a new zero polynomial of the ring.
func (r Ring) NewPoly() Poly {
	return NewPoly(r.n)
}

func (r Ring) checkDegree(op string, pols ...Poly) error {
	for _, pol := range pols {
		if pol.N() != r.n {
			return utils.NewDimensionError(op, r.n, pol.N())
		}
	}
	return nil
}

// Add evaluates p3 = p1 + p2 coefficient-wise in the ring.
func (r Ring) Add(p1, p2, p3 Poly) (err error) {
	if err = r.checkDegree("Add", p1, p2, p3); err != nil {
		return
	}
	q := r.modulus
	for i := range p3.Coeffs {
		p3.Coeffs[i] = CRed(p1.Coeffs[i]%q+p2.Coeffs[i]%q, q)
	}
	return
}

// Sub evaluates p3 = p1 - p2 coefficient-wise in the ring.
func (r Ring) Sub(p1, p2, p3 Poly) (err error) {
	if err = r.checkDegree("Sub", p1, p2, p3); err != nil {
		return
	}
	q := r.modulus
	for i := range p3.Coeffs {
		p3.Coeffs[i] = CRed(p1.Coeffs[i]%q+q-p2.Coeffs[i]%q, q)
	}
	return
}

// Neg evaluates p2 = -p1 coefficient-wise in the ring.
func (r Ring) Neg(p1, p2 Poly) (err error) {
	if err = r.checkDegree("Neg", p1, p2); err != nil {
		return
	}
	q := r.modulus
	for i := range p2.Coeffs {
		p2.Coeffs[i] = CRed(q-p1.Coeffs[i]%q, q)
	}
	return
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise in the ring.
func (r Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) (err error) {
	if err = r.checkDegree("MulScalar", p1, p2); err != nil {
		return
	}
	q := r.modulus
	for i := range p2.Coeffs {
		p2.Coeffs[i] = MulMod(p1.Coeffs[i], scalar, q)
	}
	return
}

// Reduce evaluates p2 = p1 mod q.
func (r Ring) Reduce(p1, p2 Poly) (err error) {
	if err = r.checkDegree("Reduce", p1, p2); err != nil {
		return
	}
	q := r.modulus
	for i := range p2.Coeffs {
		p2.Coeffs[i] = p1.Coeffs[i] % q
	}
	return
}

// SetCoefficientsInt64 sets the coefficients of pol to coeffs mod q.
func (r Ring) SetCoefficientsInt64(coeffs []int64, pol Poly) (err error) {
	if err = r.checkDegree("SetCoefficientsInt64", pol); err != nil {
		return
	}
	if len(coeffs) != r.n {
		return utils.NewDimensionError("SetCoefficientsInt64", r.n, len(coeffs))
	}
	ReduceVec(coeffs, r.modulus, pol.Coeffs)
	return
}

// PolyToCenteredInt64 writes the centered representative in (-q/2, q/2]
// of each coefficient of pol on coeffs.
func (r Ring) PolyToCenteredInt64(pol Poly, coeffs []int64) (err error) {
	if err = r.checkDegree("PolyToCenteredInt64", pol); err != nil {
		return
	}
	if len(coeffs) != r.n {
		return utils.NewDimensionError("PolyToCenteredInt64", r.n, len(coeffs))
	}
	CenteredReduceVec(pol.Coeffs, r.modulus, coeffs)
	return
}

// Mul evaluates p3 = p1 * p2 in Z_q[X]/(X^N+1).
// The product is computed with Multiply on the centered representatives
// followed by ReduceModXNPlus1. If the ring is too large for the transform
// to be exact, or if N = 1, it falls back to MulSchoolbook.
// p3 may alias p1 or p2.
func (r Ring) Mul(p1, p2, p3 Poly) (err error) {

	if err = r.checkDegree("Mul", p1, p2, p3); err != nil {
		return
	}

	// degree one rings are the integers modulo q
	if !r.transformExact || r.n == 1 {
		return r.MulSchoolbook(p1, p2, p3)
	}

	a := make([]int64, r.n)
	b := make([]int64, r.n)
	CenteredReduceVec(p1.Coeffs, r.modulus, a)
	CenteredReduceVec(p2.Coeffs, r.modulus, b)

	var raw []int64
	if raw, err = Multiply(a, b); err != nil {
		return fmt.Errorf("cannot Mul: %w", err)
	}

	var res Poly
	if res, err = ReduceModXNPlus1(raw, r.n, r.modulus); err != nil {
		return fmt.Errorf("cannot Mul: %w", err)
	}

	p3.Copy(res)

	return
}

// MulSchoolbook evaluates p3 = p1 * p2 in Z_q[X]/(X^N+1) with the
// quadratic negacyclic convolution. p3 may alias p1 or p2.
func (r Ring) MulSchoolbook(p1, p2, p3 Poly) (err error) {

	if err = r.checkDegree("MulSchoolbook", p1, p2, p3); err != nil {
		return
	}

	N := r.n
	q := r.modulus

	acc := make([]uint64, N)

	for i, a := range p1.Coeffs {

		if a %= q; a == 0 {
			continue
		}

		for j, b := range p2.Coeffs {

			c := MulMod(a, b, q)

			if k := i + j; k < N {
				acc[k] = CRed(acc[k]+c, q)
			} else {
				// X^N = -1
				acc[k-N] = CRed(acc[k-N]+q-c, q)
			}
		}
	}

	copy(p3.Coeffs, acc)

	return
}
