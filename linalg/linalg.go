// Package linalg implements vectors and matrices over Z_q.
package linalg

import (
	"fmt"
	"math/bits"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils"
	"github.com/SadeemSajid/crypto-lattice/utils/structs"
)

// Vector is a vector of elements of Z_q.
type Vector = structs.Vector[uint64]

// Matrix is a row-major matrix of elements of Z_q.
type Matrix = structs.Matrix[uint64]

// Engine performs linear algebra modulo q. All the vectors and matrices
// it returns have their values in [0, q).
type Engine struct {
	modulus uint64
}

// NewEngine creates a new Engine modulo q, with 2 <= q < 2^62.
func NewEngine(q uint64) (*Engine, error) {
	if q < 2 || bits.Len64(q) > ring.MaxModulusBits {
		return nil, fmt.Errorf("cannot NewEngine: invalid modulus q=%d: must satisfy 2 <= q < 2^%d", q, ring.MaxModulusBits)
	}
	return &Engine{modulus: q}, nil
}

// Modulus returns the modulus q.
func (e Engine) Modulus() uint64 {
	return e.modulus
}

// NewVector allocates a new zero vector of length n.
func (e Engine) NewVector(n int) Vector {
	return structs.NewVector[uint64](n)
}

// NewMatrix allocates a new zero rows x cols matrix.
func (e Engine) NewMatrix(rows, cols int) Matrix {
	return structs.NewMatrix[uint64](rows, cols)
}

// SampleVector returns a vector of length n sampled from sampler.
// The sampler must be bound to the modulus of the engine.
func (e Engine) SampleVector(sampler ring.Sampler, n int) Vector {
	return Vector(sampler.ReadNew(n).Coeffs)
}

// SampleMatrix returns a rows x cols matrix sampled row by row from sampler.
// The sampler must be bound to the modulus of the engine.
func (e Engine) SampleMatrix(sampler ring.Sampler, rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = e.SampleVector(sampler, cols)
	}
	return m
}

// checkMatrix returns an error if A is not rectangular.
func checkMatrix(op string, A Matrix) error {
	if !A.IsRectangular() {
		return fmt.Errorf("cannot %s: %w: matrix rows are not of equal length", op, utils.ErrDimensionMismatch)
	}
	return nil
}

// dot returns sum_i a[i] * b[i] mod q. The sum is accumulated exactly on
// 128 bits and reduced once.
func (e Engine) dot(a, b []uint64) uint64 {

	q := e.modulus

	var hi, lo, carry uint64

	for i := range a {

		phi, plo := bits.Mul64(a[i]%q, b[i]%q)

		lo, carry = bits.Add64(lo, plo, 0)
		hi += phi + carry

		// hi*2^64 + lo = (hi mod q)*2^64 + lo mod q
		if hi >= 1<<62 {
			hi %= q
		}
	}

	return bits.Rem64(hi, lo, q)
}

// Dot returns the inner product <a, b> mod q.
func (e Engine) Dot(a, b Vector) (uint64, error) {
	if len(a) != len(b) {
		return 0, utils.NewDimensionError("Dot", len(a), len(b))
	}
	return e.dot(a, b), nil
}

// MatVec returns A * x mod q.
func (e Engine) MatVec(A Matrix, x Vector) (y Vector, err error) {

	if err = checkMatrix("MatVec", A); err != nil {
		return
	}

	if A.Cols() != len(x) {
		return nil, utils.NewDimensionError("MatVec", A.Cols(), len(x))
	}

	y = e.NewVector(A.Rows())

	for i := range A {
		y[i] = e.dot(A[i], x)
	}

	return
}

// VecMat returns x^T * A mod q.
func (e Engine) VecMat(x Vector, A Matrix) (y Vector, err error) {

	if err = checkMatrix("VecMat", A); err != nil {
		return
	}

	if A.Rows() != len(x) {
		return nil, utils.NewDimensionError("VecMat", A.Rows(), len(x))
	}

	col := make([]uint64, A.Rows())

	y = e.NewVector(A.Cols())

	for j := range y {
		for i := range A {
			col[i] = A[i][j]
		}
		y[j] = e.dot(x, col)
	}

	return
}

// Add returns a + b mod q.
func (e Engine) Add(a, b Vector) (c Vector, err error) {
	if len(a) != len(b) {
		return nil, utils.NewDimensionError("Add", len(a), len(b))
	}
	q := e.modulus
	c = e.NewVector(len(a))
	for i := range c {
		c[i] = ring.CRed(a[i]%q+b[i]%q, q)
	}
	return
}

// Sub returns a - b mod q.
func (e Engine) Sub(a, b Vector) (c Vector, err error) {
	if len(a) != len(b) {
		return nil, utils.NewDimensionError("Sub", len(a), len(b))
	}
	q := e.modulus
	c = e.NewVector(len(a))
	for i := range c {
		c[i] = ring.CRed(a[i]%q+q-b[i]%q, q)
	}
	return
}

// Neg returns -a mod q.
func (e Engine) Neg(a Vector) (c Vector) {
	q := e.modulus
	c = e.NewVector(len(a))
	for i := range c {
		c[i] = ring.CRed(q-a[i]%q, q)
	}
	return
}

// MulScalar returns scalar * a mod q.
func (e Engine) MulScalar(a Vector, scalar uint64) (c Vector) {
	q := e.modulus
	c = e.NewVector(len(a))
	for i := range c {
		c[i] = ring.MulMod(a[i], scalar, q)
	}
	return
}

// Map returns f(a[i]) mod q for each element of a.
func (e Engine) Map(a Vector, f func(uint64) uint64) (c Vector) {
	q := e.modulus
	c = e.NewVector(len(a))
	for i := range c {
		c[i] = f(a[i]) % q
	}
	return
}

// Reduce returns the canonical representatives in [0, q) of the signed values a.
func (e Engine) Reduce(a []int64) (c Vector) {
	c = e.NewVector(len(a))
	ring.ReduceVec(a, e.modulus, c)
	return
}

// Centered returns the representatives in (-q/2, q/2] of the values of a.
func (e Engine) Centered(a Vector) (c []int64) {
	c = make([]int64, len(a))
	ring.CenteredReduceVec(a, e.modulus, c)
	return
}
