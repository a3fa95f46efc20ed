package ring

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/utils"
	"github.com/SadeemSajid/crypto-lattice/utils/structs"
)

// NewPolyVector allocates a vector of size zero polynomials of the ring.
func (r Ring) NewPolyVector(size int) structs.Vector[Poly] {
	v := make(structs.Vector[Poly], size)
	for i := range v {
		v[i] = r.NewPoly()
	}
	return v
}

// NewPolyMatrix allocates a rows x cols matrix of zero polynomials of the ring.
func (r Ring) NewPolyMatrix(rows, cols int) structs.Matrix[Poly] {
	m := make(structs.Matrix[Poly], rows)
	for i := range m {
		m[i] = r.NewPolyVector(cols)
	}
	return m
}

// InnerProduct evaluates out = sum_i a[i] * b[i] in the ring.
func (r Ring) InnerProduct(a, b structs.Vector[Poly], out Poly) (err error) {

	if len(a) != len(b) {
		return utils.NewDimensionError("InnerProduct", len(a), len(b))
	}

	if err = r.checkDegree("InnerProduct", out); err != nil {
		return
	}

	acc := r.NewPoly()
	tmp := r.NewPoly()

	for i := range a {
		if err = r.Mul(a[i], b[i], tmp); err != nil {
			return fmt.Errorf("cannot InnerProduct: %w", err)
		}
		if err = r.Add(acc, tmp, acc); err != nil {
			return fmt.Errorf("cannot InnerProduct: %w", err)
		}
	}

	out.Copy(acc)

	return
}

// MatVecMul evaluates out = A * v, where A is a rows x cols matrix of
// polynomials and v a vector of cols polynomials.
func (r Ring) MatVecMul(A structs.Matrix[Poly], v, out structs.Vector[Poly]) (err error) {

	if !A.IsRectangular() {
		return fmt.Errorf("cannot MatVecMul: %w: matrix rows are not of equal length", utils.ErrDimensionMismatch)
	}

	if A.Cols() != len(v) {
		return utils.NewDimensionError("MatVecMul", A.Cols(), len(v))
	}

	if A.Rows() != len(out) {
		return utils.NewDimensionError("MatVecMul", A.Rows(), len(out))
	}

	for i := range A {
		if err = r.InnerProduct(A.Row(i), v, out[i]); err != nil {
			return fmt.Errorf("cannot MatVecMul: %w", err)
		}
	}

	return
}

// MatTransposeVecMul evaluates out = A^T * v, where A is a rows x cols matrix of
// polynomials and v a vector of rows polynomials.
func (r Ring) MatTransposeVecMul(A structs.Matrix[Poly], v, out structs.Vector[Poly]) (err error) {

	if !A.IsRectangular() {
		return fmt.Errorf("cannot MatTransposeVecMul: %w: matrix rows are not of equal length", utils.ErrDimensionMismatch)
	}

	if A.Rows() != len(v) {
		return utils.NewDimensionError("MatTransposeVecMul", A.Rows(), len(v))
	}

	if A.Cols() != len(out) {
		return utils.NewDimensionError("MatTransposeVecMul", A.Cols(), len(out))
	}

	col := make(structs.Vector[Poly], A.Rows())

	for j := range out {
		for i := range A {
			col[i] = A[i][j]
		}
		if err = r.InnerProduct(col, v, out[j]); err != nil {
			return fmt.Errorf("cannot MatTransposeVecMul: %w", err)
		}
	}

	return
}
