package ring

import (
	"github.com/SadeemSajid/crypto-lattice/utils"
)

// Poly is the structure that contains the coefficients of a polynomial.
// Coeffs[i] is the coefficient of x^i.
type Poly struct {
	Coeffs []uint64
}

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) (pol Poly) {
	return Poly{Coeffs: make([]uint64, N)}
}

// N returns the number of coefficients of the polynomial.
func (pol Poly) N() int {
	return len(pol.Coeffs)
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() *Poly {
	p1 := NewPoly(pol.N())
	copy(p1.Coeffs, pol.Coeffs)
	return &p1
}

// Copy copies the coefficients of p1 on the target polynomial.
// Only copies min(pol.N(), p1.N()) coefficients.
func (pol *Poly) Copy(p1 Poly) {
	copy(pol.Coeffs, p1.Coeffs)
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
// This function checks for strict equality between the polynomial coefficients
// (i.e., it does not consider congruence as equality within the ring).
func (pol Poly) Equal(other *Poly) bool {
	return other != nil && utils.EqualSlice(pol.Coeffs, other.Coeffs)
}
