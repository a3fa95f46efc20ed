// Package bignum implements arbitrary precision arithmetic helpers.
package bignum

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valid types for x are: int, int64, uint, uint64, float64, *big.Int or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valid types are int, int64, uint, uint64, float64, *big.Int or *big.Float but is %T", x))
	}

	return
}

// Exp returns exp(x) with the precision of x.
func Exp(x *big.Float) (exp *big.Float) {
	return bigfloat.Exp(x)
}

// GaussianWeight returns exp(-x^2/(2*sigma^2)) with prec bits of precision.
// sigma must be positive.
func GaussianWeight(x int64, sigma float64, prec uint) (w *big.Float) {
	num := NewFloat(x, prec)
	num.Mul(num, num)
	den := NewFloat(sigma, prec)
	den.Mul(den, den)
	den.Add(den, den)
	num.Quo(num, den)
	num.Neg(num)
	return Exp(num)
}
