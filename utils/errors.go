package utils

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned, wrapped, whenever two operands
// or an operand and its parameters do not have compatible sizes.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// NewDimensionError returns an error wrapping [ErrDimensionMismatch]
// that names the operation and the two sizes.
func NewDimensionError(op string, want, have int) error {
	return fmt.Errorf("cannot %s: %w: want %d but have %d", op, ErrDimensionMismatch, want, have)
}
