// Package schemes contains the scheme-agnostic interfaces implemented by the
// lattice encryption variants of the core packages.
package schemes

import (
	"errors"
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// ErrVariantMismatch is returned when a key or a ciphertext is given to a
// scheme of a different variant.
var ErrVariantMismatch = errors.New("variant mismatch")

// ErrPlaintextLength is returned when a message does not have the number of
// values expected by a scheme.
var ErrPlaintextLength = errors.New("invalid plaintext length")

// ErrPlaintextValue is returned when a message value is not smaller than
// the plaintext modulus.
var ErrPlaintextValue = errors.New("invalid plaintext value")

// Variant identifies a lattice encryption variant.
type Variant int

const (
	// PlainLWE is public-key encryption from the plain learning with errors problem.
	PlainLWE = Variant(iota)
	// RingLWE is public-key encryption over the ring Z_q[X]/(X^N+1).
	RingLWE
	// ModuleLWE is public-key encryption over modules of rank k over Z_q[X]/(X^N+1).
	ModuleLWE
)

var variantNames = map[Variant]string{
	PlainLWE:  "PlainLWE",
	RingLWE:   "RingLWE",
	ModuleLWE: "ModuleLWE",
}

// String returns the name of the variant.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the variant of the given name.
func ParseVariant(name string) (Variant, error) {
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid variant: %q: want PlainLWE, RingLWE or ModuleLWE", name)
}

// MarshalText encodes the variant as its name.
func (v Variant) MarshalText() ([]byte, error) {
	if _, ok := variantNames[v]; !ok {
		return nil, fmt.Errorf("cannot MarshalText: invalid variant %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a variant from its name.
func (v *Variant) UnmarshalText(text []byte) (err error) {
	*v, err = ParseVariant(string(text))
	return
}

// PublicKey is a public key of one of the variants.
type PublicKey interface {
	Variant() Variant
}

// SecretKey is a secret key of one of the variants.
type SecretKey interface {
	Variant() Variant
}

// Ciphertext is a ciphertext of one of the variants.
type Ciphertext interface {
	Variant() Variant
}

// Scheme is a variant-agnostic public-key encryption interface.
// Messages are slices of values in [0, PlaintextModulus()).
type Scheme interface {
	// Variant returns the variant implemented by the scheme.
	Variant() Variant
	// PlaintextLength returns the number of values of a message,
	// or 0 if messages of any positive length are accepted.
	PlaintextLength() int
	// PlaintextModulus returns the modulus p of the message values.
	PlaintextModulus() uint64
	// KeyGen generates a new key pair reading its randomness from prng.
	KeyGen(prng sampling.PRNG) (PublicKey, SecretKey, error)
	// Encrypt encrypts msg under pk reading its randomness from prng.
	Encrypt(msg []uint64, pk PublicKey, prng sampling.PRNG) (Ciphertext, error)
	// Decrypt decrypts ct with sk.
	Decrypt(ct Ciphertext, sk SecretKey) ([]uint64, error)
	// Noise returns the centered decryption noise of ct, given the message
	// it encrypts.
	Noise(ct Ciphertext, sk SecretKey, msg []uint64) ([]int64, error)
}

// CheckVariant returns an error wrapping ErrVariantMismatch if the variant
// of have is not want.
func CheckVariant(op string, want Variant, have interface{ Variant() Variant }) error {
	if have == nil {
		return fmt.Errorf("cannot %s: %w: want %s but have nil", op, ErrVariantMismatch, want)
	}
	if v := have.Variant(); v != want {
		return fmt.Errorf("cannot %s: %w: want %s but have %s", op, ErrVariantMismatch, want, v)
	}
	return nil
}

// CheckPlaintext returns an error if msg does not have length values
// (any positive number of values if length is 0) or if one of its
// values is not in [0, p).
func CheckPlaintext(op string, msg []uint64, length int, p uint64) error {

	if length == 0 && len(msg) == 0 {
		return fmt.Errorf("cannot %s: %w: message is empty", op, ErrPlaintextLength)
	}

	if length != 0 && len(msg) != length {
		return fmt.Errorf("cannot %s: %w: want %d but have %d", op, ErrPlaintextLength, length, len(msg))
	}

	for i, m := range msg {
		if m >= p {
			return fmt.Errorf("cannot %s: %w: value %d at index %d is not in [0, %d)", op, ErrPlaintextValue, m, i, p)
		}
	}

	return nil
}
