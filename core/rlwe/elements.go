package rlwe

import (
	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
)

// SecretKey is a type for RLWE secret keys: a small polynomial s.
type SecretKey struct {
	Value ring.Poly
}

// NewSecretKey generates a new [SecretKey] with zero values.
func NewSecretKey(params Parameters) *SecretKey {
	return &SecretKey{Value: params.RingQ().NewPoly()}
}

// Variant returns [schemes.RingLWE].
func (sk *SecretKey) Variant() schemes.Variant {
	return schemes.RingLWE
}

// CopyNew creates a deep copy of the receiver secret key and returns it.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: *sk.Value.CopyNew()}
}

// Equal performs a deep equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return sk.Value.Equal(&other.Value)
}

// PublicKey is a type for RLWE public keys: a uniform polynomial A and
// B = A*s + e.
type PublicKey struct {
	A ring.Poly
	B ring.Poly
}

// NewPublicKey returns a new [PublicKey] with zero values.
func NewPublicKey(params Parameters) *PublicKey {
	return &PublicKey{A: params.RingQ().NewPoly(), B: params.RingQ().NewPoly()}
}

// Variant returns [schemes.RingLWE].
func (pk *PublicKey) Variant() schemes.Variant {
	return schemes.RingLWE
}

// CopyNew creates a deep copy of the receiver public key and returns it.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{A: *pk.A.CopyNew(), B: *pk.B.CopyNew()}
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return pk.A.Equal(&other.A) && pk.B.Equal(&other.B)
}

// Plaintext is a message of N values in [0, P), one per coefficient.
type Plaintext struct {
	Value []uint64
}

// NewPlaintext returns a new plaintext holding a copy of values.
func NewPlaintext(values []uint64) *Plaintext {
	return &Plaintext{Value: append([]uint64{}, values...)}
}

// Ciphertext is a RLWE ciphertext (U, V) = (A*r + e1, B*r + e2 + Encode(m)).
type Ciphertext struct {
	U ring.Poly
	V ring.Poly
}

// NewCiphertext returns a new [Ciphertext] with zero values.
func NewCiphertext(params Parameters) *Ciphertext {
	return &Ciphertext{U: params.RingQ().NewPoly(), V: params.RingQ().NewPoly()}
}

// Variant returns [schemes.RingLWE].
func (ct *Ciphertext) Variant() schemes.Variant {
	return schemes.RingLWE
}

// CopyNew creates a deep copy of the receiver ciphertext and returns it.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{U: *ct.U.CopyNew(), V: *ct.V.CopyNew()}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return ct.U.Equal(&other.U) && ct.V.Equal(&other.V)
}
