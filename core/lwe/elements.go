package lwe

import (
	"github.com/SadeemSajid/crypto-lattice/linalg"
	"github.com/SadeemSajid/crypto-lattice/schemes"
)

// SecretKey is a type for plain LWE secret keys: a vector s of Z_q^N.
type SecretKey struct {
	Value linalg.Vector
}

// Variant returns [schemes.PlainLWE].
func (sk *SecretKey) Variant() schemes.Variant {
	return schemes.PlainLWE
}

// CopyNew creates a deep copy of the receiver secret key and returns it.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: sk.Value.CopyNew()}
}

// Equal performs a deep equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return sk.Value.Equal(other.Value)
}

// PublicKey is a type for plain LWE public keys: a uniform matrix A of
// Z_q^{M x N} and the vector b = A*s + e of Z_q^M.
type PublicKey struct {
	A linalg.Matrix
	B linalg.Vector
}

// Variant returns [schemes.PlainLWE].
func (pk *PublicKey) Variant() schemes.Variant {
	return schemes.PlainLWE
}

// CopyNew creates a deep copy of the receiver public key and returns it.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{A: pk.A.CopyNew(), B: pk.B.CopyNew()}
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return pk.A.Equal(other.A) && pk.B.Equal(other.B)
}

// Plaintext is a message: a slice of values in [0, P).
type Plaintext struct {
	Value []uint64
}

// NewPlaintext returns a new plaintext holding a copy of values.
func NewPlaintext(values []uint64) *Plaintext {
	return &Plaintext{Value: append([]uint64{}, values...)}
}

// Ciphertext is a plain LWE ciphertext of a message of length L.
// Each value j of the message is encrypted independently as the
// pair (U[j], V[j]), with U[j] = r_j^T * A in Z_q^N and
// V[j] = <b, r_j> + e'_j + Encode(m_j) in Z_q.
type Ciphertext struct {
	U linalg.Matrix
	V linalg.Vector
}

// Variant returns [schemes.PlainLWE].
func (ct *Ciphertext) Variant() schemes.Variant {
	return schemes.PlainLWE
}

// Len returns the number of values encrypted by the ciphertext.
func (ct Ciphertext) Len() int {
	return len(ct.V)
}

// CopyNew creates a deep copy of the receiver ciphertext and returns it.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{U: ct.U.CopyNew(), V: ct.V.CopyNew()}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return ct.U.Equal(other.U) && ct.V.Equal(other.V)
}
