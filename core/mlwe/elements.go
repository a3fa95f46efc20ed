package mlwe

import (
	"bytes"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils/structs"
)

// SecretKey is a type for MLWE secret keys: a vector s0 of k small polynomials.
type SecretKey struct {
	Value structs.Vector[ring.Poly]
}

// Variant returns [schemes.ModuleLWE].
func (sk *SecretKey) Variant() schemes.Variant {
	return schemes.ModuleLWE
}

// CopyNew creates a deep copy of the receiver secret key and returns it.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: sk.Value.CopyNew()}
}

// Equal performs a deep equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return sk.Value.Equal(other.Value)
}

// PublicKey is a type for MLWE public keys. A is the k x k uniform matrix
// expanded from Seed and B = A*s0 + e0.
type PublicKey struct {
	Seed []byte
	A    structs.Matrix[ring.Poly]
	B    structs.Vector[ring.Poly]
}

// Variant returns [schemes.ModuleLWE].
func (pk *PublicKey) Variant() schemes.Variant {
	return schemes.ModuleLWE
}

// CopyNew creates a deep copy of the receiver public key and returns it.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{
		Seed: append([]byte{}, pk.Seed...),
		A:    pk.A.CopyNew(),
		B:    pk.B.CopyNew(),
	}
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return bytes.Equal(pk.Seed, other.Seed) && pk.A.Equal(other.A) && pk.B.Equal(other.B)
}

// Plaintext is a message of k*N values in [0, P). The i-th chunk of N
// values is carried by the i-th polynomial of the ciphertext.
type Plaintext struct {
	Value []uint64
}

// NewPlaintext returns a new plaintext holding a copy of values.
func NewPlaintext(values []uint64) *Plaintext {
	return &Plaintext{Value: append([]uint64{}, values...)}
}

// Ciphertext is a MLWE ciphertext: U = A^T*r + e1 and
// V[i] = <B, r> + e2[i] + Encode(m_i).
type Ciphertext struct {
	U structs.Vector[ring.Poly]
	V structs.Vector[ring.Poly]
}

// NewCiphertext returns a new [Ciphertext] with zero values.
func NewCiphertext(params Parameters) *Ciphertext {
	return &Ciphertext{
		U: params.RingQ().NewPolyVector(params.Rank()),
		V: params.RingQ().NewPolyVector(params.Rank()),
	}
}

// Variant returns [schemes.ModuleLWE].
func (ct *Ciphertext) Variant() schemes.Variant {
	return schemes.ModuleLWE
}

// CopyNew creates a deep copy of the receiver ciphertext and returns it.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{U: ct.U.CopyNew(), V: ct.V.CopyNew()}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return ct.U.Equal(other.U) && ct.V.Equal(other.V)
}
