package mlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
	"github.com/SadeemSajid/crypto-lattice/utils/structs"
)

// Encryptor is a structure that encrypts plaintexts under a [PublicKey].
// It is not safe for concurrent use.
type Encryptor struct {
	params    Parameters
	pk        *PublicKey
	xrSampler ring.Sampler
	xeSampler ring.Sampler
}

// NewEncryptor creates a new [Encryptor] for the public key pk, reading all its
// randomness from prng.
func NewEncryptor(params Parameters, pk *PublicKey, prng sampling.PRNG) (enc *Encryptor, err error) {

	if err = checkPk(params, pk); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}

	enc = &Encryptor{params: params, pk: pk}

	if enc, err = enc.WithPRNG(prng); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}

	return
}

// checkPk checks that a given pk is correct for the parameters.
func checkPk(params Parameters, pk *PublicKey) error {

	if pk == nil {
		return fmt.Errorf("public key is nil")
	}

	k := params.Rank()

	if pk.A.Rows() != k || !pk.A.IsRectangular() || pk.A.Cols() != k || len(pk.B) != k {
		return fmt.Errorf("pk rank does not match params rank %d", k)
	}

	return vectorDegree(params, pk.B)
}

// WithPRNG returns a copy of this encryptor with prng as its source of randomness.
// The returned encryptor isn't safe to use concurrently with the original encryptor.
func (enc Encryptor) WithPRNG(prng sampling.PRNG) (*Encryptor, error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot WithPRNG: prng is nil")
	}

	var err error
	if enc.xrSampler, err = ring.NewSampler(prng, enc.params.Q(), Xr); err != nil {
		return nil, fmt.Errorf("cannot WithPRNG: %w", err)
	}

	if enc.xeSampler, err = ring.NewSampler(prng, enc.params.Q(), enc.params.Xe()); err != nil {
		return nil, fmt.Errorf("cannot WithPRNG: %w", err)
	}

	return &enc, nil
}

// EncryptNew encrypts the plaintext pt of exactly k*N values and returns the result
// in a new [Ciphertext].
func (enc Encryptor) EncryptNew(pt *Plaintext) (ct *Ciphertext, err error) {
	ct = NewCiphertext(enc.params)
	if err = enc.Encrypt(pt, ct); err != nil {
		return nil, err
	}
	return
}

// Encrypt encrypts the plaintext pt and writes the result on ct.
//
// The encryption samples a binary vector r and error vectors e1, e2, and
// evaluates U = A^T*r + e1 and V[i] = <B, r> + e2[i] + Encode(m_i).
func (enc Encryptor) Encrypt(pt *Plaintext, ct *Ciphertext) (err error) {

	if pt == nil {
		return fmt.Errorf("cannot Encrypt: plaintext is nil")
	}

	if err = schemes.CheckPlaintext("Encrypt", pt.Value, enc.params.MessageLength(), enc.params.P()); err != nil {
		return
	}

	if len(ct.U) != enc.params.Rank() || len(ct.V) != enc.params.Rank() {
		return fmt.Errorf("cannot Encrypt: ciphertext rank does not match params rank %d", enc.params.Rank())
	}

	for _, v := range []structs.Vector[ring.Poly]{ct.U, ct.V} {
		if err = vectorDegree(enc.params, v); err != nil {
			return fmt.Errorf("cannot Encrypt: %w", err)
		}
	}

	ringQ := enc.params.RingQ()
	N := enc.params.N()
	q, p := enc.params.Q(), enc.params.P()

	r := ringQ.NewPolyVector(enc.params.Rank())
	for i := range r {
		enc.xrSampler.Read(r[i])
	}

	if err = ringQ.MatTransposeVecMul(enc.pk.A, r, ct.U); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	for i := range ct.U {
		enc.xeSampler.ReadAndAdd(ct.U[i])
	}

	mask := ringQ.NewPoly()
	if err = ringQ.InnerProduct(enc.pk.B, r, mask); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	for i := range ct.V {
		ct.V[i].Copy(mask)
		enc.xeSampler.ReadAndAdd(ct.V[i])
		for j, m := range pt.Value[i*N : (i+1)*N] {
			ct.V[i].Coeffs[j] = ring.CRed(ct.V[i].Coeffs[j]+ring.Encode(m, q, p), q)
		}
	}

	return
}

// vectorDegree returns an error if the polynomials of v are not of degree N.
func vectorDegree(params Parameters, v structs.Vector[ring.Poly]) error {
	for i := range v {
		if v[i].N() != params.N() {
			return fmt.Errorf("ring degree %d of element %d does not match params ring degree %d", v[i].N(), i, params.N())
		}
	}
	return nil
}
