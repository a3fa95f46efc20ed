package lwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/linalg"
	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// Encryptor is a structure that encrypts plaintexts under a [PublicKey].
// It is not safe for concurrent use.
type Encryptor struct {
	params    Parameters
	engine    *linalg.Engine
	pk        *PublicKey
	xrSampler ring.Sampler
	xeSampler ring.Sampler
}

// NewEncryptor creates a new [Encryptor] for the public key pk, reading
// all its randomness from prng.
func NewEncryptor(params Parameters, pk *PublicKey, prng sampling.PRNG) (enc *Encryptor, err error) {

	if err = checkPublicKey(params, pk); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}

	enc = &Encryptor{params: params, pk: pk}

	if enc.engine, err = linalg.NewEngine(params.Q()); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}

	if enc, err = enc.WithPRNG(prng); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}

	return
}

// checkPublicKey checks that a given pk is correct for the parameters.
func checkPublicKey(params Parameters, pk *PublicKey) error {

	if pk == nil {
		return fmt.Errorf("public key is nil")
	}

	if pk.A.Rows() != params.M() || !pk.A.IsRectangular() || pk.A.Cols() != params.N() {
		return fmt.Errorf("public key matrix does not match parameters dimensions %dx%d", params.M(), params.N())
	}

	if len(pk.B) != params.M() {
		return fmt.Errorf("public key vector length %d does not match parameters number of samples %d", len(pk.B), params.M())
	}

	return nil
}

// WithPRNG returns a copy of this encryptor with prng as its source of
// randomness. The returned encryptor isn't safe to use concurrently with
// the original encryptor.
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

// EncryptNew encrypts the plaintext pt and returns the result in a new
// [Ciphertext]. Each value m_j of pt is encrypted with a fresh binary
// vector r_j and a fresh error e'_j.
func (enc Encryptor) EncryptNew(pt *Plaintext) (ct *Ciphertext, err error) {

	if pt == nil {
		return nil, fmt.Errorf("cannot EncryptNew: plaintext is nil")
	}

	if err = schemes.CheckPlaintext("EncryptNew", pt.Value, 0, enc.params.P()); err != nil {
		return
	}

	L := len(pt.Value)
	q, p := enc.params.Q(), enc.params.P()

	ct = &Ciphertext{
		U: make(linalg.Matrix, L),
		V: enc.engine.NewVector(L),
	}

	ePrime := enc.engine.SampleVector(enc.xeSampler, L)

	for j := 0; j < L; j++ {

		r := enc.engine.SampleVector(enc.xrSampler, enc.params.M())

		if ct.U[j], err = enc.engine.VecMat(r, enc.pk.A); err != nil {
			return nil, fmt.Errorf("cannot EncryptNew: %w", err)
		}

		var v uint64
		if v, err = enc.engine.Dot(enc.pk.B, r); err != nil {
			return nil, fmt.Errorf("cannot EncryptNew: %w", err)
		}

		ct.V[j] = ring.CRed(ring.CRed(v+ePrime[j], q)+ring.Encode(pt.Value[j], q, p), q)
	}

	return
}
