package rlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// Encryptor is a structure that encrypts plaintexts under a [PublicKey].
// It is not safe for concurrent use.
type Encryptor struct {
	params    Parameters
	pk        *PublicKey
	xsSampler ring.Sampler
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
	if pk.A.N() != params.N() || pk.B.N() != params.N() {
		return fmt.Errorf("pk ring degree does not match params ring degree")
	}
	return nil
}

// WithPRNG returns a copy of this encryptor with prng as its source of randomness.
// The returned encryptor isn't safe to use concurrently with the original encryptor.
func (enc Encryptor) WithPRNG(prng sampling.PRNG) (*Encryptor, error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot WithPRNG: prng is nil")
	}

	var err error
	if enc.xsSampler, err = ring.NewSampler(prng, enc.params.Q(), enc.params.Xs()); err != nil {
		return nil, fmt.Errorf("cannot WithPRNG: %w", err)
	}

	if enc.xeSampler, err = ring.NewSampler(prng, enc.params.Q(), enc.params.Xe()); err != nil {
		return nil, fmt.Errorf("cannot WithPRNG: %w", err)
	}

	return &enc, nil
}

// EncryptNew encrypts the plaintext pt of exactly N values and returns the result
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
// The encryption samples a fresh r from Xs and e1, e2 from Xe, and evaluates
// U = A*r + e1 and V = B*r + e2 + Encode(pt).
func (enc Encryptor) Encrypt(pt *Plaintext, ct *Ciphertext) (err error) {

	if pt == nil {
		return fmt.Errorf("cannot Encrypt: plaintext is nil")
	}

	if err = schemes.CheckPlaintext("Encrypt", pt.Value, enc.params.N(), enc.params.P()); err != nil {
		return
	}

	ringQ := enc.params.RingQ()

	r := ringQ.NewPoly()
	enc.xsSampler.Read(r)

	if err = ringQ.Mul(enc.pk.A, r, ct.U); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	if err = ringQ.Mul(enc.pk.B, r, ct.V); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	enc.xeSampler.ReadAndAdd(ct.U)
	enc.xeSampler.ReadAndAdd(ct.V)

	m := ringQ.NewPoly()
	ring.EncodeVec(pt.Value, enc.params.Q(), enc.params.P(), m.Coeffs)

	return ringQ.Add(ct.V, m, ct.V)
}
