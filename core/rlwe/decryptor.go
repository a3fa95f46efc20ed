package rlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
)

// Decryptor is a structure used to decrypt [Ciphertext]. It stores the secret-key.
type Decryptor struct {
	params Parameters
	ringQ  *ring.Ring
	sk     *SecretKey
}

// NewDecryptor instantiates a new RLWE [Decryptor].
func NewDecryptor(params Parameters, sk *SecretKey) (*Decryptor, error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key is nil")
	}

	if sk.Value.N() != params.N() {
		return nil, fmt.Errorf("cannot NewDecryptor: secret_key ring degree does not match parameters ring degree")
	}

	return &Decryptor{
		params: params,
		ringQ:  params.RingQ(),
		sk:     sk,
	}, nil
}

// phase returns V - U*s.
func (d Decryptor) phase(ct *Ciphertext) (phase ring.Poly, err error) {

	if ct == nil {
		return phase, fmt.Errorf("ciphertext is nil")
	}

	phase = d.ringQ.NewPoly()

	if err = d.ringQ.Mul(ct.U, d.sk.Value, phase); err != nil {
		return
	}

	err = d.ringQ.Sub(ct.V, phase, phase)

	return
}

// DecryptNew decrypts the [Ciphertext] and returns the result in a new [Plaintext].
func (d Decryptor) DecryptNew(ct *Ciphertext) (pt *Plaintext, err error) {

	var phase ring.Poly
	if phase, err = d.phase(ct); err != nil {
		return nil, fmt.Errorf("cannot DecryptNew: %w", err)
	}

	pt = &Plaintext{Value: make([]uint64, d.params.N())}
	ring.DecodeVec(phase.Coeffs, d.params.Q(), d.params.P(), pt.Value)

	return
}

// Noise returns the centered coefficients of the decryption noise
// V - U*s - Encode(pt) = e*r + e2 - e1*s of ct, given the plaintext pt it encrypts.
func (d Decryptor) Noise(ct *Ciphertext, pt *Plaintext) (noise []int64, err error) {

	if pt == nil {
		return nil, fmt.Errorf("cannot Noise: plaintext is nil")
	}

	if err = schemes.CheckPlaintext("Noise", pt.Value, d.params.N(), d.params.P()); err != nil {
		return
	}

	var phase ring.Poly
	if phase, err = d.phase(ct); err != nil {
		return nil, fmt.Errorf("cannot Noise: %w", err)
	}

	m := d.ringQ.NewPoly()
	ring.EncodeVec(pt.Value, d.params.Q(), d.params.P(), m.Coeffs)

	if err = d.ringQ.Sub(phase, m, phase); err != nil {
		return nil, fmt.Errorf("cannot Noise: %w", err)
	}

	noise = make([]int64, d.params.N())
	if err = d.ringQ.PolyToCenteredInt64(phase, noise); err != nil {
		return nil, fmt.Errorf("cannot Noise: %w", err)
	}

	return
}
