package lwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/linalg"
	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
)

// Decryptor is a structure used to decrypt [Ciphertext]. It stores the secret-key.
type Decryptor struct {
	params Parameters
	engine *linalg.Engine
	sk     *SecretKey
}

// NewDecryptor instantiates a new plain LWE [Decryptor].
func NewDecryptor(params Parameters, sk *SecretKey) (dec *Decryptor, err error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key is nil")
	}

	if len(sk.Value) != params.N() {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key dimension %d does not match parameters dimension %d", len(sk.Value), params.N())
	}

	dec = &Decryptor{params: params, sk: sk}

	if dec.engine, err = linalg.NewEngine(params.Q()); err != nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w", err)
	}

	return
}

// phase returns V[j] - <U[j], s> mod q for every value of ct.
func (d Decryptor) phase(ct *Ciphertext) (phase linalg.Vector, err error) {

	if ct == nil {
		return nil, fmt.Errorf("ciphertext is nil")
	}

	if len(ct.U) != len(ct.V) {
		return nil, fmt.Errorf("malformed ciphertext: %d preamble rows for %d payload values", len(ct.U), len(ct.V))
	}

	var us linalg.Vector
	if us, err = d.engine.MatVec(ct.U, d.sk.Value); err != nil {
		return
	}

	return d.engine.Sub(ct.V, us)
}

// DecryptNew decrypts the [Ciphertext] and returns the result in a new [Plaintext].
func (d Decryptor) DecryptNew(ct *Ciphertext) (pt *Plaintext, err error) {

	var phase linalg.Vector
	if phase, err = d.phase(ct); err != nil {
		return nil, fmt.Errorf("cannot DecryptNew: %w", err)
	}

	pt = &Plaintext{Value: make([]uint64, len(phase))}
	ring.DecodeVec(phase, d.params.Q(), d.params.P(), pt.Value)

	return
}

// Noise returns the centered decryption noise of ct, given the plaintext pt
// it encrypts: the values V[j] - <U[j], s> - Encode(m_j) in (-q/2, q/2].
func (d Decryptor) Noise(ct *Ciphertext, pt *Plaintext) (noise []int64, err error) {

	if pt == nil {
		return nil, fmt.Errorf("cannot Noise: plaintext is nil")
	}

	var phase linalg.Vector
	if phase, err = d.phase(ct); err != nil {
		return nil, fmt.Errorf("cannot Noise: %w", err)
	}

	if err = schemes.CheckPlaintext("Noise", pt.Value, len(phase), d.params.P()); err != nil {
		return
	}

	q, p := d.params.Q(), d.params.P()

	for j := range phase {
		phase[j] = ring.CRed(phase[j]+q-ring.Encode(pt.Value[j], q, p), q)
	}

	return d.engine.Centered(phase), nil
}
