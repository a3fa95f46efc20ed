package mlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils/structs"
)

// Decryptor is a structure used to decrypt [Ciphertext]. It stores the secret-key.
type Decryptor struct {
	params Parameters
	ringQ  *ring.Ring
	sk     *SecretKey
}

// NewDecryptor instantiates a new MLWE [Decryptor].
func NewDecryptor(params Parameters, sk *SecretKey) (*Decryptor, error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key is nil")
	}

	if len(sk.Value) != params.Rank() {
		return nil, fmt.Errorf("cannot NewDecryptor: secret key rank %d does not match parameters rank %d", len(sk.Value), params.Rank())
	}

	if err := vectorDegree(params, sk.Value); err != nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w", err)
	}

	return &Decryptor{
		params: params,
		ringQ:  params.RingQ(),
		sk:     sk,
	}, nil
}

// phase returns the vector V[i] - <U, s0>.
func (d Decryptor) phase(ct *Ciphertext) (phase structs.Vector[ring.Poly], err error) {

	if ct == nil {
		return nil, fmt.Errorf("ciphertext is nil")
	}

	if len(ct.V) != d.params.Rank() {
		return nil, fmt.Errorf("ciphertext rank %d does not match parameters rank %d", len(ct.V), d.params.Rank())
	}

	us := d.ringQ.NewPoly()
	if err = d.ringQ.InnerProduct(ct.U, d.sk.Value, us); err != nil {
		return
	}

	phase = d.ringQ.NewPolyVector(len(ct.V))
	for i := range ct.V {
		if err = d.ringQ.Sub(ct.V[i], us, phase[i]); err != nil {
			return
		}
	}

	return
}

// DecryptNew decrypts the [Ciphertext] and returns the result in a new [Plaintext].
func (d Decryptor) DecryptNew(ct *Ciphertext) (pt *Plaintext, err error) {

	var phase structs.Vector[ring.Poly]
	if phase, err = d.phase(ct); err != nil {
		return nil, fmt.Errorf("cannot DecryptNew: %w", err)
	}

	N := d.params.N()

	pt = &Plaintext{Value: make([]uint64, d.params.MessageLength())}
	for i := range phase {
		ring.DecodeVec(phase[i].Coeffs, d.params.Q(), d.params.P(), pt.Value[i*N:(i+1)*N])
	}

	return
}

// Noise returns the centered coefficients of the decryption noise
// V[i] - <U, s0> - Encode(m_i) = <e0, r> - <e1, s0> + e2[i] of ct,
// given the plaintext pt it encrypts.
func (d Decryptor) Noise(ct *Ciphertext, pt *Plaintext) (noise []int64, err error) {

	if pt == nil {
		return nil, fmt.Errorf("cannot Noise: plaintext is nil")
	}

	if err = schemes.CheckPlaintext("Noise", pt.Value, d.params.MessageLength(), d.params.P()); err != nil {
		return
	}

	var phase structs.Vector[ring.Poly]
	if phase, err = d.phase(ct); err != nil {
		return nil, fmt.Errorf("cannot Noise: %w", err)
	}

	N := d.params.N()
	q, p := d.params.Q(), d.params.P()

	noise = make([]int64, d.params.MessageLength())
	for i := range phase {
		for j, c := range phase[i].Coeffs {
			noise[i*N+j] = ring.CenteredReduce(ring.CRed(c+q-ring.Encode(pt.Value[i*N+j], q, p), q), q)
		}
	}

	return
}
