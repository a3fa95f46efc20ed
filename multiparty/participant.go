package multiparty

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// Share is a message of the key exchange: the public polynomial m multiplied by
// the secret of its originator and of every participant that relayed it, plus
// accumulated even noise.
type Share struct {
	// Origin is the index of the participant that generated the share.
	Origin int
	// Hops is the number of times the share was relayed.
	Hops  int
	Value ring.Poly
}

// KeyPoly is the local key polynomial of a participant, approximately equal to
// m*s_0*...*s_{k-1}.
type KeyPoly struct {
	Value ring.Poly
}

// Signal is the reconciliation signal broadcast by participant 0: one bit per
// coefficient, set if the coefficient lies outside the inner region [-q/4, q/4].
type Signal []uint64

// Participant is a party of the key exchange. It owns its secret polynomial and
// reads all its randomness from its own PRNG. It is not safe for concurrent use.
type Participant struct {
	params    Parameters
	id        int
	sk        ring.Poly
	xeSampler ring.Sampler
}

// NewParticipant creates the participant of index id and samples its secret from Xs.
func NewParticipant(params Parameters, id int, prng sampling.PRNG) (p *Participant, err error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot NewParticipant: prng is nil")
	}

	if id < 0 {
		return nil, fmt.Errorf("cannot NewParticipant: invalid id=%d: must be non-negative", id)
	}

	var xsSampler ring.Sampler
	if xsSampler, err = ring.NewSampler(prng, params.Q(), params.Xs()); err != nil {
		return nil, fmt.Errorf("cannot NewParticipant: %w", err)
	}

	p = &Participant{
		params: params,
		id:     id,
		sk:     xsSampler.ReadNew(params.N()),
	}

	if p.xeSampler, err = ring.NewSampler(prng, params.Q(), params.Xe()); err != nil {
		return nil, fmt.Errorf("cannot NewParticipant: %w", err)
	}

	return
}

// ID returns the index of the participant.
func (p Participant) ID() int {
	return p.id
}

// mulSecretAddNoise returns in*s + 2e.
func (p Participant) mulSecretAddNoise(op string, in ring.Poly) (out ring.Poly, err error) {

	ringQ := p.params.RingQ()

	out = ringQ.NewPoly()

	if err = ringQ.Mul(in, p.sk, out); err != nil {
		return out, fmt.Errorf("cannot %s: %w", op, err)
	}

	e := p.xeSampler.ReadNew(p.params.N())

	if err = ringQ.MulScalar(e, 2, e); err != nil {
		return out, fmt.Errorf("cannot %s: %w", op, err)
	}

	if err = ringQ.Add(out, e, out); err != nil {
		return out, fmt.Errorf("cannot %s: %w", op, err)
	}

	return
}

// GenInitialShare generates the participant's first message m*s_i + 2e.
func (p Participant) GenInitialShare(crp CRP) (share Share, err error) {

	share = Share{Origin: p.id}

	if share.Value, err = p.mulSecretAddNoise("GenInitialShare", crp.Value); err != nil {
		return Share{}, err
	}

	return
}

// Relay multiplies the share received from another participant by the
// participant's secret and adds fresh even noise.
func (p Participant) Relay(share Share) (relayed Share, err error) {

	if share.Origin == p.id {
		return Share{}, fmt.Errorf("cannot Relay: participant %d cannot relay its own share", p.id)
	}

	relayed = Share{Origin: share.Origin, Hops: share.Hops + 1}

	if relayed.Value, err = p.mulSecretAddNoise("Relay", share.Value); err != nil {
		return Share{}, err
	}

	return
}

// GenKeyPoly computes the participant's key polynomial from the intermediary
// share, which must carry the secrets of all the other participants.
func (p Participant) GenKeyPoly(intermediary Share) (K KeyPoly, err error) {

	if intermediary.Origin == p.id {
		return KeyPoly{}, fmt.Errorf("cannot GenKeyPoly: participant %d cannot use its own share", p.id)
	}

	if K.Value, err = p.mulSecretAddNoise("GenKeyPoly", intermediary.Value); err != nil {
		return KeyPoly{}, err
	}

	return
}

// GenSignal returns the reconciliation signal of K.
func (p Participant) GenSignal(K KeyPoly) (Signal, error) {
	return GenSignal(p.params, K)
}

// Reconcile extracts the shared key from K and the broadcast signal.
func (p Participant) Reconcile(K KeyPoly, sigma Signal) (SharedKey, error) {
	return Reconcile(p.params, K, sigma)
}

// GenSignal returns the reconciliation signal of K: sigma_j = 0 if the centered
// representative of K_j has absolute value at most floor(q/4), and 1 otherwise.
func GenSignal(params Parameters, K KeyPoly) (sigma Signal, err error) {

	if K.Value.N() != params.N() {
		return nil, utils.NewDimensionError("GenSignal", params.N(), K.Value.N())
	}

	q := params.Q()
	quarter := int64(q >> 2)

	sigma = make(Signal, params.N())
	for j, c := range K.Value.Coeffs {
		if utils.Abs(ring.CenteredReduce(c, q)) > quarter {
			sigma[j] = 1
		}
	}

	return
}

// Reconcile returns key_j = ((K_j + sigma_j*(q-1)/2) mod q) mod 2, where the
// reduction modulo q is centered. Two key polynomials whose difference is a
// small even polynomial reconcile to the same key under the signal of either.
func Reconcile(params Parameters, K KeyPoly, sigma Signal) (key SharedKey, err error) {

	if K.Value.N() != params.N() {
		return nil, utils.NewDimensionError("Reconcile", params.N(), K.Value.N())
	}

	if len(sigma) != params.N() {
		return nil, utils.NewDimensionError("Reconcile", params.N(), len(sigma))
	}

	q := params.Q()
	half := (q - 1) >> 1

	key = make(SharedKey, params.N())
	for j, c := range K.Value.Coeffs {

		if sigma[j] > 1 {
			return nil, fmt.Errorf("cannot Reconcile: invalid signal value %d at index %d", sigma[j], j)
		}

		v := ring.CRed(c%q+sigma[j]*half, q)

		// the parity of a negative int64 is read on its two's complement
		key[j] = uint64(ring.CenteredReduce(v, q) & 1)
	}

	return
}
