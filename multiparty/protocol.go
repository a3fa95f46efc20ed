package multiparty

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// Protocol orchestrates a key exchange between k >= 2 participants
// arranged on a ring, participant i sending its messages to participant i+1 mod k.
type Protocol struct {
	params       Parameters
	participants []*Participant
}

// Result is the outcome of a run of the protocol.
type Result struct {
	// Signal is the reconciliation signal broadcast by participant 0.
	Signal Signal
	// Keys[i] is the shared key derived by participant i.
	Keys []SharedKey
}

// Agree returns true if all the participants derived the same key.
func (r Result) Agree() bool {
	for i := 1; i < len(r.Keys); i++ {
		if !r.Keys[i].Equal(r.Keys[0]) {
			return false
		}
	}
	return true
}

// Disagreements returns the number of key positions on which at least one
// participant differs from participant 0.
func (r Result) Disagreements() (n int) {
	if len(r.Keys) == 0 {
		return
	}
	for j := range r.Keys[0] {
		for i := 1; i < len(r.Keys); i++ {
			if r.Keys[i][j] != r.Keys[0][j] {
				n++
				break
			}
		}
	}
	return
}

// NewProtocol creates a new protocol with one participant per PRNG. Participant i
// reads all its randomness from prngs[i]: the PRNGs must be distinct instances.
func NewProtocol(params Parameters, prngs []sampling.PRNG) (p *Protocol, err error) {

	if len(prngs) < 2 {
		return nil, fmt.Errorf("cannot NewProtocol: invalid number of participants k=%d: must be at least 2", len(prngs))
	}

	p = &Protocol{
		params:       params,
		participants: make([]*Participant, len(prngs)),
	}

	for i := range prngs {
		if p.participants[i], err = NewParticipant(params, i, prngs[i]); err != nil {
			return nil, fmt.Errorf("cannot NewProtocol: %w", err)
		}
	}

	return
}

// K returns the number of participants.
func (p Protocol) K() int {
	return len(p.participants)
}

// Participants returns the participants of the protocol.
func (p Protocol) Participants() []*Participant {
	return p.participants
}

// SampleCRP samples a common random polynomial from the provided common reference string.
func (p Protocol) SampleCRP(crs CRS) CRP {
	return SampleCRP(p.params, crs)
}

// parallel runs f once per participant, each call in its own goroutine.
// Each call must only touch the state of its own participant.
func (p Protocol) parallel(f func(i int, party *Participant) error) error {

	errs := make([]error, len(p.participants))

	wg := new(sync.WaitGroup)
	wg.Add(len(p.participants))

	for i, party := range p.participants {
		go func(i int, party *Participant) {
			defer wg.Done()
			errs[i] = f(i, party)
		}(i, party)
	}

	wg.Wait()

	return errors.Join(errs...)
}

// Run executes the key exchange on the common random polynomial crp:
//
//  1. every participant i generates its initial share m*s_i + 2e,
//  2. during k-2 relay rounds, every participant relays the share of its predecessor,
//  3. every participant computes its key polynomial from the share held by its predecessor,
//  4. participant 0 broadcasts the signal of its key polynomial,
//  5. every participant reconciles its key polynomial with the signal.
//
// Participants disagreeing on the key is not an error: see [Result.Agree].
func (p Protocol) Run(crp CRP) (res *Result, err error) {

	k := p.K()

	shares := make([]Share, k)

	if err = p.parallel(func(i int, party *Participant) (err error) {
		shares[i], err = party.GenInitialShare(crp)
		return
	}); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}

	for round := 0; round < k-2; round++ {

		relayed := make([]Share, k)

		if err = p.parallel(func(i int, party *Participant) (err error) {
			relayed[i], err = party.Relay(shares[(i+k-1)%k])
			return
		}); err != nil {
			return nil, fmt.Errorf("cannot Run: round %d: %w", round+1, err)
		}

		shares = relayed
	}

	keyPolys := make([]KeyPoly, k)

	if err = p.parallel(func(i int, party *Participant) (err error) {
		keyPolys[i], err = party.GenKeyPoly(shares[(i+k-1)%k])
		return
	}); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}

	res = &Result{Keys: make([]SharedKey, k)}

	if res.Signal, err = p.participants[0].GenSignal(keyPolys[0]); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}

	for i, party := range p.participants {
		if res.Keys[i], err = party.Reconcile(keyPolys[i], res.Signal); err != nil {
			return nil, fmt.Errorf("cannot Run: %w", err)
		}
	}

	return
}
