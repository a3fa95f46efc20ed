package multiparty

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"

	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// seedSize is the byte size of the session identifiers and participant
// PRNG keys drawn by AgreementRate.
const seedSize = 32

// AgreementRate runs trials independent key exchanges between the given number of
// parties, each with fresh secrets and a fresh session, and returns the fraction of
// runs in which all the parties derived the same key. All the randomness is derived
// from prng.
func AgreementRate(params Parameters, parties, trials int, prng sampling.PRNG) (rate float64, err error) {

	if trials < 1 {
		return 0, fmt.Errorf("cannot AgreementRate: invalid number of trials %d: must be positive", trials)
	}

	if prng == nil {
		return 0, fmt.Errorf("cannot AgreementRate: prng is nil")
	}

	outcomes := make([]float64, trials)

	for t := range outcomes {

		var res *Result
		if res, err = runSession(params, parties, prng); err != nil {
			return 0, fmt.Errorf("cannot AgreementRate: %w", err)
		}

		if res.Agree() {
			outcomes[t] = 1
		}
	}

	if rate, err = stats.Mean(outcomes); err != nil {
		return 0, fmt.Errorf("cannot AgreementRate: %w", err)
	}

	return
}

// runSession runs one key exchange whose session and participant keys are read from prng.
func runSession(params Parameters, parties int, prng sampling.PRNG) (res *Result, err error) {

	session := make([]byte, seedSize)
	if _, err = io.ReadFull(prng, session); err != nil {
		return nil, err
	}

	prngs := make([]sampling.PRNG, parties)
	for i := range prngs {

		key := make([]byte, seedSize)
		if _, err = io.ReadFull(prng, key); err != nil {
			return nil, err
		}

		if prngs[i], err = sampling.NewKeyedPRNG(key); err != nil {
			return nil, err
		}
	}

	var p *Protocol
	if p, err = NewProtocol(params, prngs); err != nil {
		return nil, err
	}

	var crs CRS
	if crs, err = NewCRS(session); err != nil {
		return nil, err
	}

	return p.Run(p.SampleCRP(crs))
}
