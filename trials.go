package lattice

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// TrialReport summarizes repeated key generation, encryption and
// decryption of the same message.
type TrialReport struct {
	Variant   schemes.Variant
	Trials    int
	Successes int

	// Hamming distances between the message and its decryption.
	MeanHammingDistance float64
	MaxHammingDistance  int

	// Statistics of the centered decryption noise over all the values
	// of all the trials.
	NoiseMean   float64
	NoiseStdDev float64
	NoiseMaxAbs float64
}

// SuccessRate returns the fraction of trials whose decryption matched the message.
func (r TrialReport) SuccessRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Trials)
}

// String returns a one line summary of the report.
func (r TrialReport) String() string {
	return fmt.Sprintf("%s: %d/%d successes, hamming mean %.3f max %d, noise mean %.3f std %.3f max |e| %.0f",
		r.Variant, r.Successes, r.Trials, r.MeanHammingDistance, r.MaxHammingDistance, r.NoiseMean, r.NoiseStdDev, r.NoiseMaxAbs)
}

// RunTrials runs trials independent key generations, encryptions and
// decryptions of msg with s, reading all the randomness from prng.
// A failed decryption is an outcome recorded in the report, not an error.
func RunTrials(s schemes.Scheme, msg []uint64, trials int, prng sampling.PRNG) (report TrialReport, err error) {

	if trials < 1 {
		return report, fmt.Errorf("cannot RunTrials: invalid number of trials %d", trials)
	}

	if err = schemes.CheckPlaintext("RunTrials", msg, s.PlaintextLength(), s.PlaintextModulus()); err != nil {
		return
	}

	report.Variant = s.Variant()
	report.Trials = trials

	hamming := make(stats.Float64Data, 0, trials)
	noise := make(stats.Float64Data, 0, trials*len(msg))

	for i := 0; i < trials; i++ {

		var pk schemes.PublicKey
		var sk schemes.SecretKey
		if pk, sk, err = s.KeyGen(prng); err != nil {
			return report, fmt.Errorf("cannot RunTrials: %w", err)
		}

		var ct schemes.Ciphertext
		if ct, err = s.Encrypt(msg, pk, prng); err != nil {
			return report, fmt.Errorf("cannot RunTrials: %w", err)
		}

		var have []uint64
		if have, err = s.Decrypt(ct, sk); err != nil {
			return report, fmt.Errorf("cannot RunTrials: %w", err)
		}

		var d int
		if d, err = utils.HammingDistance(msg, have); err != nil {
			return report, fmt.Errorf("cannot RunTrials: %w", err)
		}

		if d == 0 {
			report.Successes++
		}

		report.MaxHammingDistance = utils.Max(report.MaxHammingDistance, d)
		hamming = append(hamming, float64(d))

		var e []int64
		if e, err = s.Noise(ct, sk, msg); err != nil {
			return report, fmt.Errorf("cannot RunTrials: %w", err)
		}

		for _, ei := range e {
			noise = append(noise, float64(ei))
		}
	}

	if report.MeanHammingDistance, err = stats.Mean(hamming); err != nil {
		return report, fmt.Errorf("cannot RunTrials: %w", err)
	}

	if report.NoiseMean, err = stats.Mean(noise); err != nil {
		return report, fmt.Errorf("cannot RunTrials: %w", err)
	}

	if report.NoiseStdDev, err = stats.StandardDeviation(noise); err != nil {
		return report, fmt.Errorf("cannot RunTrials: %w", err)
	}

	var lo, hi float64
	if lo, err = stats.Min(noise); err != nil {
		return report, fmt.Errorf("cannot RunTrials: %w", err)
	}

	if hi, err = stats.Max(noise); err != nil {
		return report, fmt.Errorf("cannot RunTrials: %w", err)
	}

	report.NoiseMaxAbs = utils.Max(-lo, hi)

	return
}
