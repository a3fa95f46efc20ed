// Package multiparty implements an interactive k-party key exchange based on the
// ring learning with errors problem.
//
// The k participants share a common random polynomial m. Each participant i
// publishes m*s_i + 2e, and the messages are relayed around the ring of participants,
// each hop multiplying by the secret of the relaying party and adding fresh even noise.
// After k-2 hops, every participant holds an approximation of m*s_0*...*s_{k-1}.
// Participant 0 broadcasts a reconciliation signal that lets every participant
// extract the same key bits from its own approximation.
package multiparty

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/SadeemSajid/crypto-lattice/ring"
)

// MaxLogN is the log2 of the largest supported polynomial modulus degree.
const MaxLogN = 16

var (
	// DefaultXs is the default secret distribution.
	DefaultXs = ring.Ternary{P: 2. / 3.}
	// DefaultXe is the default error distribution: a clamped rounded Gaussian.
	DefaultXe = ring.RoundedGaussian{Sigma: 0.1, Bound: 1}
)

// DefaultParametersLiteral is the default parameter set: N=8 and Q=97.
var DefaultParametersLiteral = ParametersLiteral{
	LogN: 3,
	Q:    97,
}

// ParametersLiteral is a literal representation of key exchange parameters.
// If left unset, default values are substituted for Xs and Xe.
type ParametersLiteral struct {
	LogN int
	Q    uint64
	Xs   ring.DistributionParameters `json:",omitempty"`
	Xe   ring.DistributionParameters `json:",omitempty"`
}

// Parameters represents a set of key exchange parameters.
// Its fields are private and immutable.
type Parameters struct {
	logN  int
	q     uint64
	xs    ring.DistributionParameters
	xe    ring.DistributionParameters
	ringQ *ring.Ring
}

// NewParameters returns a new set of key exchange parameters from the ring degree logn,
// the odd modulus q and the secret and error distributions xs and xe.
func NewParameters(logn int, q uint64, xs, xe ring.DistributionParameters) (params Parameters, err error) {

	if logn < 0 || logn > MaxLogN {
		return Parameters{}, fmt.Errorf("cannot NewParameters: logN=%d must be in [0, %d]", logn, MaxLogN)
	}

	if q&1 == 0 || q < 5 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: invalid modulus q=%d: must be odd and at least 5", q)
	}

	var ringQ *ring.Ring
	if ringQ, err = ring.NewRing(1<<logn, q); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if xs == nil || xe == nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: Xs and Xe must be set")
	}

	for _, X := range []ring.DistributionParameters{xs, xe} {
		if err = ring.CheckDistribution(q, X); err != nil {
			return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
		}
	}

	return Parameters{
		logN:  logn,
		q:     q,
		xs:    xs,
		xe:    xe,
		ringQ: ringQ,
	}, nil
}

// NewParametersFromLiteral instantiates a set of key exchange parameters from a [ParametersLiteral].
// Unset distributions are replaced by [DefaultXs] and [DefaultXe].
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	if paramDef.Xs == nil {
		paramDef.Xs = DefaultXs
	}

	if paramDef.Xe == nil {
		paramDef.Xe = DefaultXe
	}

	return NewParameters(paramDef.LogN, paramDef.Q, paramDef.Xs, paramDef.Xe)
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN: p.logN,
		Q:    p.q,
		Xs:   p.xs,
		Xe:   p.xe,
	}
}

// N returns the ring degree, which is also the number of key bits.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns the log of the ring degree.
func (p Parameters) LogN() int {
	return p.logN
}

// Q returns the coefficient modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// RingQ returns a pointer to the ring Z_q[X]/(X^N+1).
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// Xs returns the secret distribution.
func (p Parameters) Xs() ring.DistributionParameters {
	return p.xs
}

// Xe returns the error distribution.
func (p Parameters) Xe() ring.DistributionParameters {
	return p.xe
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other *Parameters) (res bool) {
	res = p.logN == other.logN
	res = res && p.q == other.q
	res = res && cmp.Equal(p.xs, other.xs)
	res = res && cmp.Equal(p.xe, other.xe)
	return
}

// MarshalJSON returns a JSON representation of this parameter set.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}

// UnmarshalJSON reads a JSON representation of a parameter literal into
// the receiver, decoding the distributions with [ring.ParametersFromMap].
func (p *ParametersLiteral) UnmarshalJSON(b []byte) (err error) {
	var pl struct {
		LogN int
		Q    uint64
		Xs   map[string]interface{}
		Xe   map[string]interface{}
	}

	if err = json.Unmarshal(b, &pl); err != nil {
		return err
	}

	p.LogN, p.Q = pl.LogN, pl.Q

	if pl.Xs != nil {
		if p.Xs, err = ring.ParametersFromMap(pl.Xs); err != nil {
			return err
		}
	}

	if pl.Xe != nil {
		if p.Xe, err = ring.ParametersFromMap(pl.Xe); err != nil {
			return err
		}
	}

	return
}
