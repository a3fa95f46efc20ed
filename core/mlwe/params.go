// Package mlwe implements public-key encryption from the module learning with
// errors problem, over vectors of rank k of elements of Z_q[X]/(X^N+1).
// N = 1 gives the integer module Z_q^k.
package mlwe

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"

	"github.com/SadeemSajid/crypto-lattice/ring"
)

const (
	// MaxLogN is the log2 of the largest supported polynomial modulus degree.
	MaxLogN = 12
	// MaxRank is the largest supported module rank.
	MaxRank = 1 << 10
	// SeedSize is the size in bytes of the seed of the public matrix.
	SeedSize = 32
)

var (
	// DefaultXs is the default secret distribution.
	DefaultXs = ring.Ternary{P: 2. / 3.}
	// DefaultXe is the default error distribution.
	DefaultXe = ring.DiscreteGaussian{Sigma: 3.2, Bound: 19.2}
	// DefaultP is the default plaintext modulus: messages are bits.
	DefaultP uint64 = 2
)

// Xr is the distribution of the coefficients of the ephemeral vector r
// sampled at encryption.
var Xr = ring.Binary{}

// DefaultParametersLiteral is the default parameter set: the integer
// module of rank 128 with Q=12289.
var DefaultParametersLiteral = ParametersLiteral{
	Rank: 128,
	LogN: 0,
	Q:    12289,
	P:    2,
}

// ParametersLiteral is a literal representation of MLWE parameters. It has public fields and
// is used to express unchecked user-defined parameters literally into Go programs.
// The [NewParametersFromLiteral] function is used to generate the actual checked parameters
// from the literal representation.
//
// Users must set the rank, the polynomial degree (LogN, possibly 0) and the modulus Q.
// If left unset, default values are substituted for P, Xs and Xe.
type ParametersLiteral struct {
	Rank int
	LogN int
	Q    uint64
	P    uint64                      `json:",omitempty"`
	Xs   ring.DistributionParameters `json:",omitempty"`
	Xe   ring.DistributionParameters `json:",omitempty"`
}

// Parameters represents a set of MLWE parameters. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	rank  int
	logN  int
	q     uint64
	p     uint64
	xs    ring.DistributionParameters
	xe    ring.DistributionParameters
	ringQ *ring.Ring
}

// NewParameters returns a new set of MLWE parameters from the module rank, the ring degree logn,
// the modulus q, the plaintext modulus p and the secret and error distributions xs and xe.
// It returns the empty parameters [Parameters]{} and a non-nil error if the specified parameters
// are invalid or if the expected decryption noise reaches the decision boundary.
func NewParameters(rank, logn int, q, p uint64, xs, xe ring.DistributionParameters) (params Parameters, err error) {

	if rank < 1 || rank > MaxRank {
		return Parameters{}, fmt.Errorf("cannot NewParameters: invalid rank=%d: must be in [1, %d]", rank, MaxRank)
	}

	if logn < 0 || logn > MaxLogN {
		return Parameters{}, fmt.Errorf("cannot NewParameters: invalid logN=%d: must be in [0, %d]", logn, MaxLogN)
	}

	var ringQ *ring.Ring
	if ringQ, err = ring.NewRing(1<<logn, q); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if err = ring.CheckPlaintextModulus(q, p); err != nil {
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

	params = Parameters{
		rank:  rank,
		logN:  logn,
		q:     q,
		p:     p,
		xs:    xs,
		xe:    xe,
		ringQ: ringQ,
	}

	if params.DecodingMargin() < 1 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: decryption noise std %f reaches the decision boundary %f", params.NoiseStd(), params.decisionBoundary())
	}

	return
}

// NewParametersFromLiteral instantiates a set of MLWE parameters from a [ParametersLiteral]
// specification. It returns the empty parameters [Parameters]{} and a non-nil error if the
// specified parameters are invalid.
//
// If P is left unset, its value is set to [DefaultP].
//
// If the secret distribution is left unset, its value is set to [DefaultXs].
//
// If the error distribution is left unset, its value is set to [DefaultXe].
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	if paramDef.P == 0 {
		paramDef.P = DefaultP
	}

	if paramDef.Xs == nil {
		paramDef.Xs = DefaultXs
	}

	if paramDef.Xe == nil {
		paramDef.Xe = DefaultXe
	}

	return NewParameters(paramDef.Rank, paramDef.LogN, paramDef.Q, paramDef.P, paramDef.Xs, paramDef.Xe)
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Rank: p.rank,
		LogN: p.logN,
		Q:    p.q,
		P:    p.p,
		Xs:   p.xs,
		Xe:   p.xe,
	}
}

// Rank returns the rank k of the module.
func (p Parameters) Rank() int {
	return p.rank
}

// N returns the ring degree.
func (p Parameters) N() int {
	return 1 << p.logN
}

// LogN returns the log of the ring degree.
func (p Parameters) LogN() int {
	return p.logN
}

// Q returns the modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// P returns the plaintext modulus.
func (p Parameters) P() uint64 {
	return p.p
}

// MessageLength returns the number of values k*N of a message.
func (p Parameters) MessageLength() int {
	return p.rank * p.N()
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

func (p Parameters) decisionBoundary() float64 {
	return float64(p.q) / float64(2*p.p)
}

// NoiseStd returns an estimate of the standard deviation of a coefficient of the
// decryption noise <e0, r> - <e1, s0> + e2.
func (p Parameters) NoiseStd() float64 {
	kn := float64(p.rank * p.N())
	sigmaE := ring.StandardDeviation(p.xe, p.N(), p.q)
	sigmaS := ring.StandardDeviation(p.xs, p.N(), p.q)
	sigmaR := ring.StandardDeviation(Xr, p.N(), p.q)
	return sigmaE * math.Sqrt(kn*sigmaR*sigmaR+kn*sigmaS*sigmaS+1)
}

// DecodingMargin returns the ratio between q/(2p) and [Parameters.NoiseStd].
func (p Parameters) DecodingMargin() float64 {
	return p.decisionBoundary() / p.NoiseStd()
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other *Parameters) (res bool) {
	res = cmp.Equal([]int{p.rank, p.logN}, []int{other.rank, other.logN})
	res = res && cmp.Equal([]uint64{p.q, p.p}, []uint64{other.q, other.p})
	res = res && (p.xs == other.xs)
	res = res && (p.xe == other.xe)
	return
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
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
		Rank int
		LogN int
		Q    uint64
		P    uint64
		Xs   map[string]interface{}
		Xe   map[string]interface{}
	}

	if err = json.Unmarshal(b, &pl); err != nil {
		return err
	}

	p.Rank, p.LogN, p.Q, p.P = pl.Rank, pl.LogN, pl.Q, pl.P

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
