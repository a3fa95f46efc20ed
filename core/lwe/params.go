// Package lwe implements public-key encryption from the plain learning with
// errors problem over Z_q, in the style of Regev's cryptosystem.
package lwe

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"

	"github.com/google/go-cmp/cmp"

	"github.com/SadeemSajid/crypto-lattice/ring"
)

// MaxDimension is the largest supported secret dimension and number of samples.
const MaxDimension = 1 << 16

var (
	// DefaultXs is the default secret distribution: uniform over Z_q.
	DefaultXs = ring.Uniform{}
	// DefaultXe is the default error distribution.
	DefaultXe = ring.RoundedGaussian{Sigma: 1, Bound: 6}
	// DefaultP is the default plaintext modulus: messages are bits.
	DefaultP uint64 = 2
)

// Xr is the distribution of the ephemeral subset-sum vectors r
// sampled at encryption.
var Xr = ring.Binary{}

// DefaultParametersLiteral is the default toy parameter set.
var DefaultParametersLiteral = ParametersLiteral{
	N: 10,
	M: 25,
	Q: 181,
	P: 2,
}

// ParametersLiteral is a literal representation of plain LWE parameters.
// It has public fields and is used to express unchecked user-defined
// parameters literally into Go programs. The [NewParametersFromLiteral]
// function is used to generate the actual checked parameters.
//
// Users must set the secret dimension N, the number of samples M of the
// public key and the modulus Q. If left unset, default values are
// substituted for P, Xs and Xe.
type ParametersLiteral struct {
	N  int
	M  int
	Q  uint64
	P  uint64                      `json:",omitempty"`
	Xs ring.DistributionParameters `json:",omitempty"`
	Xe ring.DistributionParameters `json:",omitempty"`
}

// Parameters represents a set of plain LWE parameters. Its fields are
// private and immutable. See [ParametersLiteral] for user-specified
// parameters.
type Parameters struct {
	n  int
	m  int
	q  uint64
	p  uint64
	xs ring.DistributionParameters
	xe ring.DistributionParameters
}

// NewParameters returns a new set of plain LWE parameters from the secret
// dimension n, the number of samples m, the modulus q, the plaintext modulus
// p and the secret and error distributions xs and xe. It returns the empty
// [Parameters]{} and a non-nil error if the parameters are invalid or if
// the expected decryption noise reaches the decision boundary.
func NewParameters(n, m int, q, p uint64, xs, xe ring.DistributionParameters) (params Parameters, err error) {

	if n < 1 || n > MaxDimension {
		return Parameters{}, fmt.Errorf("cannot NewParameters: invalid dimension N=%d: must be in [1, %d]", n, MaxDimension)
	}

	if m < 1 || m > MaxDimension {
		return Parameters{}, fmt.Errorf("cannot NewParameters: invalid number of samples M=%d: must be in [1, %d]", m, MaxDimension)
	}

	if q < 2 || bits.Len64(q) > ring.MaxModulusBits {
		return Parameters{}, fmt.Errorf("cannot NewParameters: invalid modulus Q=%d: must satisfy 2 <= Q < 2^%d", q, ring.MaxModulusBits)
	}

	if err = ring.CheckPlaintextModulus(q, p); err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
	}

	if xs == nil || xe == nil {
		return Parameters{}, fmt.Errorf("cannot NewParameters: Xs and Xe must be set")
	}

	params = Parameters{
		n:  n,
		m:  m,
		q:  q,
		p:  p,
		xs: xs,
		xe: xe,
	}

	for _, X := range []ring.DistributionParameters{xs, xe} {
		if err = ring.CheckDistribution(q, X); err != nil {
			return Parameters{}, fmt.Errorf("cannot NewParameters: %w", err)
		}
	}

	if margin := params.DecodingMargin(); margin < 1 {
		return Parameters{}, fmt.Errorf("cannot NewParameters: decryption noise std %f reaches the decision boundary %f", params.NoiseStd(), params.decisionBoundary())
	}

	return
}

// NewParametersFromLiteral instantiates a set of plain LWE parameters from
// a [ParametersLiteral] specification. It returns the empty [Parameters]{}
// and a non-nil error if the specified parameters are invalid.
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

	return NewParameters(paramDef.N, paramDef.M, paramDef.Q, paramDef.P, paramDef.Xs, paramDef.Xe)
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		N:  p.n,
		M:  p.m,
		Q:  p.q,
		P:  p.p,
		Xs: p.xs,
		Xe: p.xe,
	}
}

// N returns the secret dimension.
func (p Parameters) N() int {
	return p.n
}

// M returns the number of samples of the public key.
func (p Parameters) M() int {
	return p.m
}

// Q returns the modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// P returns the plaintext modulus.
func (p Parameters) P() uint64 {
	return p.p
}

// Xs returns the secret distribution.
func (p Parameters) Xs() ring.DistributionParameters {
	return p.xs
}

// Xe returns the error distribution.
func (p Parameters) Xe() ring.DistributionParameters {
	return p.xe
}

// decisionBoundary returns q/(2p), the distance between an encoded
// message and the closest decision boundary.
func (p Parameters) decisionBoundary() float64 {
	return float64(p.q) / float64(2*p.p)
}

// NoiseStd returns an estimate of the standard deviation of the decryption
// noise <e, r> + e', with r a binary vector of length M.
func (p Parameters) NoiseStd() float64 {
	sigmaE := ring.StandardDeviation(p.xe, p.m, p.q)
	sigmaR := ring.StandardDeviation(Xr, p.m, p.q)
	return math.Sqrt(float64(p.m)*sigmaE*sigmaE*sigmaR*sigmaR + sigmaE*sigmaE)
}

// DecodingMargin returns the ratio between q/(2p) and [Parameters.NoiseStd].
func (p Parameters) DecodingMargin() float64 {
	return p.decisionBoundary() / p.NoiseStd()
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other *Parameters) (res bool) {
	res = p.n == other.n
	res = res && p.m == other.m
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
		N  int
		M  int
		Q  uint64
		P  uint64
		Xs map[string]interface{}
		Xe map[string]interface{}
	}

	if err = json.Unmarshal(b, &pl); err != nil {
		return err
	}

	p.N, p.M, p.Q, p.P = pl.N, pl.M, pl.Q, pl.P

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
