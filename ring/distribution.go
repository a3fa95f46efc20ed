package ring

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/SadeemSajid/crypto-lattice/utils"
)

const (
	discreteGaussianName = "DiscreteGaussian"
	roundedGaussianName  = "RoundedGaussian"
	ternaryDistName      = "Ternary"
	binaryDistName       = "Binary"
	uniformDistName      = "Uniform"
)

// DistributionParameters is an interface for distribution
// parameters in the ring.
// There are five implementations of this interface:
//   - DiscreteGaussian for sampling coefficients from a table based
//     discrete Gaussian of given standard deviation and bound.
//   - RoundedGaussian for sampling coefficients by rounding a
//     continuous Gaussian of given mean and standard deviation.
//   - Ternary for sampling coefficients in [-1, 1].
//   - Binary for sampling coefficients in [0, 1].
//   - Uniform for sampling uniformly random coefficients in Z_q.
type DistributionParameters interface {
	// Type returns a string representation of the distribution name.
	Type() string
	mustBeDist()
}

// DiscreteGaussian represents the parameters of a
// discrete Gaussian distribution with standard
// deviation Sigma and bounds [-Bound, Bound].
// The distribution is sampled by inversion of its cumulative
// distribution table. A zero Bound is interpreted as 6*Sigma.
type DiscreteGaussian struct {
	Sigma float64
	Bound float64
}

// RoundedGaussian represents the parameters of a continuous Gaussian
// distribution of mean Mean and standard deviation Sigma, whose samples
// are rounded to the nearest integer (ties to even). If Bound is positive,
// samples are clamped to [Mean-Bound, Mean+Bound].
type RoundedGaussian struct {
	Mean  float64
	Sigma float64
	Bound float64
}

// Ternary represent the parameters of a distribution with coefficients
// in [-1, 0, 1]. Only one of its field must be set to a non-zero value:
//
//   - If P is set, each coefficient in the polynomial is sampled in [-1, 0, 1]
//     with probabilities [0.5*P, 1-P, 0.5*P].
//   - if H is set, the coefficients are sampled uniformly in the set of ternary
//     polynomials with H non-zero coefficients (i.e., of hamming weight H).
type Ternary struct {
	P float64
	H int
}

// Binary represents the parameters of the uniform distribution over [0, 1].
type Binary struct{}

// Uniform represents the parameters of a uniform distribution
// i.e., with coefficients uniformly distributed in Z_q.
type Uniform struct{}

func (d DiscreteGaussian) Type() string {
	return discreteGaussianName
}

func (d DiscreteGaussian) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string
		Sigma, Bound float64 `json:",omitempty"`
	}{d.Type(), d.Sigma, d.Bound})
}

func (d DiscreteGaussian) mustBeDist() {}

func (d RoundedGaussian) Type() string {
	return roundedGaussianName
}

func (d RoundedGaussian) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type               string
		Mean, Sigma, Bound float64 `json:",omitempty"`
	}{d.Type(), d.Mean, d.Sigma, d.Bound})
}

func (d RoundedGaussian) mustBeDist() {}

func (d Ternary) Type() string {
	return ternaryDistName
}

func (d Ternary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string
		P    float64 `json:",omitempty"`
		H    int     `json:",omitempty"`
	}{Type: d.Type(), P: d.P, H: d.H})
}

func (d Ternary) mustBeDist() {}

func (d Binary) Type() string {
	return binaryDistName
}

func (d Binary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string
	}{Type: d.Type()})
}

func (d Binary) mustBeDist() {}

func (d Uniform) Type() string {
	return uniformDistName
}

func (d Uniform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string
	}{Type: d.Type()})
}

func (d Uniform) mustBeDist() {}

func getFloatFromMap(distDef map[string]interface{}, key string) (float64, error) {
	val, hasVal := distDef[key]
	if !hasVal {
		return 0, fmt.Errorf("map specifies no value for %s", key)
	}
	f, isFloat := val.(float64)
	if !isFloat {
		return 0, fmt.Errorf("value for key %s in map should be of type float", key)
	}
	return f, nil
}

func getOptionalFloatFromMap(distDef map[string]interface{}, key string) (float64, error) {
	if _, hasVal := distDef[key]; !hasVal {
		return 0, nil
	}
	return getFloatFromMap(distDef, key)
}

func getIntFromMap(distDef map[string]interface{}, key string) (int, error) {
	val, hasVal := distDef[key]
	if !hasVal {
		return 0, fmt.Errorf("map specifies no value for %s", key)
	}
	f, isNumeric := val.(float64)
	if !isNumeric || f != float64(int(f)) {
		return 0, fmt.Errorf("value for key %s in map should be an integer", key)
	}
	return int(f), nil
}

// ParametersFromMap parses a distribution from its JSON map representation,
// as produced by the MarshalJSON methods of the distributions.
func ParametersFromMap(distDef map[string]interface{}) (DistributionParameters, error) {
	distTypeVal, specified := distDef["Type"]
	if !specified {
		return nil, fmt.Errorf("map specifies no distribution type")
	}
	distTypeStr, isString := distTypeVal.(string)
	if !isString {
		return nil, fmt.Errorf("value for key Type of map should be of type string")
	}
	switch distTypeStr {
	case uniformDistName:
		return Uniform{}, nil
	case binaryDistName:
		return Binary{}, nil
	case ternaryDistName:
		_, hasP := distDef["P"]
		_, hasH := distDef["H"]

		var (
			p   float64
			h   int
			err error
		)

		// a zero value for both P and H is interpreted as an unset value
		if hasP {
			if p, err = getFloatFromMap(distDef, "P"); err != nil {
				return nil, fmt.Errorf("unable to parse ternary parameters P: %w", err)
			}
			hasP = (p != 0)
		}
		if hasH {
			if h, err = getIntFromMap(distDef, "H"); err != nil {
				return nil, fmt.Errorf("unable to parse ternary parameters H: %w", err)
			}
			hasH = (h != 0)
		}
		if (hasP && hasH) || (!hasP && !hasH) {
			return nil, fmt.Errorf("exactly one of the fields P or H need to be set")
		}

		return Ternary{P: p, H: h}, nil
	case discreteGaussianName:
		// zero values are omitted when marshalled
		sigma, errSigma := getOptionalFloatFromMap(distDef, "Sigma")
		if errSigma != nil {
			return nil, errSigma
		}
		bound, errBound := getOptionalFloatFromMap(distDef, "Bound")
		if errBound != nil {
			return nil, errBound
		}
		return DiscreteGaussian{Sigma: sigma, Bound: bound}, nil
	case roundedGaussianName:
		mean, errMean := getOptionalFloatFromMap(distDef, "Mean")
		if errMean != nil {
			return nil, errMean
		}
		sigma, errSigma := getOptionalFloatFromMap(distDef, "Sigma")
		if errSigma != nil {
			return nil, errSigma
		}
		bound, errBound := getOptionalFloatFromMap(distDef, "Bound")
		if errBound != nil {
			return nil, errBound
		}
		return RoundedGaussian{Mean: mean, Sigma: sigma, Bound: bound}, nil
	default:
		return nil, fmt.Errorf("distribution type %s does not exist", distTypeStr)
	}
}

// StandardDeviation returns the root mean square of the integer values
// sampled from X, in a ring of degree N and modulus q. For zero-mean
// distributions this is the standard deviation. It is the quantity that
// enters the variance of a sum of products of independent samples.
func StandardDeviation(X DistributionParameters, N int, q uint64) float64 {
	switch X := X.(type) {
	case DiscreteGaussian:
		bound := discreteGaussianBound(X)
		if X.Sigma == 0 || bound == 0 {
			return 0
		}
		var num, den float64
		for x := -bound; x <= bound; x++ {
			w := math.Exp(-float64(x*x) / (2 * X.Sigma * X.Sigma))
			num += float64(x*x) * w
			den += w
		}
		return math.Sqrt(num / den)
	case RoundedGaussian:
		return roundedGaussianRootMeanSquare(X)
	case Ternary:
		if X.H != 0 {
			if N == 0 {
				return 0
			}
			return math.Sqrt(float64(utils.Min(X.H, N)) / float64(N))
		}
		return math.Sqrt(X.P)
	case Binary:
		return math.Sqrt(0.5)
	case Uniform:
		return float64(q) / math.Sqrt(12)
	default:
		return 0
	}
}

// roundedGaussianRootMeanSquare integrates x^2 against the probability mass
// of round(N(Mean, Sigma^2)), with the tails accumulated on the clamping
// bounds if Bound > 0.
func roundedGaussianRootMeanSquare(X RoundedGaussian) float64 {

	if X.Sigma == 0 {
		return math.Abs(math.RoundToEven(X.Mean))
	}

	cdf := func(x float64) float64 {
		return 0.5 * math.Erfc(-(x-X.Mean)/(X.Sigma*math.Sqrt2))
	}

	lo := math.Floor(X.Mean - 12*X.Sigma - 1)
	hi := math.Ceil(X.Mean + 12*X.Sigma + 1)

	if X.Bound > 0 {
		lo = math.Max(lo, math.Ceil(X.Mean-X.Bound))
		hi = math.Min(hi, math.Floor(X.Mean+X.Bound))
	}

	var acc float64
	for x := lo; x <= hi; x++ {

		var p float64
		switch {
		case x == lo && x == hi:
			p = 1
		case x == lo:
			p = cdf(x + 0.5)
		case x == hi:
			p = 1 - cdf(x-0.5)
		default:
			p = cdf(x+0.5) - cdf(x-0.5)
		}

		acc += x * x * p
	}

	return math.Sqrt(acc)
}
