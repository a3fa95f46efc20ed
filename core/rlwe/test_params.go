package rlwe

import (
	"github.com/SadeemSajid/crypto-lattice/ring"
)

var (
	// testInsecure are insecure parameters used for the sole purpose of fast testing.
	testInsecure = []ParametersLiteral{
		DefaultParametersLiteral,
		{
			LogN: 4,
			Q:    3329,
			P:    2,
			Xs:   ring.Ternary{H: 8},
			Xe:   ring.DiscreteGaussian{Sigma: 3.2, Bound: 19.2},
		},
		{
			LogN: 10,
			Q:    0x1fffffffffe00001,
			P:    256,
			Xs:   ring.Ternary{P: 0.5},
			Xe:   ring.DiscreteGaussian{Sigma: 3.2, Bound: 19.2},
		},
		// integer ring
		{
			LogN: 0,
			Q:    12289,
		},
	}
)
