package mlwe

import (
	"github.com/SadeemSajid/crypto-lattice/ring"
)

var (
	// testInsecure are insecure parameters used for the sole purpose of fast testing.
	testInsecure = []ParametersLiteral{
		DefaultParametersLiteral,
		{
			Rank: 2,
			LogN: 8,
			Q:    3329,
			P:    2,
			Xs:   ring.Ternary{P: 0.5},
			Xe:   ring.RoundedGaussian{Sigma: 1, Bound: 6},
		},
		{
			Rank: 4,
			LogN: 4,
			Q:    65537,
			P:    4,
		},
	}
)
