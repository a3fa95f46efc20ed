package multiparty

import (
	"github.com/SadeemSajid/crypto-lattice/ring"
)

var (
	// testInsecure are insecure parameters used for the sole purpose of fast testing.
	testInsecure = []ParametersLiteral{
		DefaultParametersLiteral,
		{
			LogN: 6,
			Q:    257,
		},
		// sparse secrets keep the accumulated noise far below q/4
		{
			LogN: 2,
			Q:    12289,
			Xs:   ring.Ternary{H: 2},
			Xe:   ring.RoundedGaussian{Sigma: 1, Bound: 1},
		},
	}
)
