package lwe

import (
	"github.com/SadeemSajid/crypto-lattice/ring"
)

var (
	// testInsecure are insecure parameters used for the sole purpose of fast testing.
	testInsecure = []ParametersLiteral{
		DefaultParametersLiteral,
		{
			N:  64,
			M:  128,
			Q:  12289,
			P:  2,
			Xs: ring.Ternary{P: 2. / 3.},
			Xe: ring.DiscreteGaussian{Sigma: 3.2, Bound: 19.2},
		},
		{
			N:  32,
			M:  64,
			Q:  65537,
			P:  16,
			Xe: ring.RoundedGaussian{Sigma: 3.2, Bound: 19.2},
		},
	}
)
