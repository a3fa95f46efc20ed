package mlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
	"github.com/SadeemSajid/crypto-lattice/utils/structs"
)

// ExpandMatrix deterministically expands the k x k uniform public matrix
// from a seed of [SeedSize] bytes. Entry (i, j) is sampled from the SHAKE128
// stream of seed || i || j, with i and j on two bytes little endian.
func ExpandMatrix(params Parameters, seed []byte) (A structs.Matrix[ring.Poly], err error) {

	if len(seed) != SeedSize {
		return nil, fmt.Errorf("cannot ExpandMatrix: invalid seed size %d: want %d", len(seed), SeedSize)
	}

	ringQ := params.RingQ()

	A = ringQ.NewPolyMatrix(params.Rank(), params.Rank())

	for i := range A {
		for j := range A[i] {
			prng := sampling.NewShakePRNG(seed, byte(i), byte(i>>8), byte(j), byte(j>>8))
			ring.NewUniformSampler(prng, params.Q()).Read(A[i][j])
		}
	}

	return
}
