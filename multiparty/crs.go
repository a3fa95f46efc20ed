package multiparty

import (
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// CRS is an interface for Common Reference Strings.
// CRSs are PRNGs for which the read bits are the same for
// all parties.
type CRS interface {
	sampling.PRNG
}

// CRP is a type for common reference polynomials: the public uniform
// polynomial m shared by all the participants of a session.
type CRP struct {
	Value ring.Poly
}

// crsContext separates the keys derived by NewCRS from other uses of the session identifier.
var crsContext = []byte("multiparty-crs")

// NewCRS returns a common reference string for the given public session identifier.
// All the parties calling NewCRS with the same session read the same stream.
func NewCRS(session []byte) (CRS, error) {

	hasher := blake3.New()

	// Sanity check, this error should not happen.
	if _, err := hasher.Write(crsContext); err != nil {
		panic(err)
	}

	// Sanity check, this error should not happen.
	if _, err := hasher.Write(session); err != nil {
		panic(err)
	}

	crs, err := sampling.NewKeyedPRNG(hasher.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("cannot NewCRS: %w", err)
	}

	return crs, nil
}

// SampleCRP samples a common random polynomial from the provided common reference string.
func SampleCRP(params Parameters, crs CRS) CRP {
	crp := params.RingQ().NewPoly()
	ring.NewUniformSampler(crs, params.Q()).Read(crp)
	return CRP{Value: crp}
}
