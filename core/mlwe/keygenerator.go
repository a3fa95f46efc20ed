package mlwe

import (
	"fmt"
	"io"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create new keys.
// It is not safe for concurrent use.
type KeyGenerator struct {
	params    Parameters
	prng      sampling.PRNG
	xsSampler ring.Sampler
	xeSampler ring.Sampler
}

// NewKeyGenerator creates a new [KeyGenerator] reading all its randomness from prng.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) (kgen *KeyGenerator, err error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: prng is nil")
	}

	kgen = &KeyGenerator{params: params, prng: prng}

	if kgen.xsSampler, err = ring.NewSampler(prng, params.Q(), params.Xs()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	if kgen.xeSampler, err = ring.NewSampler(prng, params.Q(), params.Xe()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	return
}

// GenSecretKeyNew generates a new [SecretKey] of k polynomials sampled from Xs.
func (kgen KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	sk = &SecretKey{Value: kgen.params.RingQ().NewPolyVector(kgen.params.Rank())}
	for i := range sk.Value {
		kgen.xsSampler.Read(sk.Value[i])
	}
	return
}

// GenPublicKeyNew generates a new [PublicKey] from the provided [SecretKey]: a fresh
// seed, the matrix A expanded from it and B = A*s0 + e0.
func (kgen KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey, err error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: secret key is nil")
	}

	ringQ := kgen.params.RingQ()

	pk = &PublicKey{Seed: make([]byte, SeedSize)}

	if _, err = io.ReadFull(kgen.prng, pk.Seed); err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
	}

	if pk.A, err = ExpandMatrix(kgen.params, pk.Seed); err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
	}

	pk.B = ringQ.NewPolyVector(kgen.params.Rank())

	if err = ringQ.MatVecMul(pk.A, sk.Value, pk.B); err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
	}

	for i := range pk.B {
		kgen.xeSampler.ReadAndAdd(pk.B[i])
	}

	return
}

// GenKeyPairNew generates a new [SecretKey] and a corresponding [PublicKey].
func (kgen KeyGenerator) GenKeyPairNew() (sk *SecretKey, pk *PublicKey, err error) {
	sk = kgen.GenSecretKeyNew()
	if pk, err = kgen.GenPublicKeyNew(sk); err != nil {
		return nil, nil, err
	}
	return
}
