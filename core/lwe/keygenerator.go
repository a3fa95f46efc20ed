package lwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/linalg"
	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create
// new keys. It is not safe for concurrent use.
type KeyGenerator struct {
	params         Parameters
	engine         *linalg.Engine
	uniformSampler ring.Sampler
	xsSampler      ring.Sampler
	xeSampler      ring.Sampler
}

// NewKeyGenerator creates a new [KeyGenerator] reading all its randomness
// from prng.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) (kgen *KeyGenerator, err error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: prng is nil")
	}

	kgen = &KeyGenerator{params: params}

	if kgen.engine, err = linalg.NewEngine(params.Q()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	kgen.uniformSampler = ring.NewUniformSampler(prng, params.Q())

	if kgen.xsSampler, err = ring.NewSampler(prng, params.Q(), params.Xs()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	if kgen.xeSampler, err = ring.NewSampler(prng, params.Q(), params.Xe()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	return
}

// GenSecretKeyNew generates a new [SecretKey] s sampled from Xs.
func (kgen KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	return &SecretKey{Value: kgen.engine.SampleVector(kgen.xsSampler, kgen.params.N())}
}

// GenPublicKeyNew generates a new [PublicKey] (A, b = A*s + e) from the provided [SecretKey].
func (kgen KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey, err error) {

	if len(sk.Value) != kgen.params.N() {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: secret key dimension %d does not match parameters dimension %d", len(sk.Value), kgen.params.N())
	}

	pk = &PublicKey{A: kgen.engine.SampleMatrix(kgen.uniformSampler, kgen.params.M(), kgen.params.N())}

	if pk.B, err = kgen.engine.MatVec(pk.A, sk.Value); err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
	}

	e := kgen.engine.SampleVector(kgen.xeSampler, kgen.params.M())

	if pk.B, err = kgen.engine.Add(pk.B, e); err != nil {
		return nil, fmt.Errorf("cannot GenPublicKeyNew: %w", err)
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
