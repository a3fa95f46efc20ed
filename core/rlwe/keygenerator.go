package rlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create new keys.
// It is not safe for concurrent use.
type KeyGenerator struct {
	params         Parameters
	uniformSampler ring.Sampler
	xsSampler      ring.Sampler
	xeSampler      ring.Sampler
}

// NewKeyGenerator creates a new [KeyGenerator] reading all its randomness from prng.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) (kgen *KeyGenerator, err error) {

	if prng == nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: prng is nil")
	}

	kgen = &KeyGenerator{
		params:         params,
		uniformSampler: ring.NewUniformSampler(prng, params.Q()),
	}

	if kgen.xsSampler, err = ring.NewSampler(prng, params.Q(), params.Xs()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	if kgen.xeSampler, err = ring.NewSampler(prng, params.Q(), params.Xe()); err != nil {
		return nil, fmt.Errorf("cannot NewKeyGenerator: %w", err)
	}

	return
}

// GenSecretKeyNew generates a new [SecretKey] sampled from Xs.
func (kgen KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	sk = NewSecretKey(kgen.params)
	kgen.xsSampler.Read(sk.Value)
	return
}

// GenPublicKeyNew generates a new [PublicKey] (A, B = A*s + e) from the provided [SecretKey].
func (kgen KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey, err error) {
	pk = NewPublicKey(kgen.params)
	if err = kgen.GenPublicKey(sk, pk); err != nil {
		return nil, err
	}
	return
}

// GenPublicKey generates a public key from the provided [SecretKey] and writes it on pk.
func (kgen KeyGenerator) GenPublicKey(sk *SecretKey, pk *PublicKey) (err error) {

	ringQ := kgen.params.RingQ()

	kgen.uniformSampler.Read(pk.A)

	if err = ringQ.Mul(pk.A, sk.Value, pk.B); err != nil {
		return fmt.Errorf("cannot GenPublicKey: %w", err)
	}

	kgen.xeSampler.ReadAndAdd(pk.B)

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
