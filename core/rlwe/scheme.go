package rlwe

import (
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// Scheme implements [schemes.Scheme] for RLWE.
type Scheme struct {
	params Parameters
}

// NewScheme returns a new [Scheme] instantiated with the given parameters.
func NewScheme(params Parameters) *Scheme {
	return &Scheme{params: params}
}

// Parameters returns the parameters of the scheme.
func (s Scheme) Parameters() Parameters {
	return s.params
}

// Variant returns [schemes.RingLWE].
func (s Scheme) Variant() schemes.Variant {
	return schemes.RingLWE
}

// PlaintextLength returns N: a message has one value per coefficient.
func (s Scheme) PlaintextLength() int {
	return s.params.N()
}

// PlaintextModulus returns the plaintext modulus P.
func (s Scheme) PlaintextModulus() uint64 {
	return s.params.P()
}

// KeyGen generates a new key pair.
func (s Scheme) KeyGen(prng sampling.PRNG) (schemes.PublicKey, schemes.SecretKey, error) {

	kgen, err := NewKeyGenerator(s.params, prng)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot KeyGen: %w", err)
	}

	sk, pk, err := kgen.GenKeyPairNew()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot KeyGen: %w", err)
	}

	return pk, sk, nil
}

// Encrypt encrypts msg under pk, which must be a *[PublicKey].
func (s Scheme) Encrypt(msg []uint64, pk schemes.PublicKey, prng sampling.PRNG) (schemes.Ciphertext, error) {

	if err := schemes.CheckVariant("Encrypt", schemes.RingLWE, pk); err != nil {
		return nil, err
	}

	rlwePk, ok := pk.(*PublicKey)
	if !ok {
		return nil, fmt.Errorf("cannot Encrypt: %w: invalid public key type %T", schemes.ErrVariantMismatch, pk)
	}

	enc, err := NewEncryptor(s.params, rlwePk, prng)
	if err != nil {
		return nil, fmt.Errorf("cannot Encrypt: %w", err)
	}

	ct, err := enc.EncryptNew(&Plaintext{Value: msg})
	if err != nil {
		return nil, fmt.Errorf("cannot Encrypt: %w", err)
	}

	return ct, nil
}

// Decrypt decrypts ct, which must be a *[Ciphertext], with sk, which must be a *[SecretKey].
func (s Scheme) Decrypt(ct schemes.Ciphertext, sk schemes.SecretKey) ([]uint64, error) {

	dec, rlweCt, err := s.decryptor("Decrypt", ct, sk)
	if err != nil {
		return nil, err
	}

	pt, err := dec.DecryptNew(rlweCt)
	if err != nil {
		return nil, fmt.Errorf("cannot Decrypt: %w", err)
	}

	return pt.Value, nil
}

// Noise returns the centered decryption noise of ct given the message msg it encrypts.
func (s Scheme) Noise(ct schemes.Ciphertext, sk schemes.SecretKey, msg []uint64) ([]int64, error) {

	dec, rlweCt, err := s.decryptor("Noise", ct, sk)
	if err != nil {
		return nil, err
	}

	noise, err := dec.Noise(rlweCt, &Plaintext{Value: msg})
	if err != nil {
		return nil, fmt.Errorf("cannot Noise: %w", err)
	}

	return noise, nil
}

// decryptor checks the variant of ct and sk and returns a [Decryptor] for sk.
func (s Scheme) decryptor(op string, ct schemes.Ciphertext, sk schemes.SecretKey) (*Decryptor, *Ciphertext, error) {

	if err := schemes.CheckVariant(op, schemes.RingLWE, ct); err != nil {
		return nil, nil, err
	}

	if err := schemes.CheckVariant(op, schemes.RingLWE, sk); err != nil {
		return nil, nil, err
	}

	rlweCt, ok := ct.(*Ciphertext)
	if !ok {
		return nil, nil, fmt.Errorf("cannot %s: %w: invalid ciphertext type %T", op, schemes.ErrVariantMismatch, ct)
	}

	rlweSk, ok := sk.(*SecretKey)
	if !ok {
		return nil, nil, fmt.Errorf("cannot %s: %w: invalid secret key type %T", op, schemes.ErrVariantMismatch, sk)
	}

	dec, err := NewDecryptor(s.params, rlweSk)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot %s: %w", op, err)
	}

	return dec, rlweCt, nil
}
