package ring

import (
	"fmt"
	"math/big"
)

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers bellow 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// GenerateNTTPrimesP generates n NthRoot NTT friendly primes starting from 2**LogP and downward,
// i.e. primes p < 2^LogP with p = 1 mod NthRoot.
func GenerateNTTPrimesP(logP, NthRoot, n int) (primes []uint64, err error) {

	if logP < 2 || logP > 61 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimesP: logP=%d must be between 2 and 61", logP)
	}

	if NthRoot < 1 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimesP: NthRoot=%d must be positive", NthRoot)
	}

	var x, Ppow2 uint64

	primes = []uint64{}

	Ppow2 = uint64(1 << logP)

	x = Ppow2 + 1

	for {

		// We start by subtracting NthRoot to ensure that the prime bit-length is smaller than LogP

		if x > uint64(NthRoot) {

			x -= uint64(NthRoot)

			if IsPrime(x) {

				primes = append(primes, x)

				if len(primes) == n {
					return primes, nil
				}
			}

		} else {
			return nil, fmt.Errorf("cannot GenerateNTTPrimesP: not enough primes for the given parameters")
		}
	}
}

// RootOfUnity returns a primitive order-th root of unity modulo the prime p.
// order must be a power of two dividing p-1.
func RootOfUnity(order, p uint64) (root uint64, err error) {

	if order == 0 || order&(order-1) != 0 {
		return 0, fmt.Errorf("cannot RootOfUnity: order=%d is not a power of two", order)
	}

	if (p-1)%order != 0 {
		return 0, fmt.Errorf("cannot RootOfUnity: order=%d does not divide p-1=%d", order, p-1)
	}

	if order == 1 {
		return 1, nil
	}

	exp := (p - 1) / order

	for g := uint64(2); g < p; g++ {
		// primitive iff root^(order/2) = -1
		if root = ModExp(g, exp, p); ModExp(root, order>>1, p) == p-1 {
			return root, nil
		}
	}

	return 0, fmt.Errorf("cannot RootOfUnity: no primitive root found, is p=%d prime?", p)
}

// ModExp performs the modular exponentiation x^e mod p,
// p is required to be at most 61 bits.
func ModExp(x, e, p uint64) (result uint64) {
	brc := GenBRedConstant(p)
	result = 1
	x %= p
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, p, brc)
		}
		x = BRed(x, x, p, brc)
	}
	return result
}
