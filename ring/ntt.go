package ring

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/SadeemSajid/crypto-lattice/utils"
)

const (
	// TransformLogMaxLength is the log2 of the maximum length of the cyclic
	// transform used by Multiply.
	TransformLogMaxLength = 21

	// TransformLogModulus is the bit-size bound of the transform modulus.
	TransformLogModulus = 60
)

// numberTheoreticTransformer stores the constants of the exact cyclic
// transform of length up to 2^TransformLogMaxLength over a prime P < 2^60
// with P = 1 mod 2^TransformLogMaxLength.
type numberTheoreticTransformer struct {
	modulus      uint64
	bredConstant [2]uint64
	root         uint64 // primitive 2^TransformLogMaxLength-th root of unity
	rootInv      uint64
}

var (
	transformerOnce sync.Once
	transformer     *numberTheoreticTransformer
)

func getTransformer() *numberTheoreticTransformer {
	transformerOnce.Do(func() {

		primes, err := GenerateNTTPrimesP(TransformLogModulus, 1<<TransformLogMaxLength, 1)

		// Sanity check, this error should not happen.
		if err != nil {
			panic(err)
		}

		P := primes[0]

		root, err := RootOfUnity(1<<TransformLogMaxLength, P)

		// Sanity check, this error should not happen.
		if err != nil {
			panic(err)
		}

		transformer = &numberTheoreticTransformer{
			modulus:      P,
			bredConstant: GenBRedConstant(P),
			root:         root,
			rootInv:      ModExp(root, P-2, P),
		}
	})

	return transformer
}

// TransformModulus returns the prime modulus P of the transform used by Multiply.
func TransformModulus() uint64 {
	return getTransformer().modulus
}

// forward evaluates in place the cyclic transform of a, whose length must be
// a power of two not larger than 2^TransformLogMaxLength.
func (t *numberTheoreticTransformer) forward(a []uint64) {
	t.transform(a, t.root)
}

// backward evaluates in place the inverse cyclic transform of a, including the
// multiplication by len(a)^-1.
func (t *numberTheoreticTransformer) backward(a []uint64) {

	t.transform(a, t.rootInv)

	P := t.modulus
	brc := t.bredConstant

	nInv := t.pow(uint64(len(a)), P-2)

	for i := range a {
		a[i] = BRed(a[i], nInv, P, brc)
	}
}

// pow returns x^e mod P.
func (t *numberTheoreticTransformer) pow(x, e uint64) (result uint64) {
	P := t.modulus
	brc := t.bredConstant
	result = 1
	x %= P
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, P, brc)
		}
		x = BRed(x, x, P, brc)
	}
	return
}

// transform is an iterative Cooley-Tukey transform on the bit-reversed input.
func (t *numberTheoreticTransformer) transform(a []uint64, root uint64) {

	N := len(a)

	if N < 2 {
		return
	}

	P := t.modulus
	brc := t.bredConstant

	utils.BitReverseInPlaceSlice(a, N)

	for length := 2; length <= N; length <<= 1 {

		// primitive length-th root of unity
		w := t.pow(root, uint64((1<<TransformLogMaxLength)/length))

		half := length >> 1

		for i := 0; i < N; i += length {

			wj := uint64(1)

			for j := i; j < i+half; j++ {
				u := a[j]
				v := BRed(a[j+half], wj, P, brc)
				a[j] = CRed(u+v, P)
				a[j+half] = CRed(u+P-v, P)
				wj = BRed(wj, w, P, brc)
			}
		}
	}
}

// multiplicationIsExact returns true if the product of two integer polynomials,
// the shortest of length minLen, with coefficients bounded in absolute value
// by maxA and maxB, has all its coefficients in (-P/2, P/2).
func multiplicationIsExact(minLen int, maxA, maxB uint64) bool {

	hi, lo := bits.Mul64(maxA, maxB)
	if hi != 0 {
		return false
	}

	if hi, lo = bits.Mul64(lo, uint64(minLen)); hi != 0 {
		return false
	}

	return lo < TransformModulus()>>1
}

// Multiply returns the raw (non-reduced) product of the integer polynomials
// a and b, of length len(a)+len(b)-1.
//
// The operands are zero padded to the next power of two, multiplied
// point-wise in the transform domain and mapped back to the centered
// representatives modulo the transform prime P. The result is exact whenever
// min(len(a), len(b)) * max|a_i| * max|b_j| < P/2, which is checked
// beforehand: an error is returned instead of an approximate result.
func Multiply(a, b []int64) (c []int64, err error) {

	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("cannot Multiply: operands must be non-empty")
	}

	outLen := len(a) + len(b) - 1

	L := utils.NextPowerOfTwo(outLen)

	if L > 1<<TransformLogMaxLength {
		return nil, fmt.Errorf("cannot Multiply: product length %d exceeds the maximum transform length 2^%d", outLen, TransformLogMaxLength)
	}

	maxA, maxB := utils.MaxAbsSlice(a), utils.MaxAbsSlice(b)

	if !multiplicationIsExact(utils.Min(len(a), len(b)), maxA, maxB) {
		return nil, fmt.Errorf("cannot Multiply: coefficient bound %d * %d * %d exceeds the exactness bound of the transform", utils.Min(len(a), len(b)), maxA, maxB)
	}

	t := getTransformer()
	P := t.modulus
	brc := t.bredConstant

	ta := make([]uint64, L)
	tb := make([]uint64, L)

	ReduceVec(a, P, ta[:len(a)])
	ReduceVec(b, P, tb[:len(b)])

	t.forward(ta)
	t.forward(tb)

	for i := range ta {
		ta[i] = BRed(ta[i], tb[i], P, brc)
	}

	t.backward(ta)

	c = make([]int64, outLen)
	CenteredReduceVec(ta[:outLen], P, c)

	return
}

// ReduceModXNPlus1 maps a raw integer polynomial into Z_q[X]/(X^N+1):
// the coefficient of degree i is folded onto degree i mod N with sign
// (-1)^(i/N), then reduced modulo q.
func ReduceModXNPlus1(raw []int64, N int, q uint64) (pol Poly, err error) {

	if N < 1 {
		return pol, fmt.Errorf("cannot ReduceModXNPlus1: invalid ring degree N=%d", N)
	}

	if q < 2 || bits.Len64(q) > MaxModulusBits {
		return pol, fmt.Errorf("cannot ReduceModXNPlus1: invalid modulus q=%d", q)
	}

	pol = NewPoly(N)

	for i, c := range raw {

		v := Reduce(c, q)

		if k := i % N; (i/N)&1 == 0 {
			pol.Coeffs[k] = CRed(pol.Coeffs[k]+v, q)
		} else {
			pol.Coeffs[k] = CRed(pol.Coeffs[k]+q-v, q)
		}
	}

	return
}
