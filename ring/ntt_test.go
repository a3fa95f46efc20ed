package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

// mulNaive returns the raw product of a and b.
func mulNaive(a, b []int64) (c []int64) {
	c = make([]int64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			c[i+j] += a[i] * b[j]
		}
	}
	return
}

func TestMultiply(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte{'n', 't', 't'})
	require.NoError(t, err)

	randomSlice := func(n int, bound int64) (v []int64) {
		v = make([]int64, n)
		for i := range v {
			x, err := sampling.ReadUint64N(prng, uint64(2*bound+1))
			require.NoError(t, err)
			v[i] = int64(x) - bound
		}
		return
	}

	for _, dims := range [][2]int{{1, 1}, {1, 7}, {2, 3}, {8, 8}, {13, 50}, {512, 512}} {
		t.Run(fmt.Sprintf("Multiply/%dx%d", dims[0], dims[1]), func(t *testing.T) {
			a := randomSlice(dims[0], 1664)
			b := randomSlice(dims[1], 1664)
			c, err := Multiply(a, b)
			require.NoError(t, err)
			require.Equal(t, mulNaive(a, b), c)
		})
	}

	t.Run("Multiply/Example", func(t *testing.T) {
		// (1 + 2x)(3 - x) = 3 + 5x - 2x^2
		c, err := Multiply([]int64{1, 2}, []int64{3, -1})
		require.NoError(t, err)
		require.Equal(t, []int64{3, 5, -2}, c)
	})

	t.Run("Multiply/LargeCoefficients", func(t *testing.T) {
		// 2^28 * 2^28 * 2 = 2^57 < P/2
		a := []int64{1 << 28, -(1 << 28)}
		b := []int64{1 << 28, 1 << 28}
		c, err := Multiply(a, b)
		require.NoError(t, err)
		require.Equal(t, mulNaive(a, b), c)
	})

	t.Run("Multiply/Overflow", func(t *testing.T) {
		_, err := Multiply([]int64{1 << 40}, []int64{1 << 30})
		require.Error(t, err)
		_, err = Multiply([]int64{1, -9223372036854775808}, []int64{2})
		require.Error(t, err)
	})

	t.Run("Multiply/Empty", func(t *testing.T) {
		_, err := Multiply(nil, []int64{1})
		require.Error(t, err)
	})

	t.Run("ReduceModXNPlus1", func(t *testing.T) {

		// degree 5 folded on N = 4, q = 17: x^4 = -1, x^5 = -x
		raw := []int64{1, 2, 3, 4, 5, 6}
		pol, err := ReduceModXNPlus1(raw, 4, 17)
		require.NoError(t, err)
		require.Equal(t, []uint64{Reduce(1-5, 17), Reduce(2-6, 17), 3, 4}, pol.Coeffs)

		// three wraps: x^8 = +1
		raw = []int64{0, 0, 0, 0, 0, 0, 0, 0, -7}
		pol, err = ReduceModXNPlus1(raw, 4, 17)
		require.NoError(t, err)
		require.Equal(t, []uint64{10, 0, 0, 0}, pol.Coeffs)

		_, err = ReduceModXNPlus1(raw, 0, 17)
		require.Error(t, err)
	})

	t.Run("Multiply/MatchesMulSchoolbook", func(t *testing.T) {

		r, err := NewRing(512, 3329)
		require.NoError(t, err)

		sampler := NewUniformSampler(prng, r.Modulus())

		a := sampler.ReadNew(r.N())
		b := sampler.ReadNew(r.N())

		ca := make([]int64, r.N())
		cb := make([]int64, r.N())
		require.NoError(t, r.PolyToCenteredInt64(a, ca))
		require.NoError(t, r.PolyToCenteredInt64(b, cb))

		raw, err := Multiply(ca, cb)
		require.NoError(t, err)

		have, err := ReduceModXNPlus1(raw, r.N(), r.Modulus())
		require.NoError(t, err)

		want := r.NewPoly()
		require.NoError(t, r.MulSchoolbook(a, b, want))

		require.Equal(t, want.Coeffs, have.Coeffs)
	})
}

func BenchmarkMultiply(b *testing.B) {

	prng, err := sampling.NewKeyedPRNG(nil)
	require.NoError(b, err)

	for _, N := range []int{256, 512, 1024} {

		r, err := NewRing(N, 3329)
		require.NoError(b, err)

		sampler := NewUniformSampler(prng, r.Modulus())
		p1 := sampler.ReadNew(N)
		p2 := sampler.ReadNew(N)
		p3 := r.NewPoly()

		b.Run(testString("Mul", r), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				require.NoError(b, r.Mul(p1, p2, p3))
			}
		})

		b.Run(testString("MulSchoolbook", r), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				require.NoError(b, r.MulSchoolbook(p1, p2, p3))
			}
		})
	}
}
