package mlwe

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SadeemSajid/crypto-lattice/ring"
	"github.com/SadeemSajid/crypto-lattice/schemes"
	"github.com/SadeemSajid/crypto-lattice/utils"
	"github.com/SadeemSajid/crypto-lattice/utils/sampling"
)

var flagParamString = flag.String("params", "", "specify the test cryptographic parameters as a JSON string. Overrides the default test parameters.")

func testString(params Parameters, opname string) string {
	return fmt.Sprintf("%s/k=%d/logN=%d/Q=%d/P=%d",
		opname,
		params.Rank(),
		params.LogN(),
		params.Q(),
		params.P())
}

type testContext struct {
	params Parameters
	prng   sampling.PRNG
	kgen   *KeyGenerator
	enc    *Encryptor
	dec    *Decryptor
	sk     *SecretKey
	pk     *PublicKey
}

func newTestContext(params Parameters) (tc *testContext, err error) {

	tc = &testContext{params: params}

	if tc.prng, err = sampling.NewKeyedPRNG([]byte{'m', 'l', 'w', 'e'}); err != nil {
		return
	}

	if tc.kgen, err = NewKeyGenerator(params, tc.prng); err != nil {
		return
	}

	if tc.sk, tc.pk, err = tc.kgen.GenKeyPairNew(); err != nil {
		return
	}

	if tc.enc, err = NewEncryptor(params, tc.pk, tc.prng); err != nil {
		return
	}

	tc.dec, err = NewDecryptor(params, tc.sk)

	return
}

func (tc *testContext) randomMessage() (msg []uint64) {
	msg = make([]uint64, tc.params.MessageLength())
	for i := range msg {
		x, err := sampling.ReadUint64N(tc.prng, tc.params.P())
		if err != nil {
			panic(err)
		}
		msg[i] = x
	}
	return
}

func TestMLWE(t *testing.T) {

	var err error

	paramsLiterals := testInsecure

	if *flagParamString != "" {
		var jsonParams ParametersLiteral
		if err = json.Unmarshal([]byte(*flagParamString), &jsonParams); err != nil {
			t.Fatal(err)
		}
		paramsLiterals = []ParametersLiteral{jsonParams}
	}

	for _, paramsLit := range paramsLiterals {

		var params Parameters
		if params, err = NewParametersFromLiteral(paramsLit); err != nil {
			t.Fatal(err)
		}

		tc, err := newTestContext(params)
		require.NoError(t, err)

		for _, testSet := range []func(tc *testContext, t *testing.T){
			testParameters,
			testExpandMatrix,
			testKeyGenerator,
			testEncryptor,
			testNoise,
			testScheme,
		} {
			testSet(tc, t)
		}
	}

	testUserDefinedParameters(t)
	testModuleLWEScenario(t)
}

func testParameters(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Parameters/JSON"), func(t *testing.T) {
		data, err := json.Marshal(params)
		require.NoError(t, err)

		var paramsRec Parameters
		require.NoError(t, json.Unmarshal(data, &paramsRec))
		require.True(t, params.Equal(&paramsRec))
	})

	t.Run(testString(params, "Parameters/Margin"), func(t *testing.T) {
		require.GreaterOrEqual(t, params.DecodingMargin(), 1.0)
		require.Equal(t, params.Rank()*params.N(), params.MessageLength())
	})
}

func testExpandMatrix(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "ExpandMatrix"), func(t *testing.T) {

		A, err := ExpandMatrix(params, tc.pk.Seed)
		require.NoError(t, err)
		require.True(t, A.Equal(tc.pk.A))

		seed := append([]byte{}, tc.pk.Seed...)
		seed[0] ^= 1
		B, err := ExpandMatrix(params, seed)
		require.NoError(t, err)
		require.False(t, A.Equal(B))

		// entries are domain separated
		if params.Rank() > 1 {
			require.False(t, A[0][1].Equal(&A[1][0]))
		}

		_, err = ExpandMatrix(params, seed[:SeedSize-1])
		require.Error(t, err)
	})
}

func testKeyGenerator(tc *testContext, t *testing.T) {

	params := tc.params
	ringQ := params.RingQ()

	t.Run(testString(params, "KeyGenerator"), func(t *testing.T) {

		require.Len(t, tc.pk.Seed, SeedSize)
		require.Len(t, tc.sk.Value, params.Rank())
		require.Len(t, tc.pk.B, params.Rank())

		// B - A*s0 is a small error
		As := ringQ.NewPolyVector(params.Rank())
		require.NoError(t, ringQ.MatVecMul(tc.pk.A, tc.sk.Value, As))

		bound := uint64(20 * ring.StandardDeviation(params.Xe(), params.N(), params.Q()))
		coeffs := make([]int64, params.N())

		for i := range As {
			require.NoError(t, ringQ.Sub(tc.pk.B[i], As[i], As[i]))
			require.NoError(t, ringQ.PolyToCenteredInt64(As[i], coeffs))
			require.LessOrEqual(t, utils.MaxAbsSlice(coeffs), bound)
		}

		require.True(t, tc.pk.Equal(tc.pk.CopyNew()))
		require.True(t, tc.sk.Equal(tc.sk.CopyNew()))
	})

	t.Run(testString(params, "KeyGenerator/InvalidSecretKey"), func(t *testing.T) {
		_, err := tc.kgen.GenPublicKeyNew(&SecretKey{Value: tc.sk.Value[:params.Rank()-1]})
		require.ErrorIs(t, err, utils.ErrDimensionMismatch)
		_, err = NewDecryptor(params, &SecretKey{Value: tc.sk.Value[:params.Rank()-1]})
		require.Error(t, err)
	})
}

func testEncryptor(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Encryptor/RoundTrip"), func(t *testing.T) {
		for i := 0; i < 4; i++ {
			pt := NewPlaintext(tc.randomMessage())

			ct, err := tc.enc.EncryptNew(pt)
			require.NoError(t, err)
			require.Len(t, ct.U, params.Rank())
			require.Len(t, ct.V, params.Rank())

			have, err := tc.dec.DecryptNew(ct)
			require.NoError(t, err)
			require.Equal(t, pt.Value, have.Value)
		}
	})

	t.Run(testString(params, "Encryptor/WithPRNG"), func(t *testing.T) {

		pt := NewPlaintext(tc.randomMessage())

		prng0, err := sampling.NewKeyedPRNG([]byte{'e', 'n', 'c'})
		require.NoError(t, err)
		prng1, err := sampling.NewKeyedPRNG([]byte{'e', 'n', 'c'})
		require.NoError(t, err)

		enc0, err := tc.enc.WithPRNG(prng0)
		require.NoError(t, err)
		enc1, err := tc.enc.WithPRNG(prng1)
		require.NoError(t, err)

		ct0, err := enc0.EncryptNew(pt)
		require.NoError(t, err)
		ct1, err := enc1.EncryptNew(pt)
		require.NoError(t, err)

		require.True(t, ct0.Equal(ct1))
		require.True(t, ct0.Equal(ct0.CopyNew()))
	})

	t.Run(testString(params, "Encryptor/InvalidPlaintext"), func(t *testing.T) {

		_, err := tc.enc.EncryptNew(NewPlaintext(make([]uint64, params.MessageLength()-1)))
		require.ErrorIs(t, err, schemes.ErrPlaintextLength)

		msg := make([]uint64, params.MessageLength())
		msg[len(msg)-1] = params.P()
		_, err = tc.enc.EncryptNew(NewPlaintext(msg))
		require.ErrorIs(t, err, schemes.ErrPlaintextValue)
	})

	t.Run(testString(params, "Decryptor/MalformedCiphertext"), func(t *testing.T) {

		ct, err := tc.enc.EncryptNew(NewPlaintext(tc.randomMessage()))
		require.NoError(t, err)

		ct.U = ct.U[:params.Rank()-1]
		_, err = tc.dec.DecryptNew(ct)
		require.ErrorIs(t, err, utils.ErrDimensionMismatch)

		_, err = tc.dec.DecryptNew(nil)
		require.Error(t, err)
	})
}

func testNoise(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Decryptor/Noise"), func(t *testing.T) {

		var sumSq float64
		var count int

		// the values of a ciphertext share the term <e0, r> - <e1, s0>
		for i := 0; i < utils.Max(4, 256/params.N()); i++ {

			sk, pk, err := tc.kgen.GenKeyPairNew()
			require.NoError(t, err)

			enc, err := NewEncryptor(params, pk, tc.prng)
			require.NoError(t, err)

			dec, err := NewDecryptor(params, sk)
			require.NoError(t, err)

			pt := NewPlaintext(tc.randomMessage())

			ct, err := enc.EncryptNew(pt)
			require.NoError(t, err)

			noise, err := dec.Noise(ct, pt)
			require.NoError(t, err)
			require.Len(t, noise, params.MessageLength())

			for _, e := range noise {
				sumSq += float64(e * e)
				count++
			}
		}

		std := math.Sqrt(sumSq / float64(count))

		require.Less(t, std, 2*params.NoiseStd())
		require.Greater(t, std, params.NoiseStd()/2)
	})
}

func testScheme(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Scheme"), func(t *testing.T) {

		var s schemes.Scheme = NewScheme(params)

		require.Equal(t, schemes.ModuleLWE, s.Variant())
		require.Equal(t, params.MessageLength(), s.PlaintextLength())
		require.Equal(t, params.P(), s.PlaintextModulus())

		pk, sk, err := s.KeyGen(tc.prng)
		require.NoError(t, err)

		msg := tc.randomMessage()

		ct, err := s.Encrypt(msg, pk, tc.prng)
		require.NoError(t, err)

		have, err := s.Decrypt(ct, sk)
		require.NoError(t, err)
		require.Equal(t, msg, have)

		_, err = s.Encrypt(msg, mismatch{}, tc.prng)
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
		_, err = s.Decrypt(mismatch{}, sk)
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
		_, err = s.Noise(ct, mismatch{}, msg)
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
	})
}

type mismatch struct{}

func (mismatch) Variant() schemes.Variant {
	return schemes.PlainLWE
}

func testUserDefinedParameters(t *testing.T) {

	t.Run("Parameters/UnmarshalJSON", func(t *testing.T) {

		var params Parameters
		require.NoError(t, json.Unmarshal([]byte(`{"Rank":128,"LogN":0,"Q":12289}`), &params))
		require.Equal(t, 1, params.N())
		require.True(t, params.Xe() == DefaultXe)
		require.True(t, params.Xs() == DefaultXs)

		def, err := NewParametersFromLiteral(DefaultParametersLiteral)
		require.NoError(t, err)
		require.True(t, params.Equal(&def))
	})

	t.Run("Parameters/Invalid", func(t *testing.T) {
		for _, lit := range []ParametersLiteral{
			{Rank: 0, Q: 12289},
			{Rank: MaxRank + 1, Q: 12289},
			{Rank: 2, LogN: -1, Q: 12289},
			{Rank: 2, LogN: MaxLogN + 1, Q: 12289},
			{Rank: 2, Q: 3},
			{Rank: 2, Q: 12289, Xs: ring.Ternary{P: 2}},
			// noise larger than q/4
			{Rank: 128, Q: 3329, Xe: ring.DiscreteGaussian{Sigma: 80, Bound: 480}},
		} {
			_, err := NewParametersFromLiteral(lit)
			require.Error(t, err, fmt.Sprintf("%+v", lit))
		}
	})
}

func testModuleLWEScenario(t *testing.T) {

	t.Run("Encryptor/k=128/AllOnes", func(t *testing.T) {

		params, err := NewParametersFromLiteral(DefaultParametersLiteral)
		require.NoError(t, err)

		prng, err := sampling.NewKeyedPRNG([]byte{'1', '2', '8'})
		require.NoError(t, err)

		msg := make([]uint64, params.MessageLength())
		for i := range msg {
			msg[i] = 1
		}

		var success int
		for i := 0; i < 32; i++ {

			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)

			sk, pk, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			enc, err := NewEncryptor(params, pk, prng)
			require.NoError(t, err)

			dec, err := NewDecryptor(params, sk)
			require.NoError(t, err)

			ct, err := enc.EncryptNew(NewPlaintext(msg))
			require.NoError(t, err)

			pt, err := dec.DecryptNew(ct)
			require.NoError(t, err)

			if utils.EqualSlice(msg, pt.Value) {
				success++
			}
		}

		require.Equal(t, 32, success)
	})
}
