package lwe

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
	return fmt.Sprintf("%s/N=%d/M=%d/Q=%d/P=%d/Xe=%s",
		opname,
		params.N(),
		params.M(),
		params.Q(),
		params.P(),
		params.Xe().Type())
}

type testContext struct {
	params Parameters
	prng   sampling.PRNG
	kgen   *KeyGenerator
	sk     *SecretKey
	pk     *PublicKey
	enc    *Encryptor
	dec    *Decryptor
}

func newTestContext(params Parameters) (tc *testContext, err error) {

	tc = &testContext{params: params}

	if tc.prng, err = sampling.NewKeyedPRNG([]byte{'l', 'w', 'e'}); err != nil {
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

// randomMessage returns n values uniform in [0, p).
func randomMessage(prng sampling.PRNG, n int, p uint64) (msg []uint64) {
	msg = make([]uint64, n)
	for i := range msg {
		x, err := sampling.ReadUint64N(prng, p)
		if err != nil {
			panic(err)
		}
		msg[i] = x
	}
	return
}

func TestLWE(t *testing.T) {

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
			testKeyGenerator,
			testEncryptor,
			testNoise,
			testScheme,
		} {
			testSet(tc, t)
		}
	}

	testDefaultParameters(t)
	testInvalidParameters(t)
	testNoiselessDecryption(t)
	testPlainLWEScenario(t)
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
		require.InDelta(t, float64(params.Q())/float64(2*params.P())/params.NoiseStd(), params.DecodingMargin(), 1e-9)
	})
}

func testKeyGenerator(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "KeyGenerator"), func(t *testing.T) {

		require.Len(t, tc.sk.Value, params.N())
		require.Equal(t, params.M(), tc.pk.A.Rows())
		require.Equal(t, params.N(), tc.pk.A.Cols())
		require.Len(t, tc.pk.B, params.M())

		for _, row := range tc.pk.A {
			for _, a := range row {
				require.Less(t, a, params.Q())
			}
		}

		// b - A*s is a small error
		As, err := tc.enc.engine.MatVec(tc.pk.A, tc.sk.Value)
		require.NoError(t, err)
		e, err := tc.enc.engine.Sub(tc.pk.B, As)
		require.NoError(t, err)

		bound := int64(20 * math.Max(1, ring.StandardDeviation(params.Xe(), params.M(), params.Q())))
		for _, ei := range tc.enc.engine.Centered(e) {
			require.LessOrEqual(t, utils.Abs(ei), bound)
		}
	})

	t.Run(testString(params, "KeyGenerator/InvalidSecretKey"), func(t *testing.T) {
		_, err := tc.kgen.GenPublicKeyNew(&SecretKey{Value: tc.sk.Value[:params.N()-1]})
		require.Error(t, err)
	})
}

func testEncryptor(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Encryptor/RoundTrip"), func(t *testing.T) {

		for _, L := range []int{1, 8, 33} {

			pt := NewPlaintext(randomMessage(tc.prng, L, params.P()))

			ct, err := tc.enc.EncryptNew(pt)
			require.NoError(t, err)
			require.Equal(t, L, ct.Len())
			require.Equal(t, params.N(), ct.U.Cols())

			have, err := tc.dec.DecryptNew(ct)
			require.NoError(t, err)
			require.Equal(t, pt.Value, have.Value)
		}
	})

	t.Run(testString(params, "Encryptor/WithPRNG"), func(t *testing.T) {

		pt := NewPlaintext(randomMessage(tc.prng, 16, params.P()))

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

		_, err = tc.enc.WithPRNG(nil)
		require.Error(t, err)
	})

	t.Run(testString(params, "Encryptor/InvalidPlaintext"), func(t *testing.T) {
		_, err := tc.enc.EncryptNew(NewPlaintext(nil))
		require.ErrorIs(t, err, schemes.ErrPlaintextLength)
		_, err = tc.enc.EncryptNew(NewPlaintext([]uint64{0, params.P()}))
		require.ErrorIs(t, err, schemes.ErrPlaintextValue)
		_, err = tc.enc.EncryptNew(nil)
		require.Error(t, err)
	})

	t.Run(testString(params, "Decryptor/MalformedCiphertext"), func(t *testing.T) {

		ct, err := tc.enc.EncryptNew(NewPlaintext([]uint64{1, 0, 1}))
		require.NoError(t, err)

		ct.U = ct.U[:2]
		_, err = tc.dec.DecryptNew(ct)
		require.Error(t, err)

		ct, err = tc.enc.EncryptNew(NewPlaintext([]uint64{1, 0, 1}))
		require.NoError(t, err)

		ct.U[1] = ct.U[1][:params.N()-1]
		_, err = tc.dec.DecryptNew(ct)
		require.ErrorIs(t, err, utils.ErrDimensionMismatch)
	})
}

func testNoise(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Decryptor/Noise"), func(t *testing.T) {

		var noises []int64

		for i := 0; i < 64; i++ {

			sk, pk, err := tc.kgen.GenKeyPairNew()
			require.NoError(t, err)

			enc, err := NewEncryptor(params, pk, tc.prng)
			require.NoError(t, err)

			dec, err := NewDecryptor(params, sk)
			require.NoError(t, err)

			pt := NewPlaintext(randomMessage(tc.prng, 16, params.P()))
			ct, err := enc.EncryptNew(pt)
			require.NoError(t, err)

			noise, err := dec.Noise(ct, pt)
			require.NoError(t, err)
			require.Len(t, noise, 16)

			noises = append(noises, noise...)
		}

		var sumSq float64
		for _, e := range noises {
			sumSq += float64(e * e)
		}

		std := math.Sqrt(sumSq / float64(len(noises)))

		// the estimate is within a factor two of the measure
		require.Less(t, std, 2*params.NoiseStd())
		require.Greater(t, std, params.NoiseStd()/2)
	})
}

func testScheme(tc *testContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Scheme"), func(t *testing.T) {

		var s schemes.Scheme = NewScheme(params)

		require.Equal(t, schemes.PlainLWE, s.Variant())
		require.Equal(t, 0, s.PlaintextLength())
		require.Equal(t, params.P(), s.PlaintextModulus())

		pk, sk, err := s.KeyGen(tc.prng)
		require.NoError(t, err)

		msg := randomMessage(tc.prng, 24, params.P())

		ct, err := s.Encrypt(msg, pk, tc.prng)
		require.NoError(t, err)

		have, err := s.Decrypt(ct, sk)
		require.NoError(t, err)
		require.Equal(t, msg, have)

		noise, err := s.Noise(ct, sk, msg)
		require.NoError(t, err)
		require.Len(t, noise, len(msg))

		_, err = s.Encrypt(msg, mismatch{}, tc.prng)
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
		_, err = s.Decrypt(mismatch{}, sk)
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
		_, err = s.Decrypt(ct, mismatch{})
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
		_, err = s.Noise(ct, nil, msg)
		require.ErrorIs(t, err, schemes.ErrVariantMismatch)
	})
}

type mismatch struct{}

func (mismatch) Variant() schemes.Variant {
	return schemes.RingLWE
}

func testDefaultParameters(t *testing.T) {

	t.Run("Parameters/Defaults", func(t *testing.T) {

		params, err := NewParametersFromLiteral(ParametersLiteral{N: 10, M: 25, Q: 181})
		require.NoError(t, err)

		require.Equal(t, DefaultP, params.P())
		require.True(t, params.Xs() == DefaultXs)
		require.True(t, params.Xe() == DefaultXe)

		def, err := NewParametersFromLiteral(DefaultParametersLiteral)
		require.NoError(t, err)
		require.True(t, params.Equal(&def))
	})

	t.Run("Parameters/UnmarshalJSON", func(t *testing.T) {

		var params Parameters
		require.NoError(t, json.Unmarshal([]byte(`{"N":10,"M":25,"Q":181}`), &params))
		require.True(t, params.Xe() == DefaultXe)

		data := []byte(`{"N":16,"M":32,"Q":3329,"P":2,"Xs":{"Type":"Ternary","P":0.5},"Xe":{"Type":"DiscreteGaussian","Sigma":1.5,"Bound":9}}`)
		require.NoError(t, json.Unmarshal(data, &params))
		require.True(t, params.Xs() == ring.Ternary{P: 0.5})
		require.True(t, params.Xe() == ring.DiscreteGaussian{Sigma: 1.5, Bound: 9})

		require.Error(t, json.Unmarshal([]byte(`{"N":16,"M":32,"Q":3329,"Xe":{"Type":"Unknown"}}`), &params))
	})
}

func testInvalidParameters(t *testing.T) {

	t.Run("Parameters/Invalid", func(t *testing.T) {

		for _, lit := range []ParametersLiteral{
			{N: 0, M: 25, Q: 181},
			{N: 10, M: 0, Q: 181},
			{N: 10, M: 25, Q: 1},
			{N: 10, M: 25, Q: 1 << 62},
			{N: 10, M: 25, Q: 181, P: 1},
			{N: 10, M: 25, Q: 181, P: 91},
			{N: 10, M: 25, Q: 181, Xs: ring.Ternary{}},
			// noise larger than q/4
			{N: 10, M: 25, Q: 181, Xe: ring.RoundedGaussian{Sigma: 40}},
		} {
			_, err := NewParametersFromLiteral(lit)
			require.Error(t, err, fmt.Sprintf("%+v", lit))
		}
	})
}

func testNoiselessDecryption(t *testing.T) {

	t.Run("Encryptor/Noiseless", func(t *testing.T) {

		params, err := NewParametersFromLiteral(ParametersLiteral{N: 10, M: 25, Q: 181, Xe: ring.RoundedGaussian{}})
		require.NoError(t, err)
		require.Equal(t, 0.0, params.NoiseStd())

		tc, err := newTestContext(params)
		require.NoError(t, err)

		msg := utils.BytesToBits([]byte{0x69})

		for i := 0; i < 100; i++ {
			ct, err := tc.enc.EncryptNew(NewPlaintext(msg))
			require.NoError(t, err)

			noise, err := tc.dec.Noise(ct, NewPlaintext(msg))
			require.NoError(t, err)
			require.Equal(t, make([]int64, len(msg)), noise)

			pt, err := tc.dec.DecryptNew(ct)
			require.NoError(t, err)
			require.Equal(t, msg, pt.Value)
		}
	})
}

func testPlainLWEScenario(t *testing.T) {

	t.Run("Encryptor/01101001", func(t *testing.T) {

		params, err := NewParametersFromLiteral(DefaultParametersLiteral)
		require.NoError(t, err)

		prng, err := sampling.NewKeyedPRNG([]byte{'0', '1', '1', '0', '1', '0', '0', '1'})
		require.NoError(t, err)

		msg := []uint64{0, 1, 1, 0, 1, 0, 0, 1}
		require.Equal(t, msg, utils.BytesToBits([]byte{0x69}))

		var success int
		for i := 0; i < 1000; i++ {

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

		require.GreaterOrEqual(t, success, 990)
	})
}
