package rlwe

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
	return fmt.Sprintf("%s/logN=%d/Q=%d/P=%d/Xs=%s/Xe=%s",
		opname,
		params.LogN(),
		params.Q(),
		params.P(),
		params.Xs().Type(),
		params.Xe().Type())
}

type TestContext struct {
	params Parameters
	prng   sampling.PRNG
	kgen   *KeyGenerator
	enc    *Encryptor
	dec    *Decryptor
	sk     *SecretKey
	pk     *PublicKey
}

func NewTestContext(params Parameters) (tc *TestContext, err error) {

	tc = &TestContext{params: params}

	if tc.prng, err = sampling.NewKeyedPRNG([]byte{'r', 'l', 'w', 'e'}); err != nil {
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

func (tc *TestContext) randomMessage() (msg []uint64) {
	msg = make([]uint64, tc.params.N())
	for i := range msg {
		x, err := sampling.ReadUint64N(tc.prng, tc.params.P())
		if err != nil {
			panic(err)
		}
		msg[i] = x
	}
	return
}

func TestRLWE(t *testing.T) {

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

		tc, err := NewTestContext(params)
		require.NoError(t, err)

		for _, testSet := range []func(tc *TestContext, t *testing.T){
			testParameters,
			testKeyGenerator,
			testEncryptor,
			testNoise,
			testScheme,
		} {
			testSet(tc, t)
		}
	}

	testUserDefinedParameters(t)
	testRingLWEScenario(t)
}

func testParameters(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Parameters/JSON"), func(t *testing.T) {
		data, err := json.Marshal(params)
		require.NoError(t, err)

		var paramsRec Parameters
		require.NoError(t, json.Unmarshal(data, &paramsRec))
		require.True(t, params.Equal(&paramsRec))
		require.Equal(t, params.N(), paramsRec.RingQ().N())
	})

	t.Run(testString(params, "Parameters/Margin"), func(t *testing.T) {
		require.GreaterOrEqual(t, params.DecodingMargin(), 1.0)
	})
}

func testKeyGenerator(tc *TestContext, t *testing.T) {

	params := tc.params
	ringQ := params.RingQ()

	t.Run(testString(params, "KeyGenerator"), func(t *testing.T) {

		// B - A*s is a small error
		e := ringQ.NewPoly()
		require.NoError(t, ringQ.Mul(tc.pk.A, tc.sk.Value, e))
		require.NoError(t, ringQ.Sub(tc.pk.B, e, e))

		coeffs := make([]int64, params.N())
		require.NoError(t, ringQ.PolyToCenteredInt64(e, coeffs))

		bound := uint64(20 * ring.StandardDeviation(params.Xe(), params.N(), params.Q()))
		require.LessOrEqual(t, utils.MaxAbsSlice(coeffs), bound)

		require.NoError(t, ringQ.PolyToCenteredInt64(tc.sk.Value, coeffs))
		require.LessOrEqual(t, utils.MaxAbsSlice(coeffs), uint64(1))
	})

	t.Run(testString(params, "KeyGenerator/InvalidSecretKey"), func(t *testing.T) {
		_, err := tc.kgen.GenPublicKeyNew(&SecretKey{Value: ring.NewPoly(params.N() + 1)})
		require.ErrorIs(t, err, utils.ErrDimensionMismatch)
	})

	t.Run(testString(params, "KeyGenerator/CopyNew"), func(t *testing.T) {
		require.True(t, tc.sk.Equal(tc.sk.CopyNew()))
		require.True(t, tc.pk.Equal(tc.pk.CopyNew()))
	})
}

func testEncryptor(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Encryptor/RoundTrip"), func(t *testing.T) {
		for i := 0; i < 8; i++ {
			pt := NewPlaintext(tc.randomMessage())

			ct, err := tc.enc.EncryptNew(pt)
			require.NoError(t, err)

			for _, c := range append(ct.U.Coeffs, ct.V.Coeffs...) {
				require.Less(t, c, params.Q())
			}

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

		_, err := tc.enc.EncryptNew(NewPlaintext(make([]uint64, params.N()+1)))
		require.ErrorIs(t, err, schemes.ErrPlaintextLength)

		msg := make([]uint64, params.N())
		msg[0] = params.P()
		_, err = tc.enc.EncryptNew(NewPlaintext(msg))
		require.ErrorIs(t, err, schemes.ErrPlaintextValue)

		_, err = tc.enc.EncryptNew(nil)
		require.Error(t, err)
	})

	t.Run(testString(params, "Encryptor/InvalidKeys"), func(t *testing.T) {
		_, err := NewEncryptor(params, nil, tc.prng)
		require.Error(t, err)
		_, err = NewEncryptor(params, &PublicKey{A: ring.NewPoly(1), B: ring.NewPoly(1)}, tc.prng)
		if params.N() != 1 {
			require.Error(t, err)
		}
		_, err = NewEncryptor(params, tc.pk, nil)
		require.Error(t, err)
		_, err = NewDecryptor(params, &SecretKey{Value: ring.NewPoly(params.N() + 1)})
		require.Error(t, err)
	})
}

func testNoise(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Decryptor/Noise"), func(t *testing.T) {

		var sumSq float64
		var count int

		for i := 0; i < utils.Max(1, 512/params.N()); i++ {

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

func testScheme(tc *TestContext, t *testing.T) {

	params := tc.params

	t.Run(testString(params, "Scheme"), func(t *testing.T) {

		var s schemes.Scheme = NewScheme(params)

		require.Equal(t, schemes.RingLWE, s.Variant())
		require.Equal(t, params.N(), s.PlaintextLength())
		require.Equal(t, params.P(), s.PlaintextModulus())

		pk, sk, err := s.KeyGen(tc.prng)
		require.NoError(t, err)

		msg := tc.randomMessage()

		ct, err := s.Encrypt(msg, pk, tc.prng)
		require.NoError(t, err)

		have, err := s.Decrypt(ct, sk)
		require.NoError(t, err)
		require.Equal(t, msg, have)

		noise, err := s.Noise(ct, sk, msg)
		require.NoError(t, err)
		require.Len(t, noise, params.N())

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
	return schemes.ModuleLWE
}

func testUserDefinedParameters(t *testing.T) {

	t.Run("Parameters/UnmarshalJSON", func(t *testing.T) {

		var params Parameters
		require.NoError(t, json.Unmarshal([]byte(`{"LogN":9,"Q":3329}`), &params))
		require.Equal(t, 512, params.N())
		require.Equal(t, DefaultP, params.P())
		require.True(t, params.Xe() == DefaultXe) // Omitting Xe should result in Default being used
		require.True(t, params.Xs() == DefaultXs) // Omitting Xs should result in Default being used

		def, err := NewParametersFromLiteral(DefaultParametersLiteral)
		require.NoError(t, err)
		require.True(t, params.Equal(&def))

		data := []byte(`{"LogN":5,"Q":3329,"Xs":{"Type":"Ternary","H":16},"Xe":{"Type":"RoundedGaussian","Sigma":2,"Bound":12}}`)
		require.NoError(t, json.Unmarshal(data, &params))
		require.True(t, params.Xs() == ring.Ternary{H: 16})
		require.True(t, params.Xe() == ring.RoundedGaussian{Sigma: 2, Bound: 12})

		require.Error(t, json.Unmarshal([]byte(`{"LogN":5,"Q":3329,"Xs":{"Type":"Ternary"}}`), &params))
	})

	t.Run("Parameters/Invalid", func(t *testing.T) {
		for _, lit := range []ParametersLiteral{
			{LogN: -1, Q: 3329},
			{LogN: MaxLogN + 1, Q: 3329},
			{LogN: 9, Q: 1},
			{LogN: 9, Q: 1 << 62},
			{LogN: 9, Q: 3329, P: 1665},
			{LogN: 9, Q: 3329, Xe: ring.DiscreteGaussian{Sigma: -1}},
			// noise larger than q/4
			{LogN: 9, Q: 3329, Xe: ring.DiscreteGaussian{Sigma: 40, Bound: 240}},
		} {
			_, err := NewParametersFromLiteral(lit)
			require.Error(t, err, fmt.Sprintf("%+v", lit))
		}
	})
}

func testRingLWEScenario(t *testing.T) {

	t.Run("Encryptor/N=512/HammingDistance", func(t *testing.T) {

		params, err := NewParametersFromLiteral(DefaultParametersLiteral)
		require.NoError(t, err)

		prng, err := sampling.NewKeyedPRNG([]byte{'5', '1', '2'})
		require.NoError(t, err)

		msgBytes := make([]byte, params.N()/8)
		_, err = prng.Read(msgBytes)
		require.NoError(t, err)
		msg := utils.BytesToBits(msgBytes)

		for i := 0; i < 16; i++ {

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

			d, err := utils.HammingDistance(msg, pt.Value)
			require.NoError(t, err)
			require.LessOrEqual(t, d, params.N()/100)

			have, err := utils.BitsToBytes(pt.Value)
			require.NoError(t, err)
			require.Len(t, have, len(msgBytes))
		}
	})
}
