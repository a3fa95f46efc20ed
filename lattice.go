/*
Package lattice is a lattice-based public-key encryption engine. It provides
plain LWE, ring LWE and module LWE encryption behind the scheme-agnostic
[schemes.Scheme] interface, and a multiparty ring LWE key exchange in the
multiparty package.
*/
package lattice

import (
	"encoding/json"
	"fmt"

	"github.com/SadeemSajid/crypto-lattice/core/lwe"
	"github.com/SadeemSajid/crypto-lattice/core/mlwe"
	"github.com/SadeemSajid/crypto-lattice/core/rlwe"
	"github.com/SadeemSajid/crypto-lattice/schemes"
)

// Setup returns the [schemes.Scheme] of the given variant instantiated
// with its default parameters.
func Setup(v schemes.Variant) (schemes.Scheme, error) {
	switch v {
	case schemes.PlainLWE:
		return NewScheme(lwe.DefaultParametersLiteral)
	case schemes.RingLWE:
		return NewScheme(rlwe.DefaultParametersLiteral)
	case schemes.ModuleLWE:
		return NewScheme(mlwe.DefaultParametersLiteral)
	default:
		return nil, fmt.Errorf("cannot Setup: invalid variant %s", v)
	}
}

// NewScheme returns the [schemes.Scheme] matching the type of params,
// which must be the Parameters or the ParametersLiteral of one of the
// lwe, rlwe or mlwe packages.
func NewScheme(params interface{}) (s schemes.Scheme, err error) {
	switch p := params.(type) {
	case lwe.Parameters:
		return lwe.NewScheme(p), nil
	case *lwe.Parameters:
		return lwe.NewScheme(*p), nil
	case rlwe.Parameters:
		return rlwe.NewScheme(p), nil
	case *rlwe.Parameters:
		return rlwe.NewScheme(*p), nil
	case mlwe.Parameters:
		return mlwe.NewScheme(p), nil
	case *mlwe.Parameters:
		return mlwe.NewScheme(*p), nil
	case lwe.ParametersLiteral:
		var pp lwe.Parameters
		if pp, err = lwe.NewParametersFromLiteral(p); err != nil {
			return nil, fmt.Errorf("cannot NewScheme: %w", err)
		}
		return lwe.NewScheme(pp), nil
	case rlwe.ParametersLiteral:
		var pp rlwe.Parameters
		if pp, err = rlwe.NewParametersFromLiteral(p); err != nil {
			return nil, fmt.Errorf("cannot NewScheme: %w", err)
		}
		return rlwe.NewScheme(pp), nil
	case mlwe.ParametersLiteral:
		var pp mlwe.Parameters
		if pp, err = mlwe.NewParametersFromLiteral(p); err != nil {
			return nil, fmt.Errorf("cannot NewScheme: %w", err)
		}
		return mlwe.NewScheme(pp), nil
	default:
		return nil, fmt.Errorf("cannot NewScheme: invalid parameters type %T", params)
	}
}

// NewSchemeFromJSON returns the [schemes.Scheme] of the given variant
// instantiated with the JSON encoded parameters literal data.
func NewSchemeFromJSON(v schemes.Variant, data []byte) (schemes.Scheme, error) {

	var params interface{}

	switch v {
	case schemes.PlainLWE:
		params = &lwe.ParametersLiteral{}
	case schemes.RingLWE:
		params = &rlwe.ParametersLiteral{}
	case schemes.ModuleLWE:
		params = &mlwe.ParametersLiteral{}
	default:
		return nil, fmt.Errorf("cannot NewSchemeFromJSON: invalid variant %s", v)
	}

	if err := json.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("cannot NewSchemeFromJSON: %w", err)
	}

	switch p := params.(type) {
	case *lwe.ParametersLiteral:
		return NewScheme(*p)
	case *rlwe.ParametersLiteral:
		return NewScheme(*p)
	default:
		return NewScheme(*p.(*mlwe.ParametersLiteral))
	}
}
