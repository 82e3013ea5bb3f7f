package codec

import (
	"encoding/asn1"
	"fmt"
	"math/big"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// ReadParams decodes algorithm parameters from DER container bytes.
func (c *derCodec) ReadParams(der []byte, format string) (*keys.AlgorithmParameters, error) {
	switch format {
	case keys.FormatDSAParameters:
		var params dsaAlgorithmParameters
		if err := unmarshalExact(der, &params); err != nil {
			return nil, err
		}
		return &keys.AlgorithmParameters{
			Family: keys.FamilyDSA,
			DSA:    &keys.DSAParameters{P: params.P, Q: params.Q, G: params.G},
		}, nil

	case keys.FormatECParameters:
		var oid asn1.ObjectIdentifier
		if err := unmarshalExact(der, &oid); err != nil {
			return nil, err
		}
		name, ok := curveNameForOID(oid)
		if !ok {
			return nil, fmt.Errorf("%w: unrecognized curve OID %v", provider.ErrUnsupportedAlgorithm, oid)
		}
		return &keys.AlgorithmParameters{
			Family: keys.FamilyEC,
			EC:     &keys.ECParameters{Curve: name},
		}, nil

	case keys.FormatDHParameters:
		var params dhAlgorithmParameters
		if err := unmarshalExact(der, &params); err != nil {
			return nil, err
		}
		return &keys.AlgorithmParameters{
			Family: keys.FamilyDH,
			DH:     &keys.DHParameters{P: params.P, G: params.G, Q: params.Q},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown parameter format %q", provider.ErrUnsupportedAlgorithm, format)
	}
}

// WriteParams encodes algorithm parameters into the named format.
func (c *derCodec) WriteParams(params *keys.AlgorithmParameters, format string) ([]byte, error) {
	switch format {
	case keys.FormatDSAParameters:
		if params.DSA == nil {
			return nil, fmt.Errorf("%w: DSA parameters not present", provider.ErrBadFormat)
		}
		der, err := asn1.Marshal(dsaAlgorithmParameters{P: params.DSA.P, Q: params.DSA.Q, G: params.DSA.G})
		if err != nil {
			return nil, fmt.Errorf("failed to encode DSA parameters: %w", err)
		}
		return der, nil

	case keys.FormatECParameters:
		if params.EC == nil {
			return nil, fmt.Errorf("%w: EC parameters not present", provider.ErrBadFormat)
		}
		oid, err := oidForCurveName(params.EC.Curve)
		if err != nil {
			return nil, err
		}
		der, err := asn1.Marshal(oid)
		if err != nil {
			return nil, fmt.Errorf("failed to encode curve OID: %w", err)
		}
		return der, nil

	case keys.FormatDHParameters:
		if params.DH == nil {
			return nil, fmt.Errorf("%w: DH parameters not present", provider.ErrBadFormat)
		}
		// The optional subgroup order is omitted from the SEQUENCE when absent.
		var der []byte
		var err error
		if params.DH.Q != nil {
			der, err = asn1.Marshal(dhAlgorithmParameters{P: params.DH.P, G: params.DH.G, Q: params.DH.Q})
		} else {
			der, err = asn1.Marshal(struct {
				P *big.Int
				G *big.Int
			}{P: params.DH.P, G: params.DH.G})
		}
		if err != nil {
			return nil, fmt.Errorf("failed to encode DH parameters: %w", err)
		}
		return der, nil

	default:
		return nil, fmt.Errorf("%w: unknown parameter format %q", provider.ErrUnsupportedAlgorithm, format)
	}
}
