package codec

import (
	"encoding/asn1"
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
)

// rsaVersionTwoPrime is the only RSAPrivateKey version this codec accepts;
// multi-prime keys (version 1) are rejected rather than truncated.
const rsaVersionTwoPrime = 0

func (c *derCodec) readRSAPublicKey(der []byte) (*keys.Key, error) {
	var pub pkcs1PublicKey
	if err := unmarshalExact(der, &pub); err != nil {
		return nil, err
	}
	return keys.NewRSAPublicKey(pub.N, pub.E), nil
}

func (c *derCodec) writeRSAPublicKey(key *keys.Key) ([]byte, error) {
	if err := requireFamily(key, keys.FamilyRSA, keys.FormatRSAPublicKey); err != nil {
		return nil, err
	}
	der, err := asn1.Marshal(pkcs1PublicKey{N: key.RSA.N, E: key.RSA.E})
	if err != nil {
		return nil, fmt.Errorf("failed to encode RSA public key: %w", err)
	}
	return der, nil
}

func (c *derCodec) readRSAPrivateKey(der []byte) (*keys.Key, error) {
	var priv pkcs1PrivateKey
	if err := unmarshalExact(der, &priv); err != nil {
		return nil, err
	}
	if priv.Version != rsaVersionTwoPrime {
		return nil, fmt.Errorf("%w: RSAPrivateKey version %d (multi-prime)",
			provider.ErrUnsupportedKeyVariant, priv.Version)
	}
	return keys.NewRSAPrivateKey(priv.N, priv.E, priv.D, priv.P, priv.Q, priv.Dp, priv.Dq, priv.QInv), nil
}

func (c *derCodec) writeRSAPrivateKey(key *keys.Key) ([]byte, error) {
	if err := requireFamily(key, keys.FamilyRSA, keys.FormatRSAPrivateKey); err != nil {
		return nil, err
	}
	if err := requirePrivate(key, keys.FormatRSAPrivateKey); err != nil {
		return nil, err
	}

	r := key.RSA
	der, err := asn1.Marshal(pkcs1PrivateKey{
		Version: rsaVersionTwoPrime,
		N:       r.N,
		E:       r.E,
		D:       r.D,
		P:       r.P,
		Q:       r.Q,
		Dp:      r.Dp,
		Dq:      r.Dq,
		QInv:    r.QInv,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode RSA private key: %w", err)
	}
	return der, nil
}
