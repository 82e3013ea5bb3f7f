package codec

import (
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/pkg/logger"
)

// derCodec struct that implements the keys.Codec interface
type derCodec struct {
	logger logger.Logger
}

// New creates and returns a new instance of derCodec
func New(logger logger.Logger) (keys.Codec, error) {
	return &derCodec{
		logger: logger,
	}, nil
}

// ReadKey decodes a key from its DER container bytes in the named format.
func (c *derCodec) ReadKey(der []byte, format string) (*keys.Key, error) {
	switch format {
	case keys.FormatSubjectPublicKeyInfo:
		return c.readSubjectPublicKeyInfo(der)
	case keys.FormatPrivateKeyInfo:
		return c.readPrivateKeyInfo(der)
	case keys.FormatRSAPublicKey:
		return c.readRSAPublicKey(der)
	case keys.FormatRSAPrivateKey:
		return c.readRSAPrivateKey(der)
	case keys.FormatDSAPrivateKey:
		return c.readDSAPrivateKey(der)
	case keys.FormatECPrivateKey:
		return c.readECPrivateKey(der)
	default:
		return nil, fmt.Errorf("%w: unknown container format %q", provider.ErrUnsupportedAlgorithm, format)
	}
}

// WriteKey encodes a key into the named container format. Public-only
// formats silently drop private components.
func (c *derCodec) WriteKey(key *keys.Key, format string) ([]byte, error) {
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrBadFormat, err)
	}

	switch format {
	case keys.FormatSubjectPublicKeyInfo:
		return c.writeSubjectPublicKeyInfo(key)
	case keys.FormatPrivateKeyInfo:
		return c.writePrivateKeyInfo(key)
	case keys.FormatRSAPublicKey:
		return c.writeRSAPublicKey(key)
	case keys.FormatRSAPrivateKey:
		return c.writeRSAPrivateKey(key)
	case keys.FormatDSAPrivateKey:
		return c.writeDSAPrivateKey(key)
	case keys.FormatECPrivateKey:
		return c.writeECPrivateKey(key)
	default:
		return nil, fmt.Errorf("%w: unknown container format %q", provider.ErrUnsupportedAlgorithm, format)
	}
}

func requireFamily(key *keys.Key, family keys.Family, format string) error {
	if key.Family != family {
		return fmt.Errorf("%w: format %q requires a %s key, got %s",
			provider.ErrUnsupportedAlgorithm, format, family, key.Family)
	}
	return nil
}

func requirePrivate(key *keys.Key, format string) error {
	if !key.IsPrivate() {
		return fmt.Errorf("%w: format %q encodes private keys", provider.ErrRequiresPrivateKey, format)
	}
	return nil
}
