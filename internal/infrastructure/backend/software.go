// Package backend provides the software algorithm backend: raw fixed-buffer
// primitives built on Go's crypto packages, consumed by the streaming engine
// and the public-key contexts. The backend does no buffering and no
// container formatting.
package backend

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/des" // #nosec G502 -- DES is exposed as a legacy algorithm of the provider catalog
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"math/big"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/domain/provider"
	"crypto_provider_service/internal/infrastructure/codec"
	"crypto_provider_service/internal/pkg/logger"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

// Block cipher algorithm names served by this backend
const (
	AlgorithmAES128 = "AES-128"
	AlgorithmAES192 = "AES-192"
	AlgorithmAES256 = "AES-256"
	AlgorithmDES    = "DES"
	Algorithm3DES   = "3DES"
)

// Stream cipher algorithm names served by this backend
const (
	AlgorithmChaCha20 = "ChaCha20"
)

// Digest algorithm names served by this backend
const (
	AlgorithmSHA256     = "SHA-256"
	AlgorithmSHA512     = "SHA-512"
	AlgorithmSHA3256    = "SHA3-256"
	AlgorithmBLAKE2b256 = "BLAKE2b-256"
)

// softwareBackend struct that implements the provider.Backend interface
type softwareBackend struct {
	logger logger.Logger
}

// NewSoftwareBackend creates and returns a new instance of softwareBackend
func NewSoftwareBackend(logger logger.Logger) (provider.Backend, error) {
	return &softwareBackend{
		logger: logger,
	}, nil
}

// blockPrimitive adapts a cipher.Block to the provider contract.
type blockPrimitive struct {
	block cipher.Block
}

func (b *blockPrimitive) BlockSize() int { return b.block.BlockSize() }

func (b *blockPrimitive) EncryptBlock(dst, src []byte) { b.block.Encrypt(dst, src) }

func (b *blockPrimitive) DecryptBlock(dst, src []byte) { b.block.Decrypt(dst, src) }

// BlockCipher returns the raw block transform for a cipher algorithm.
func (s *softwareBackend) BlockCipher(algorithm string, key []byte) (provider.BlockPrimitive, error) {
	var block cipher.Block
	var err error

	switch algorithm {
	case AlgorithmAES128, AlgorithmAES192, AlgorithmAES256:
		block, err = aes.NewCipher(key)
	case AlgorithmDES:
		block, err = des.NewCipher(key) // #nosec G405
	case Algorithm3DES:
		block, err = des.NewTripleDESCipher(key) // #nosec G405
	default:
		return nil, fmt.Errorf("%w: no block primitive for %q", provider.ErrUnsupportedAlgorithm, algorithm)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrBadKeySize, err)
	}
	return &blockPrimitive{block: block}, nil
}

// StreamCipher returns the keystream transform for a stream algorithm.
func (s *softwareBackend) StreamCipher(algorithm string, key, iv []byte) (provider.StreamPrimitive, error) {
	switch algorithm {
	case AlgorithmChaCha20:
		stream, err := chacha20.NewUnauthenticatedCipher(key, iv)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", provider.ErrBadKeySize, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("%w: no stream primitive for %q", provider.ErrUnsupportedAlgorithm, algorithm)
	}
}

// Digest returns a fresh hash for a digest algorithm.
func (s *softwareBackend) Digest(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA512:
		return sha512.New(), nil
	case AlgorithmSHA3256:
		return sha3.New256(), nil
	case AlgorithmBLAKE2b256:
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", provider.ErrBackendFailure, err)
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: no digest for %q", provider.ErrUnsupportedAlgorithm, algorithm)
	}
}

// SignDigest signs a precomputed digest with the key's private component.
func (s *softwareBackend) SignDigest(key *keys.Key, digest []byte) ([]byte, error) {
	if !key.IsPrivate() {
		return nil, fmt.Errorf("%w: signing", provider.ErrRequiresPrivateKey)
	}

	switch key.Family {
	case keys.FamilyRSA:
		priv, err := s.rsaPrivateKey(key)
		if err != nil {
			return nil, err
		}
		// Hash 0 signs the caller's digest directly, without a DigestInfo prefix.
		signature, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.Hash(0), digest)
		if err != nil {
			return nil, fmt.Errorf("%w: RSA signing failed: %v", provider.ErrBackendFailure, err)
		}
		s.logger.Info("RSA signing succeeded")
		return signature, nil

	case keys.FamilyDSA:
		priv := s.dsaPrivateKey(key)
		r, rs, err := dsa.Sign(rand.Reader, priv, digest)
		if err != nil {
			return nil, fmt.Errorf("%w: DSA signing failed: %v", provider.ErrBackendFailure, err)
		}
		s.logger.Info("DSA signing succeeded")
		return codec.MarshalDSASignature(r, rs)

	case keys.FamilyEC:
		priv, err := s.ecdsaPrivateKey(key)
		if err != nil {
			return nil, err
		}
		r, rs, err := ecdsa.Sign(rand.Reader, priv, digest)
		if err != nil {
			return nil, fmt.Errorf("%w: ECDSA signing failed: %v", provider.ErrBackendFailure, err)
		}
		s.logger.Info("ECDSA signing succeeded")
		return codec.MarshalDSASignature(r, rs)

	default:
		return nil, fmt.Errorf("%w: key family %s", provider.ErrUnsupportedAlgorithm, key.Family)
	}
}

// VerifyDigest verifies a signature over a precomputed digest. A signature
// that does not match yields (false, nil); malformed inputs yield an error.
func (s *softwareBackend) VerifyDigest(key *keys.Key, digest, signature []byte) (bool, error) {
	switch key.Family {
	case keys.FamilyRSA:
		pub := &rsa.PublicKey{N: key.RSA.N, E: int(key.RSA.E.Int64())}
		if err := rsa.VerifyPKCS1v15(pub, crypto.Hash(0), digest, signature); err != nil {
			return false, nil
		}
		return true, nil

	case keys.FamilyDSA:
		r, rs, err := codec.UnmarshalDSASignature(signature)
		if err != nil {
			return false, err
		}
		pub := &dsa.PublicKey{
			Parameters: dsa.Parameters{P: key.DSA.Params.P, Q: key.DSA.Params.Q, G: key.DSA.Params.G},
			Y:          key.DSA.Y,
		}
		return dsa.Verify(pub, digest, r, rs), nil

	case keys.FamilyEC:
		r, rs, err := codec.UnmarshalDSASignature(signature)
		if err != nil {
			return false, err
		}
		curve, err := keys.CurveByName(key.EC.Curve)
		if err != nil {
			return false, fmt.Errorf("%w: %v", provider.ErrUnsupportedAlgorithm, err)
		}
		pub := &ecdsa.PublicKey{Curve: curve, X: key.EC.X, Y: key.EC.Y}
		return ecdsa.Verify(pub, digest, r, rs), nil

	default:
		return false, fmt.Errorf("%w: key family %s", provider.ErrUnsupportedAlgorithm, key.Family)
	}
}

// EncryptWithPublicKey encrypts plaintext with the key's public component.
// Input longer than one RSA block is split into chunks.
func (s *softwareBackend) EncryptWithPublicKey(key *keys.Key, plaintext []byte) ([]byte, error) {
	if key.Family != keys.FamilyRSA {
		return nil, fmt.Errorf("%w: %s does not encrypt", provider.ErrUnsupportedOperation, key.Family)
	}

	pub := &rsa.PublicKey{N: key.RSA.N, E: int(key.RSA.E.Int64())}

	// PKCS#1 v1.5 padding consumes 11 bytes of each block.
	maxSize := pub.Size() - 11
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: RSA modulus too small to encrypt", provider.ErrBadKeySize)
	}

	var encryptedData []byte
	for len(plaintext) > 0 {
		chunkSize := maxSize
		if len(plaintext) < chunkSize {
			chunkSize = len(plaintext)
		}

		encryptedChunk, err := rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext[:chunkSize])
		if err != nil {
			return nil, fmt.Errorf("%w: RSA encryption failed: %v", provider.ErrBackendFailure, err)
		}

		encryptedData = append(encryptedData, encryptedChunk...)
		plaintext = plaintext[chunkSize:]
	}

	s.logger.Info("RSA encryption succeeded")
	return encryptedData, nil
}

// DecryptWithPrivateKey decrypts ciphertext with the key's private component.
func (s *softwareBackend) DecryptWithPrivateKey(key *keys.Key, ciphertext []byte) ([]byte, error) {
	if key.Family != keys.FamilyRSA {
		return nil, fmt.Errorf("%w: %s does not decrypt", provider.ErrUnsupportedOperation, key.Family)
	}
	if !key.IsPrivate() {
		return nil, fmt.Errorf("%w: decryption", provider.ErrRequiresPrivateKey)
	}

	priv, err := s.rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	maxSize := priv.Size()

	var decryptedData []byte
	for len(ciphertext) > 0 {
		chunkSize := maxSize
		if len(ciphertext) < chunkSize {
			chunkSize = len(ciphertext)
		}

		decryptedChunk, err := rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext[:chunkSize])
		if err != nil {
			return nil, fmt.Errorf("%w: RSA decryption failed: %v", provider.ErrBackendFailure, err)
		}

		decryptedData = append(decryptedData, decryptedChunk...)
		ciphertext = ciphertext[chunkSize:]
	}

	s.logger.Info("RSA decryption succeeded")
	return decryptedData, nil
}

// GenerateKey generates a fresh key pair for an algorithm family.
func (s *softwareBackend) GenerateKey(family keys.Family, bits int) (*keys.Key, error) {
	switch family {
	case keys.FamilyRSA:
		priv, err := rsa.GenerateKey(rand.Reader, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: RSA key generation failed: %v", provider.ErrBackendFailure, err)
		}
		s.logger.Info("Generated RSA key pair")
		return keys.NewRSAPrivateKey(
			priv.N, keyExponent(priv.E), priv.D,
			priv.Primes[0], priv.Primes[1],
			priv.Precomputed.Dp, priv.Precomputed.Dq, priv.Precomputed.Qinv,
		), nil

	case keys.FamilyDSA:
		var size dsa.ParameterSizes
		switch bits {
		case 1024:
			size = dsa.L1024N160
		case 2048:
			size = dsa.L2048N256
		case 3072:
			size = dsa.L3072N256
		default:
			return nil, fmt.Errorf("%w: key size %d not supported for DSA", provider.ErrBadKeySize, bits)
		}

		priv := new(dsa.PrivateKey)
		if err := dsa.GenerateParameters(&priv.Parameters, rand.Reader, size); err != nil {
			return nil, fmt.Errorf("%w: DSA parameter generation failed: %v", provider.ErrBackendFailure, err)
		}
		if err := dsa.GenerateKey(priv, rand.Reader); err != nil {
			return nil, fmt.Errorf("%w: DSA key generation failed: %v", provider.ErrBackendFailure, err)
		}
		s.logger.Info("Generated DSA key pair")
		params := &keys.DSAParameters{P: priv.P, Q: priv.Q, G: priv.G}
		return keys.NewDSAPrivateKey(params, priv.Y, priv.X), nil

	case keys.FamilyEC:
		var curve elliptic.Curve
		var curveName string
		switch bits {
		case 224:
			curve, curveName = elliptic.P224(), keys.CurveP224
		case 256:
			curve, curveName = elliptic.P256(), keys.CurveP256
		case 384:
			curve, curveName = elliptic.P384(), keys.CurveP384
		case 521:
			curve, curveName = elliptic.P521(), keys.CurveP521
		default:
			return nil, fmt.Errorf("%w: key size %d not supported for EC", provider.ErrBadKeySize, bits)
		}

		priv, err := ecdsa.GenerateKey(curve, rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("%w: EC key generation failed: %v", provider.ErrBackendFailure, err)
		}
		s.logger.Info("Generated EC key pair")
		return keys.NewECPrivateKey(curveName, priv.X, priv.Y, priv.D), nil

	default:
		return nil, fmt.Errorf("%w: key family %s", provider.ErrUnsupportedAlgorithm, family)
	}
}

// rsaPrivateKey rebuilds the backend key structure from components and
// validates it; a key whose components do not satisfy the RSA relations is
// rejected here, not by the codec.
func (s *softwareBackend) rsaPrivateKey(key *keys.Key) (*rsa.PrivateKey, error) {
	r := key.RSA
	priv := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: r.N, E: int(r.E.Int64())},
		D:         r.D,
		Primes:    []*big.Int{r.P, r.Q},
	}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid RSA key: %v", provider.ErrBackendFailure, err)
	}
	priv.Precompute()
	return priv, nil
}

func (s *softwareBackend) dsaPrivateKey(key *keys.Key) *dsa.PrivateKey {
	d := key.DSA
	return &dsa.PrivateKey{
		PublicKey: dsa.PublicKey{
			Parameters: dsa.Parameters{P: d.Params.P, Q: d.Params.Q, G: d.Params.G},
			Y:          d.Y,
		},
		X: d.X,
	}
}

func (s *softwareBackend) ecdsaPrivateKey(key *keys.Key) (*ecdsa.PrivateKey, error) {
	curve, err := keys.CurveByName(key.EC.Curve)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrUnsupportedAlgorithm, err)
	}
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: key.EC.X, Y: key.EC.Y},
		D:         key.EC.D,
	}, nil
}

func keyExponent(e int) *big.Int {
	return big.NewInt(int64(e))
}
