package keys

import (
	"errors"
	"math/big"
)

// Family identifies a public-key algorithm family.
type Family string

// Supported algorithm families. FamilyDH appears only in algorithm
// parameters, never as a key family.
const (
	FamilyRSA Family = "RSA"
	FamilyDSA Family = "DSA"
	FamilyEC  Family = "EC"
	FamilyDH  Family = "DH"
)

// RSAComponents holds the public components of an RSA key and, when present,
// the two-prime private components.
type RSAComponents struct {
	N *big.Int
	E *big.Int

	// Private components, nil for a public-only key.
	D    *big.Int
	P    *big.Int
	Q    *big.Int
	Dp   *big.Int
	Dq   *big.Int
	QInv *big.Int
}

// DSAComponents holds DSA domain parameters, the public value Y and,
// when present, the private value X.
type DSAComponents struct {
	Params *DSAParameters
	Y      *big.Int

	// Private component, nil for a public-only key.
	X *big.Int
}

// ECComponents holds a named curve, the public point and, when present,
// the private scalar.
type ECComponents struct {
	Curve string
	X     *big.Int
	Y     *big.Int

	// Private scalar, nil for a public-only key.
	D *big.Int
}

// Key is an immutable value object representing a public or private key of
// one algorithm family. Exactly one component pointer is non-nil, matching
// Family. The codec does not verify the algebraic relations between private
// components; a malformed key surfaces when the backend later rejects it.
type Key struct {
	Family Family
	RSA    *RSAComponents
	DSA    *DSAComponents
	EC     *ECComponents
}

// NewRSAPublicKey constructs a public-only RSA key.
func NewRSAPublicKey(n, e *big.Int) *Key {
	return &Key{Family: FamilyRSA, RSA: &RSAComponents{N: n, E: e}}
}

// NewRSAPrivateKey constructs a two-prime RSA private key.
func NewRSAPrivateKey(n, e, d, p, q, dp, dq, qInv *big.Int) *Key {
	return &Key{Family: FamilyRSA, RSA: &RSAComponents{
		N: n, E: e, D: d, P: p, Q: q, Dp: dp, Dq: dq, QInv: qInv,
	}}
}

// NewDSAPublicKey constructs a public-only DSA key.
func NewDSAPublicKey(params *DSAParameters, y *big.Int) *Key {
	return &Key{Family: FamilyDSA, DSA: &DSAComponents{Params: params, Y: y}}
}

// NewDSAPrivateKey constructs a DSA private key.
func NewDSAPrivateKey(params *DSAParameters, y, x *big.Int) *Key {
	return &Key{Family: FamilyDSA, DSA: &DSAComponents{Params: params, Y: y, X: x}}
}

// NewECPublicKey constructs a public-only EC key on a named curve.
func NewECPublicKey(curve string, x, y *big.Int) *Key {
	return &Key{Family: FamilyEC, EC: &ECComponents{Curve: curve, X: x, Y: y}}
}

// NewECPrivateKey constructs an EC private key on a named curve.
func NewECPrivateKey(curve string, x, y, d *big.Int) *Key {
	return &Key{Family: FamilyEC, EC: &ECComponents{Curve: curve, X: x, Y: y, D: d}}
}

// IsPrivate reports whether the key carries a private component.
func (k *Key) IsPrivate() bool {
	switch k.Family {
	case FamilyRSA:
		return k.RSA != nil && k.RSA.D != nil
	case FamilyDSA:
		return k.DSA != nil && k.DSA.X != nil
	case FamilyEC:
		return k.EC != nil && k.EC.D != nil
	default:
		return false
	}
}

// PublicView returns the public-only view of the key, dropping private
// components. The receiver is never mutated; calling PublicView on a public
// key returns an equal key.
func (k *Key) PublicView() *Key {
	switch k.Family {
	case FamilyRSA:
		return NewRSAPublicKey(k.RSA.N, k.RSA.E)
	case FamilyDSA:
		return NewDSAPublicKey(k.DSA.Params, k.DSA.Y)
	case FamilyEC:
		return NewECPublicKey(k.EC.Curve, k.EC.X, k.EC.Y)
	default:
		return &Key{Family: k.Family}
	}
}

// Bits returns the key size in bits: the modulus length for RSA, the prime
// length for DSA and the curve order length for EC.
func (k *Key) Bits() int {
	switch k.Family {
	case FamilyRSA:
		return k.RSA.N.BitLen()
	case FamilyDSA:
		return k.DSA.Params.P.BitLen()
	case FamilyEC:
		curve, err := CurveByName(k.EC.Curve)
		if err != nil {
			return 0
		}
		return curve.Params().BitSize
	default:
		return 0
	}
}

// Equal reports whether two keys have identical public components. Private
// components are not compared, so the public view of a private key equals an
// independently read public key.
func (k *Key) Equal(other *Key) bool {
	if other == nil || k.Family != other.Family {
		return false
	}
	switch k.Family {
	case FamilyRSA:
		return bigEqual(k.RSA.N, other.RSA.N) && bigEqual(k.RSA.E, other.RSA.E)
	case FamilyDSA:
		return k.DSA.Params.Equal(other.DSA.Params) && bigEqual(k.DSA.Y, other.DSA.Y)
	case FamilyEC:
		return k.EC.Curve == other.EC.Curve &&
			bigEqual(k.EC.X, other.EC.X) && bigEqual(k.EC.Y, other.EC.Y)
	default:
		return false
	}
}

// Validate checks the structural consistency of the key value.
func (k *Key) Validate() error {
	switch k.Family {
	case FamilyRSA:
		if k.RSA == nil || k.RSA.N == nil || k.RSA.E == nil {
			return errors.New("RSA key requires modulus and public exponent")
		}
	case FamilyDSA:
		if k.DSA == nil || k.DSA.Params == nil || k.DSA.Y == nil {
			return errors.New("DSA key requires domain parameters and public value")
		}
	case FamilyEC:
		if k.EC == nil || k.EC.Curve == "" || k.EC.X == nil || k.EC.Y == nil {
			return errors.New("EC key requires a named curve and public point")
		}
		if _, err := CurveByName(k.EC.Curve); err != nil {
			return err
		}
	default:
		return errors.New("unknown key family")
	}
	return nil
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
