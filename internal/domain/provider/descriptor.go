package provider

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Class identifies the capability family of an algorithm.
type Class string

// Algorithm capability classes
const (
	ClassDigest    Class = "digest"
	ClassCipher    Class = "cipher"
	ClassPublicKey Class = "public-key"
)

// CipherMode selects the chaining mode of the streaming cipher engine.
type CipherMode string

// Chaining modes. ModeStream designates primitives that process
// arbitrary-length buffers directly, without block alignment.
const (
	ModeECB    CipherMode = "ECB"
	ModeCBC    CipherMode = "CBC"
	ModeCTR    CipherMode = "CTR"
	ModeStream CipherMode = "stream"
)

// Direction selects between encryption and decryption for a cipher context.
type Direction int

// Cipher directions
const (
	DirectionEncrypt Direction = iota
	DirectionDecrypt
)

// AlgorithmDescriptor identifies an algorithm by name plus its fixed
// parameters. Descriptors are created once at backend registration, validated,
// and shared by reference thereafter; they are never mutated.
type AlgorithmDescriptor struct {
	Name  string `validate:"required"`
	Class Class  `validate:"required,oneof=digest cipher public-key"`

	// Cipher parameters (bytes). BlockSize 1 marks a stream primitive.
	KeySize   int `validate:"min=0"`
	BlockSize int `validate:"min=0"`
	IVSize    int `validate:"min=0"`

	// Digest output size in bytes.
	DigestSize int `validate:"min=0"`

	// Public-key capability flags.
	CanSign    bool
	CanEncrypt bool
	HasParams  bool
}

// Validate checks the descriptor's structural consistency at registration time.
func (d *AlgorithmDescriptor) Validate() error {
	validate := validator.New()

	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("validation failed for AlgorithmDescriptor %q: %w", d.Name, err)
	}

	switch d.Class {
	case ClassDigest:
		if d.DigestSize == 0 {
			return fmt.Errorf("digest algorithm %q must declare a digest size", d.Name)
		}
	case ClassCipher:
		if d.KeySize == 0 || d.BlockSize == 0 {
			return fmt.Errorf("cipher algorithm %q must declare key and block sizes", d.Name)
		}
	case ClassPublicKey:
		if !d.CanSign && !d.CanEncrypt {
			return fmt.Errorf("public-key algorithm %q must declare at least one capability", d.Name)
		}
	}

	return nil
}
