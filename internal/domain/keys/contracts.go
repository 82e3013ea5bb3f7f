package keys

import (
	"context"
)

// Codec maps Key and AlgorithmParameters values to and from named DER
// container formats.
type Codec interface {
	// ReadKey decodes a key from its DER container bytes.
	ReadKey(der []byte, format string) (*Key, error)

	// WriteKey encodes a key into the named container format. Encoding a
	// private key as a public-only format drops the private components.
	WriteKey(key *Key, format string) ([]byte, error)

	// ReadParams decodes algorithm parameters from DER container bytes.
	ReadParams(der []byte, format string) (*AlgorithmParameters, error)

	// WriteParams encodes algorithm parameters into the named format.
	WriteParams(params *AlgorithmParameters, format string) ([]byte, error)
}

// KeyRecordRepository defines the interface for KeyRecord-related operations
type KeyRecordRepository interface {
	Create(ctx context.Context, record *KeyRecord) error
	List(ctx context.Context, query *KeyQuery) ([]*KeyRecord, error)
	GetByID(ctx context.Context, keyID string) (*KeyRecord, error)
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyStoreService stores and retrieves keys as encoded containers.
type KeyStoreService interface {
	// Store encodes a key in the named format and persists it. Storing a
	// private key additionally persists its public view as a
	// SubjectPublicKeyInfo record under the same key pair ID.
	Store(ctx context.Context, key *Key, format string) ([]*KeyRecord, error)

	// Fetch retrieves and decodes a stored key by record ID.
	Fetch(ctx context.Context, keyID string) (*Key, *KeyRecord, error)

	// List retrieves key records matching the query.
	List(ctx context.Context, query *KeyQuery) ([]*KeyRecord, error)

	// DeleteByID removes a stored key record.
	DeleteByID(ctx context.Context, keyID string) error
}
