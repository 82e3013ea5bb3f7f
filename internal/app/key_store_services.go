// Package app wires the codec, backend, and persistence layers into
// application services.
package app

import (
	"context"
	"fmt"
	"time"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// keyStoreService implements the KeyStoreService interface for storing and
// retrieving encoded key containers
type keyStoreService struct {
	codec         keys.Codec
	keyRecordRepo keys.KeyRecordRepository
	logger        logger.Logger
}

// NewKeyStoreService creates a new keyStoreService instance
func NewKeyStoreService(codec keys.Codec, keyRecordRepo keys.KeyRecordRepository, logger logger.Logger) (keys.KeyStoreService, error) {
	return &keyStoreService{
		codec:         codec,
		keyRecordRepo: keyRecordRepo,
		logger:        logger,
	}, nil
}

// Store encodes a key in the named format and persists it. A private key is
// additionally stored as a public SubjectPublicKeyInfo record under the same
// key pair ID, so the public half stays exportable on its own.
func (s *keyStoreService) Store(ctx context.Context, key *keys.Key, format string) ([]*keys.KeyRecord, error) {
	keyPairID := uuid.New().String()

	record, err := s.encodeRecord(key, keyPairID, format)
	if err != nil {
		return nil, err
	}

	records := []*keys.KeyRecord{record}

	if key.IsPrivate() && record.Type == keys.KeyTypePrivate {
		publicRecord, err := s.encodeRecord(key.PublicView(), keyPairID, keys.FormatSubjectPublicKeyInfo)
		if err != nil {
			return nil, err
		}
		records = append(records, publicRecord)
	}

	for _, r := range records {
		if err := s.keyRecordRepo.Create(ctx, r); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	s.logger.Info("Stored key pair with id ", keyPairID)
	return records, nil
}

func (s *keyStoreService) encodeRecord(key *keys.Key, keyPairID, format string) (*keys.KeyRecord, error) {
	material, err := s.codec.WriteKey(key, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key as %s: %w", format, err)
	}

	return &keys.KeyRecord{
		ID:              uuid.New().String(),
		KeyPairID:       keyPairID,
		Algorithm:       string(key.Family),
		Format:          format,
		Type:            recordType(format),
		DateTimeCreated: time.Now(),
		Material:        material,
	}, nil
}

// recordType derives the stored material type from the container format:
// public containers hold no private components regardless of the input key.
func recordType(format string) string {
	switch format {
	case keys.FormatSubjectPublicKeyInfo, keys.FormatRSAPublicKey:
		return keys.KeyTypePublic
	default:
		return keys.KeyTypePrivate
	}
}

// Fetch retrieves and decodes a stored key by record ID.
func (s *keyStoreService) Fetch(ctx context.Context, keyID string) (*keys.Key, *keys.KeyRecord, error) {
	record, err := s.keyRecordRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w", err)
	}

	key, err := s.codec.ReadKey(record.Material, record.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode stored key %s: %w", keyID, err)
	}

	return key, record, nil
}

// List retrieves key records matching the query.
func (s *keyStoreService) List(ctx context.Context, query *keys.KeyQuery) ([]*keys.KeyRecord, error) {
	records, err := s.keyRecordRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// DeleteByID removes a stored key record.
func (s *keyStoreService) DeleteByID(ctx context.Context, keyID string) error {
	if err := s.keyRecordRepo.DeleteByID(ctx, keyID); err != nil {
		return fmt.Errorf("%w", err)
	}

	s.logger.Info("Deleted stored key with id ", keyID)
	return nil
}
