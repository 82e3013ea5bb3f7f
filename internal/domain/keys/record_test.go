//go:build unit
// +build unit

package keys

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validKeyRecord() *KeyRecord {
	return &KeyRecord{
		ID:              uuid.New().String(),
		KeyPairID:       uuid.New().String(),
		Algorithm:       "RSA",
		Format:          FormatRSAPrivateKey,
		Type:            KeyTypePrivate,
		DateTimeCreated: time.Now(),
		Material:        []byte{0x30, 0x03, 0x02, 0x01, 0x00},
	}
}

func TestKeyRecordValidation(t *testing.T) {
	t.Run("ValidRecord", func(t *testing.T) {
		assert.NoError(t, validKeyRecord().Validate())
	})

	t.Run("InvalidID", func(t *testing.T) {
		record := validKeyRecord()
		record.ID = "not-a-uuid"
		assert.Error(t, record.Validate())
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		record := validKeyRecord()
		record.Algorithm = "ED25519"
		assert.Error(t, record.Validate())
	})

	t.Run("UnknownType", func(t *testing.T) {
		record := validKeyRecord()
		record.Type = "symmetric"
		assert.Error(t, record.Validate())
	})

	t.Run("EmptyMaterial", func(t *testing.T) {
		record := validKeyRecord()
		record.Material = nil
		assert.Error(t, record.Validate())
	})
}

func TestKeyQueryValidation(t *testing.T) {
	t.Run("ValidQuery", func(t *testing.T) {
		query := &KeyQuery{
			Algorithm: "EC",
			Type:      KeyTypePublic,
			SortBy:    "date_time_created",
			SortOrder: "desc",
			Limit:     10,
		}
		assert.NoError(t, query.Validate())
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		assert.NoError(t, (&KeyQuery{}).Validate())
	})

	t.Run("InvalidSortOrder", func(t *testing.T) {
		query := &KeyQuery{SortOrder: "descending"}
		assert.Error(t, query.Validate())
	})
}
