//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/infrastructure/persistence/models"
	"crypto_provider_service/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRecordSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestKeyRecordWithOptions(t, TestAlgorithmEC, keys.FormatPrivateKeyInfo, TestKeyTypePrivate)

	err := ctx.KeyRecordRepo.Create(context.Background(), record)
	require.NoError(t, err)

	var createdModel models.KeyRecordModel
	err = ctx.DB.First(&createdModel, "id = ?", record.ID).Error
	require.NoError(t, err)
	assert.Equal(t, record.ID, createdModel.ID)
	assert.Equal(t, record.Type, createdModel.Type)
	assert.Equal(t, record.Material, createdModel.Material)
}

func TestKeyRecordSqliteRepository_CreateInvalid(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestKeyRecord(t)
	record.Algorithm = "Ed448"

	err := ctx.KeyRecordRepo.Create(context.Background(), record)
	assert.Error(t, err)
}

func TestKeyRecordSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestKeyRecordWithOptions(t, TestAlgorithmRSA, keys.FormatRSAPrivateKey, TestKeyTypePrivate)

	require.NoError(t, ctx.KeyRecordRepo.Create(context.Background(), record))

	fetched, err := ctx.KeyRecordRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetched)
	assert.Equal(t, record.ID, fetched.ID)
	assert.Equal(t, record.Material, fetched.Material)
}

func TestKeyRecordSqliteRepository_GetByIDNotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.KeyRecordRepo.GetByID(context.Background(), "8b9c3f2e-0000-0000-0000-000000000000")
	assert.ErrorContains(t, err, "not found")
}

func TestKeyRecordSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record1 := CreateTestKeyRecordWithOptions(t, TestAlgorithmRSA, keys.FormatRSAPrivateKey, TestKeyTypePrivate)
	record2 := CreateTestKeyRecordWithOptions(t, TestAlgorithmEC, keys.FormatSubjectPublicKeyInfo, TestKeyTypePublic)

	require.NoError(t, ctx.KeyRecordRepo.Create(context.Background(), record1))
	require.NoError(t, ctx.KeyRecordRepo.Create(context.Background(), record2))

	t.Run("unfiltered returns all records", func(t *testing.T) {
		records, err := ctx.KeyRecordRepo.List(context.Background(), &keys.KeyQuery{})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("filters by algorithm", func(t *testing.T) {
		records, err := ctx.KeyRecordRepo.List(context.Background(), &keys.KeyQuery{Algorithm: TestAlgorithmEC})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record2.ID, records[0].ID)
	})

	t.Run("filters by type with limit", func(t *testing.T) {
		records, err := ctx.KeyRecordRepo.List(context.Background(), &keys.KeyQuery{Type: TestKeyTypePrivate, Limit: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record1.ID, records[0].ID)
	})

	t.Run("rejects an invalid sort column", func(t *testing.T) {
		_, err := ctx.KeyRecordRepo.List(context.Background(), &keys.KeyQuery{SortBy: "material"})
		assert.Error(t, err)
	})
}

func TestKeyRecordSqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	record := CreateTestKeyRecord(t)
	require.NoError(t, ctx.KeyRecordRepo.Create(context.Background(), record))

	require.NoError(t, ctx.KeyRecordRepo.DeleteByID(context.Background(), record.ID))

	_, err := ctx.KeyRecordRepo.GetByID(context.Background(), record.ID)
	assert.Error(t, err)
}
