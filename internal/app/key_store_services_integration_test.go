//go:build integration
// +build integration

package app

import (
	"context"
	"math/big"
	"testing"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/infrastructure/codec"
	"crypto_provider_service/internal/infrastructure/persistence"
	"crypto_provider_service/internal/pkg/config"
	"crypto_provider_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKeyStore(t *testing.T) keys.KeyStoreService {
	t.Helper()

	testCtx := persistence.SetupTestDB(t, config.SqliteDbType)
	log := testutil.SetupTestLogger(t)

	derCodec, err := codec.New(log)
	require.NoError(t, err)

	service, err := NewKeyStoreService(derCodec, testCtx.KeyRecordRepo, log)
	require.NoError(t, err)
	return service
}

func testRSAKey() *keys.Key {
	return keys.NewRSAPrivateKey(
		big.NewInt(3233), big.NewInt(17), big.NewInt(413),
		big.NewInt(61), big.NewInt(53),
		big.NewInt(53), big.NewInt(49), big.NewInt(38),
	)
}

func TestKeyStoreService_Store(t *testing.T) {
	service := setupKeyStore(t)

	records, err := service.Store(context.Background(), testRSAKey(), keys.FormatRSAPrivateKey)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, keys.KeyTypePrivate, records[0].Type)
	assert.Equal(t, keys.FormatRSAPrivateKey, records[0].Format)
	assert.Equal(t, keys.KeyTypePublic, records[1].Type)
	assert.Equal(t, keys.FormatSubjectPublicKeyInfo, records[1].Format)
	assert.Equal(t, records[0].KeyPairID, records[1].KeyPairID)
}

func TestKeyStoreService_StorePublicOnly(t *testing.T) {
	service := setupKeyStore(t)

	publicKey := testRSAKey().PublicView()
	records, err := service.Store(context.Background(), publicKey, keys.FormatSubjectPublicKeyInfo)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, keys.KeyTypePublic, records[0].Type)
}

func TestKeyStoreService_Fetch(t *testing.T) {
	service := setupKeyStore(t)

	original := testRSAKey()
	records, err := service.Store(context.Background(), original, keys.FormatRSAPrivateKey)
	require.NoError(t, err)

	fetched, record, err := service.Fetch(context.Background(), records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, records[0].ID, record.ID)
	assert.True(t, original.Equal(fetched))
	assert.True(t, fetched.IsPrivate())

	publicKey, _, err := service.Fetch(context.Background(), records[1].ID)
	require.NoError(t, err)
	assert.True(t, original.Equal(publicKey))
	assert.False(t, publicKey.IsPrivate())
}

func TestKeyStoreService_List(t *testing.T) {
	service := setupKeyStore(t)

	_, err := service.Store(context.Background(), testRSAKey(), keys.FormatRSAPrivateKey)
	require.NoError(t, err)

	records, err := service.List(context.Background(), &keys.KeyQuery{Type: keys.KeyTypePublic})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, keys.FormatSubjectPublicKeyInfo, records[0].Format)
}

func TestKeyStoreService_DeleteByID(t *testing.T) {
	service := setupKeyStore(t)

	records, err := service.Store(context.Background(), testRSAKey(), keys.FormatRSAPrivateKey)
	require.NoError(t, err)

	require.NoError(t, service.DeleteByID(context.Background(), records[0].ID))

	_, _, err = service.Fetch(context.Background(), records[0].ID)
	assert.Error(t, err)
}
