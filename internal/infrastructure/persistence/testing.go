//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/infrastructure/persistence/models"
	"crypto_provider_service/internal/pkg/config"
	"crypto_provider_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeyTypePublic  = "public"
	TestKeyTypePrivate = "private"

	TestAlgorithmRSA = "RSA"
	TestAlgorithmEC  = "EC"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	KeyRecordRepo keys.KeyRecordRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	err = db.AutoMigrate(&models.KeyRecordModel{})
	require.NoError(t, err, "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	keyRecordRepo, err := NewGormKeyRecordRepository(db, logger)
	require.NoError(t, err, "Failed to create key record repository")

	return &TestContext{
		DB:            db,
		KeyRecordRepo: keyRecordRepo,
	}
}

// CreateTestKeyRecord creates a test key record with default values
func CreateTestKeyRecord(t *testing.T) *keys.KeyRecord {
	t.Helper()

	return &keys.KeyRecord{
		ID:              uuid.NewString(),
		KeyPairID:       uuid.NewString(),
		Algorithm:       TestAlgorithmRSA,
		Format:          keys.FormatSubjectPublicKeyInfo,
		Type:            TestKeyTypePublic,
		DateTimeCreated: time.Now(),
		Material:        []byte{0x30, 0x03, 0x01, 0x01, 0x00},
	}
}

// CreateTestKeyRecordWithOptions creates a test key record with custom options
func CreateTestKeyRecordWithOptions(t *testing.T, algorithm, format, keyType string) *keys.KeyRecord {
	t.Helper()

	return &keys.KeyRecord{
		ID:              uuid.NewString(),
		KeyPairID:       uuid.NewString(),
		Algorithm:       algorithm,
		Format:          format,
		Type:            keyType,
		DateTimeCreated: time.Now(),
		Material:        []byte{0x30, 0x03, 0x01, 0x01, 0x00},
	}
}
