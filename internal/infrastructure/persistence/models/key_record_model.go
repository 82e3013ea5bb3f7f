package models

import (
	"time"

	"crypto_provider_service/internal/domain/keys"
)

// KeyRecordModel is the GORM database model for stored key containers
// (infrastructure concern)
type KeyRecordModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	KeyPairID       string    `gorm:"not null;index;type:uuid"`
	Algorithm       string    `gorm:"type:varchar(20)"`
	Format          string    `gorm:"type:varchar(40)"`
	Type            string    `gorm:"type:varchar(20)"`
	DateTimeCreated time.Time `gorm:"not null"`
	Material        []byte    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (KeyRecordModel) TableName() string {
	return "key_records"
}

// ToDomain converts GORM model to domain entity
func (m *KeyRecordModel) ToDomain() *keys.KeyRecord {
	return &keys.KeyRecord{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Algorithm:       m.Algorithm,
		Format:          m.Format,
		Type:            m.Type,
		DateTimeCreated: m.DateTimeCreated,
		Material:        m.Material,
	}
}

// FromDomain converts domain entity to GORM model
func (m *KeyRecordModel) FromDomain(r *keys.KeyRecord) {
	m.ID = r.ID
	m.KeyPairID = r.KeyPairID
	m.Algorithm = r.Algorithm
	m.Format = r.Format
	m.Type = r.Type
	m.DateTimeCreated = r.DateTimeCreated
	m.Material = r.Material
}
