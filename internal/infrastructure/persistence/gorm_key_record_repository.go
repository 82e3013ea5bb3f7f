package persistence

import (
	"context"
	"errors"
	"fmt"

	"crypto_provider_service/internal/domain/keys"
	"crypto_provider_service/internal/infrastructure/persistence/models"
	"crypto_provider_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormKeyRecordRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormKeyRecordRepository creates a new GORM-based KeyRecordRepository implementation
func NewGormKeyRecordRepository(db *gorm.DB, logger logger.Logger) (keys.KeyRecordRepository, error) {
	return &gormKeyRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormKeyRecordRepository) Create(ctx context.Context, record *keys.KeyRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.KeyRecordModel{}
	model.FromDomain(record)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create key record: %w", err)
	}

	r.logger.Info("Created key record with id ", record.ID)
	return nil
}

func (r *gormKeyRecordRepository) List(ctx context.Context, query *keys.KeyQuery) ([]*keys.KeyRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.KeyRecordModel
	dbQuery := r.db.WithContext(ctx).Model(&models.KeyRecordModel{})

	if query.Algorithm != "" {
		dbQuery = dbQuery.Where("algorithm = ?", query.Algorithm)
	}
	if query.Type != "" {
		dbQuery = dbQuery.Where("type = ?", query.Type)
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch key records: %w", err)
	}

	domainList := make([]*keys.KeyRecord, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormKeyRecordRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyRecord, error) {
	var model models.KeyRecordModel
	if err := r.db.WithContext(ctx).Where("id = ?", keyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("key record with ID %s not found", keyID)
		}
		return nil, fmt.Errorf("failed to fetch key record: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormKeyRecordRepository) DeleteByID(ctx context.Context, keyID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", keyID).Delete(&models.KeyRecordModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete key record: %w", err)
	}

	r.logger.Info("Deleted key record with id ", keyID)
	return nil
}
