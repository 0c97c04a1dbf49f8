package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type PlantingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, planting *types.Planting) error
	GetByID(ctx context.Context, tx *gorm.DB, plantingID uuid.UUID) (*types.Planting, error)
	ListByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.Planting, error)
	// GetRecentByFieldID returns up to maxCount plantings for the field,
	// newest first, with crops (and their families) preloaded.
	GetRecentByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, maxCount int) ([]*types.Planting, error)
	ListByFieldSince(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, since time.Time) ([]*types.Planting, error)
	Update(ctx context.Context, tx *gorm.DB, planting *types.Planting) error
	Delete(ctx context.Context, tx *gorm.DB, plantingID uuid.UUID) error
}

type plantingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlantingRepo(db *gorm.DB, baseLog *logger.Logger) PlantingRepo {
	repoLog := baseLog.With("repo", "PlantingRepo")
	return &plantingRepo{db: db, log: repoLog}
}

func (pr *plantingRepo) Create(ctx context.Context, tx *gorm.DB, planting *types.Planting) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(planting).Error
}

func (pr *plantingRepo) GetByID(ctx context.Context, tx *gorm.DB, plantingID uuid.UUID) (*types.Planting, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Planting
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Preload("Season").
		Where("id = ?", plantingID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *plantingRepo) ListByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.Planting, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Planting
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Preload("Season").
		Where("field_id = ?", fieldID).
		Order("planting_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *plantingRepo) GetRecentByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, maxCount int) ([]*types.Planting, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Planting
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Preload("Crop.Family").
		Where("field_id = ?", fieldID).
		Order("planting_date DESC").
		Limit(maxCount).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *plantingRepo) ListByFieldSince(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, since time.Time) ([]*types.Planting, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Planting
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Preload("Crop.Family").
		Preload("Season").
		Where("field_id = ? AND planting_date >= ?", fieldID, since).
		Order("planting_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *plantingRepo) Update(ctx context.Context, tx *gorm.DB, planting *types.Planting) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(planting).Error
}

func (pr *plantingRepo) Delete(ctx context.Context, tx *gorm.DB, plantingID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", plantingID).
		Delete(&types.Planting{}).Error
}
