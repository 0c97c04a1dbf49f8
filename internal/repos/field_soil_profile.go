package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type FieldSoilProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.FieldSoilProfile) error
	ListByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.FieldSoilProfile, error)
	// GetLatestByFieldID returns the most recent profile by sample date,
	// or nil when the field has never been sampled.
	GetLatestByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.FieldSoilProfile, error)
}

type fieldSoilProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldSoilProfileRepo(db *gorm.DB, baseLog *logger.Logger) FieldSoilProfileRepo {
	repoLog := baseLog.With("repo", "FieldSoilProfileRepo")
	return &fieldSoilProfileRepo{db: db, log: repoLog}
}

func (spr *fieldSoilProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.FieldSoilProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	return transaction.WithContext(ctx).Create(profile).Error
}

func (spr *fieldSoilProfileRepo) ListByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) ([]*types.FieldSoilProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	var results []*types.FieldSoilProfile
	if err := transaction.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("sample_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (spr *fieldSoilProfileRepo) GetLatestByFieldID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.FieldSoilProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = spr.db
	}
	var result types.FieldSoilProfile
	err := transaction.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("sample_date DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
