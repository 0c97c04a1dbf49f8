package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type CropRotationRuleRepo interface {
	// GetByPair returns the rule for (previous, next), or nil when no rule
	// is known for that ordered pair.
	GetByPair(ctx context.Context, tx *gorm.DB, previousCropID, nextCropID uuid.UUID) (*types.CropRotationRule, error)
	ListByPreviousCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CropRotationRule, error)
	ListByNextCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CropRotationRule, error)
}

type cropRotationRuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCropRotationRuleRepo(db *gorm.DB, baseLog *logger.Logger) CropRotationRuleRepo {
	repoLog := baseLog.With("repo", "CropRotationRuleRepo")
	return &cropRotationRuleRepo{db: db, log: repoLog}
}

func (rr *cropRotationRuleRepo) GetByPair(ctx context.Context, tx *gorm.DB, previousCropID, nextCropID uuid.UUID) (*types.CropRotationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.CropRotationRule
	err := transaction.WithContext(ctx).
		Where("previous_crop_id = ? AND next_crop_id = ?", previousCropID, nextCropID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (rr *cropRotationRuleRepo) ListByPreviousCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CropRotationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.CropRotationRule
	if err := transaction.WithContext(ctx).
		Preload("NextCrop").
		Where("previous_crop_id = ?", cropID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *cropRotationRuleRepo) ListByNextCropID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) ([]*types.CropRotationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.CropRotationRule
	if err := transaction.WithContext(ctx).
		Preload("PreviousCrop").
		Where("next_crop_id = ?", cropID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
