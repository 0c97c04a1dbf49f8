package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type RotationRecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recs []*types.RotationRecommendation) error
	GetByID(ctx context.Context, tx *gorm.DB, recID uuid.UUID) (*types.RotationRecommendation, error)
	ListByFieldYear(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, targetYear int) ([]*types.RotationRecommendation, error)
	DeleteByFieldYear(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, targetYear int) error
	MarkApplied(ctx context.Context, tx *gorm.DB, recID uuid.UUID) error
	ListAppliedByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.RotationRecommendation, error)
}

type rotationRecommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRotationRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RotationRecommendationRepo {
	repoLog := baseLog.With("repo", "RotationRecommendationRepo")
	return &rotationRecommendationRepo{db: db, log: repoLog}
}

func (rr *rotationRecommendationRepo) Create(ctx context.Context, tx *gorm.DB, recs []*types.RotationRecommendation) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(recs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&recs).Error
}

func (rr *rotationRecommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, recID uuid.UUID) (*types.RotationRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.RotationRecommendation
	if err := transaction.WithContext(ctx).
		Where("id = ?", recID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *rotationRecommendationRepo) ListByFieldYear(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, targetYear int) ([]*types.RotationRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RotationRecommendation
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Preload("Crop.Family").
		Where("field_id = ? AND target_year = ?", fieldID, targetYear).
		Order("agro_score DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rotationRecommendationRepo) DeleteByFieldYear(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID, targetYear int) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("field_id = ? AND target_year = ?", fieldID, targetYear).
		Delete(&types.RotationRecommendation{}).Error
}

func (rr *rotationRecommendationRepo) MarkApplied(ctx context.Context, tx *gorm.DB, recID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.RotationRecommendation{}).
		Where("id = ?", recID).
		Update("is_applied", true).Error
}

func (rr *rotationRecommendationRepo) ListAppliedByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.RotationRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RotationRecommendation
	if err := transaction.WithContext(ctx).
		Preload("Crop").
		Preload("Field").
		Joins("JOIN field ON field.id = rotation_recommendation.field_id").
		Where("field.owner_id = ? AND rotation_recommendation.is_applied = ?", ownerID, true).
		Order("rotation_recommendation.generated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
