package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type CropRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) (*types.Crop, error)
	// List returns the full crop catalog with families preloaded, ordered
	// by name so catalog enumeration is deterministic.
	List(ctx context.Context, tx *gorm.DB) ([]*types.Crop, error)
}

type cropRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCropRepo(db *gorm.DB, baseLog *logger.Logger) CropRepo {
	repoLog := baseLog.With("repo", "CropRepo")
	return &cropRepo{db: db, log: repoLog}
}

func (cr *cropRepo) GetByID(ctx context.Context, tx *gorm.DB, cropID uuid.UUID) (*types.Crop, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Crop
	if err := transaction.WithContext(ctx).
		Preload("Family").
		Where("id = ?", cropID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *cropRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Crop, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Crop
	if err := transaction.WithContext(ctx).
		Preload("Family").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
