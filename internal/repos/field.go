package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type FieldRepo interface {
	Create(ctx context.Context, tx *gorm.DB, field *types.Field) error
	GetByID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error)
	ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Field, error)
	Update(ctx context.Context, tx *gorm.DB, field *types.Field) error
	Delete(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) error
}

type fieldRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldRepo(db *gorm.DB, baseLog *logger.Logger) FieldRepo {
	repoLog := baseLog.With("repo", "FieldRepo")
	return &fieldRepo{db: db, log: repoLog}
}

func (fr *fieldRepo) Create(ctx context.Context, tx *gorm.DB, field *types.Field) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(field).Error
}

func (fr *fieldRepo) GetByID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.Field
	if err := transaction.WithContext(ctx).
		Where("id = ?", fieldID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *fieldRepo) ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Field, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Field
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *fieldRepo) Update(ctx context.Context, tx *gorm.DB, field *types.Field) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Save(field).Error
}

func (fr *fieldRepo) Delete(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", fieldID).
		Delete(&types.Field{}).Error
}
