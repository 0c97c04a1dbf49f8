package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type FieldGroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.FieldGroup) error
	GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.FieldGroup, error)
	ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.FieldGroup, error)
	Update(ctx context.Context, tx *gorm.DB, group *types.FieldGroup) error
	Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
}

type fieldGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldGroupRepo(db *gorm.DB, baseLog *logger.Logger) FieldGroupRepo {
	repoLog := baseLog.With("repo", "FieldGroupRepo")
	return &fieldGroupRepo{db: db, log: repoLog}
}

func (gr *fieldGroupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.FieldGroup) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).Create(group).Error
}

func (gr *fieldGroupRepo) GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.FieldGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var result types.FieldGroup
	if err := transaction.WithContext(ctx).
		Where("id = ?", groupID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *fieldGroupRepo) ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.FieldGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var results []*types.FieldGroup
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *fieldGroupRepo) Update(ctx context.Context, tx *gorm.DB, group *types.FieldGroup) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).Save(group).Error
}

func (gr *fieldGroupRepo) Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", groupID).
		Delete(&types.FieldGroup{}).Error
}
