package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type SeasonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, season *types.Season) error
	GetByID(ctx context.Context, tx *gorm.DB, seasonID uuid.UUID) (*types.Season, error)
	ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Season, error)
	FindByYear(ctx context.Context, tx *gorm.DB, year int) (*types.Season, error)
	Update(ctx context.Context, tx *gorm.DB, season *types.Season) error
	Delete(ctx context.Context, tx *gorm.DB, seasonID uuid.UUID) error
}

type seasonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSeasonRepo(db *gorm.DB, baseLog *logger.Logger) SeasonRepo {
	repoLog := baseLog.With("repo", "SeasonRepo")
	return &seasonRepo{db: db, log: repoLog}
}

func (sr *seasonRepo) Create(ctx context.Context, tx *gorm.DB, season *types.Season) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Create(season).Error
}

func (sr *seasonRepo) GetByID(ctx context.Context, tx *gorm.DB, seasonID uuid.UUID) (*types.Season, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Season
	if err := transaction.WithContext(ctx).
		Where("id = ?", seasonID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *seasonRepo) ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Season, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Season
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date_start ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindByYear returns the earliest season starting in the given calendar
// year, or nil when no season matches.
func (sr *seasonRepo) FindByYear(ctx context.Context, tx *gorm.DB, year int) (*types.Season, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)
	var result types.Season
	err := transaction.WithContext(ctx).
		Where("date_start >= ? AND date_start < ?", yearStart, yearEnd).
		Order("date_start ASC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (sr *seasonRepo) Update(ctx context.Context, tx *gorm.DB, season *types.Season) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Save(season).Error
}

func (sr *seasonRepo) Delete(ctx context.Context, tx *gorm.DB, seasonID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", seasonID).
		Delete(&types.Season{}).Error
}
