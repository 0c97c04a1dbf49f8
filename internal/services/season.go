package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/apierr"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/requestdata"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type SeasonInput struct {
	Name      string    `json:"name"`
	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`
}

type SeasonUpdate struct {
	Name      *string    `json:"name,omitempty"`
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
}

type SeasonService interface {
	CreateSeason(ctx context.Context, input SeasonInput) (*types.Season, error)
	ListSeasons(ctx context.Context) ([]*types.Season, error)
	GetSeason(ctx context.Context, seasonID uuid.UUID) (*types.Season, error)
	UpdateSeason(ctx context.Context, seasonID uuid.UUID, update SeasonUpdate) (*types.Season, error)
	DeleteSeason(ctx context.Context, seasonID uuid.UUID) error
}

type seasonService struct {
	db         *gorm.DB
	log        *logger.Logger
	seasonRepo repos.SeasonRepo
}

func NewSeasonService(db *gorm.DB, baseLog *logger.Logger, seasonRepo repos.SeasonRepo) SeasonService {
	serviceLog := baseLog.With("service", "SeasonService")
	return &seasonService{db: db, log: serviceLog, seasonRepo: seasonRepo}
}

func (ss *seasonService) CreateSeason(ctx context.Context, input SeasonInput) (*types.Season, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	if input.Name == "" {
		return nil, apierr.Validation("name_required", errors.New("a season name is required"))
	}
	if input.DateStart.IsZero() || input.DateEnd.IsZero() {
		return nil, apierr.Validation("dates_required", errors.New("season start and end dates are required"))
	}
	if input.DateStart.After(input.DateEnd) {
		return nil, apierr.Validation("invalid_date_range", errors.New("season start date cannot be after its end date"))
	}
	now := time.Now()
	season := &types.Season{
		ID:        uuid.New(),
		OwnerID:   rd.UserID,
		Name:      input.Name,
		DateStart: input.DateStart,
		DateEnd:   input.DateEnd,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ss.seasonRepo.Create(ctx, nil, season); err != nil {
		return nil, fmt.Errorf("create season: %w", err)
	}
	return season, nil
}

func (ss *seasonService) ListSeasons(ctx context.Context) ([]*types.Season, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	seasons, err := ss.seasonRepo.ListByOwnerID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return seasons, nil
}

func (ss *seasonService) GetSeason(ctx context.Context, seasonID uuid.UUID) (*types.Season, error) {
	return ss.loadOwnedSeason(ctx, seasonID)
}

func (ss *seasonService) UpdateSeason(ctx context.Context, seasonID uuid.UUID, update SeasonUpdate) (*types.Season, error) {
	season, err := ss.loadOwnedSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil && *update.Name != "" {
		season.Name = *update.Name
	}
	if update.DateStart != nil {
		season.DateStart = *update.DateStart
	}
	if update.DateEnd != nil {
		season.DateEnd = *update.DateEnd
	}
	if season.DateStart.After(season.DateEnd) {
		return nil, apierr.Validation("invalid_date_range", errors.New("season start date cannot be after its end date"))
	}
	season.UpdatedAt = time.Now()
	if err := ss.seasonRepo.Update(ctx, nil, season); err != nil {
		return nil, fmt.Errorf("update season: %w", err)
	}
	return season, nil
}

func (ss *seasonService) DeleteSeason(ctx context.Context, seasonID uuid.UUID) error {
	season, err := ss.loadOwnedSeason(ctx, seasonID)
	if err != nil {
		return err
	}
	if err := ss.seasonRepo.Delete(ctx, nil, season.ID); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}

func (ss *seasonService) loadOwnedSeason(ctx context.Context, seasonID uuid.UUID) (*types.Season, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	season, err := ss.seasonRepo.GetByID(ctx, nil, seasonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("season_not_found", fmt.Errorf("season %s does not exist", seasonID))
		}
		return nil, fmt.Errorf("load season: %w", err)
	}
	if season.OwnerID != rd.UserID {
		return nil, apierr.NotFound("season_not_found", fmt.Errorf("season %s does not belong to the current user", seasonID))
	}
	return season, nil
}
