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

type PlantingInput struct {
	CropID       uuid.UUID  `json:"crop_id"`
	SeasonID     uuid.UUID  `json:"season_id"`
	PlantingDate time.Time  `json:"planting_date"`
	HarvestDate  *time.Time `json:"harvest_date,omitempty"`
	YieldAmount  *float64   `json:"yield_amount,omitempty"`
	YieldQuality string     `json:"yield_quality,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

type PlantingUpdate struct {
	HarvestDate  *time.Time `json:"harvest_date,omitempty"`
	YieldAmount  *float64   `json:"yield_amount,omitempty"`
	YieldQuality *string    `json:"yield_quality,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type PlantingService interface {
	CreatePlanting(ctx context.Context, fieldID uuid.UUID, input PlantingInput) (*types.Planting, error)
	ListPlantings(ctx context.Context, fieldID uuid.UUID) ([]*types.Planting, error)
	UpdatePlanting(ctx context.Context, fieldID, plantingID uuid.UUID, update PlantingUpdate) (*types.Planting, error)
	DeletePlanting(ctx context.Context, fieldID, plantingID uuid.UUID) error
}

type plantingService struct {
	db           *gorm.DB
	log          *logger.Logger
	fieldRepo    repos.FieldRepo
	cropRepo     repos.CropRepo
	seasonRepo   repos.SeasonRepo
	plantingRepo repos.PlantingRepo
}

func NewPlantingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	fieldRepo repos.FieldRepo,
	cropRepo repos.CropRepo,
	seasonRepo repos.SeasonRepo,
	plantingRepo repos.PlantingRepo,
) PlantingService {
	serviceLog := baseLog.With("service", "PlantingService")
	return &plantingService{
		db:           db,
		log:          serviceLog,
		fieldRepo:    fieldRepo,
		cropRepo:     cropRepo,
		seasonRepo:   seasonRepo,
		plantingRepo: plantingRepo,
	}
}

func (ps *plantingService) CreatePlanting(ctx context.Context, fieldID uuid.UUID, input PlantingInput) (*types.Planting, error) {
	field, err := ps.loadOwnedField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if input.PlantingDate.IsZero() {
		return nil, apierr.Validation("planting_date_required", errors.New("a planting date is required"))
	}
	if _, err := ps.cropRepo.GetByID(ctx, nil, input.CropID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Validation("crop_not_found", fmt.Errorf("crop %s does not exist", input.CropID))
		}
		return nil, fmt.Errorf("load crop: %w", err)
	}
	season, err := ps.seasonRepo.GetByID(ctx, nil, input.SeasonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Validation("season_not_found", fmt.Errorf("season %s does not exist", input.SeasonID))
		}
		return nil, fmt.Errorf("load season: %w", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if season.OwnerID != rd.UserID {
		return nil, apierr.Validation("season_not_found", fmt.Errorf("season %s does not belong to the current user", input.SeasonID))
	}

	now := time.Now()
	planting := &types.Planting{
		ID:           uuid.New(),
		FieldID:      field.ID,
		CropID:       input.CropID,
		SeasonID:     input.SeasonID,
		PlantingDate: input.PlantingDate,
		HarvestDate:  input.HarvestDate,
		YieldAmount:  input.YieldAmount,
		YieldQuality: input.YieldQuality,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ps.plantingRepo.Create(ctx, nil, planting); err != nil {
		return nil, fmt.Errorf("create planting: %w", err)
	}
	return planting, nil
}

func (ps *plantingService) ListPlantings(ctx context.Context, fieldID uuid.UUID) ([]*types.Planting, error) {
	field, err := ps.loadOwnedField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	plantings, err := ps.plantingRepo.ListByFieldID(ctx, nil, field.ID)
	if err != nil {
		return nil, fmt.Errorf("list plantings: %w", err)
	}
	return plantings, nil
}

func (ps *plantingService) UpdatePlanting(ctx context.Context, fieldID, plantingID uuid.UUID, update PlantingUpdate) (*types.Planting, error) {
	planting, err := ps.loadFieldPlanting(ctx, fieldID, plantingID)
	if err != nil {
		return nil, err
	}
	if update.HarvestDate != nil {
		planting.HarvestDate = update.HarvestDate
	}
	if update.YieldAmount != nil {
		planting.YieldAmount = update.YieldAmount
	}
	if update.YieldQuality != nil {
		planting.YieldQuality = *update.YieldQuality
	}
	if update.Notes != nil {
		planting.Notes = *update.Notes
	}
	planting.UpdatedAt = time.Now()
	if err := ps.plantingRepo.Update(ctx, nil, planting); err != nil {
		return nil, fmt.Errorf("update planting: %w", err)
	}
	return planting, nil
}

func (ps *plantingService) DeletePlanting(ctx context.Context, fieldID, plantingID uuid.UUID) error {
	planting, err := ps.loadFieldPlanting(ctx, fieldID, plantingID)
	if err != nil {
		return err
	}
	if err := ps.plantingRepo.Delete(ctx, nil, planting.ID); err != nil {
		return fmt.Errorf("delete planting: %w", err)
	}
	return nil
}

func (ps *plantingService) loadFieldPlanting(ctx context.Context, fieldID, plantingID uuid.UUID) (*types.Planting, error) {
	field, err := ps.loadOwnedField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	planting, err := ps.plantingRepo.GetByID(ctx, nil, plantingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("planting_not_found", fmt.Errorf("planting %s does not exist", plantingID))
		}
		return nil, fmt.Errorf("load planting: %w", err)
	}
	if planting.FieldID != field.ID {
		return nil, apierr.NotFound("planting_not_found", fmt.Errorf("planting %s does not belong to field %s", plantingID, fieldID))
	}
	return planting, nil
}

func (ps *plantingService) loadOwnedField(ctx context.Context, fieldID uuid.UUID) (*types.Field, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	field, err := ps.fieldRepo.GetByID(ctx, nil, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("field_not_found", fmt.Errorf("field %s does not exist", fieldID))
		}
		return nil, fmt.Errorf("load field: %w", err)
	}
	if field.OwnerID != rd.UserID {
		return nil, apierr.NotFound("field_not_found", fmt.Errorf("field %s does not belong to the current user", fieldID))
	}
	return field, nil
}
