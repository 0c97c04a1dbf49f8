package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/apierr"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type CropService interface {
	ListCrops(ctx context.Context) ([]*types.Crop, error)
	GetCrop(ctx context.Context, cropID uuid.UUID) (*types.Crop, error)
	// ListSuitableForField filters the catalog to crops whose pH
	// preference matches the field's latest soil sample. Without a
	// sample the full catalog is returned.
	ListSuitableForField(ctx context.Context, fieldID uuid.UUID) ([]*types.Crop, error)
}

type cropService struct {
	db        *gorm.DB
	log       *logger.Logger
	cropRepo  repos.CropRepo
	fieldRepo repos.FieldRepo
	soilRepo  repos.FieldSoilProfileRepo
}

func NewCropService(db *gorm.DB, baseLog *logger.Logger, cropRepo repos.CropRepo, fieldRepo repos.FieldRepo, soilRepo repos.FieldSoilProfileRepo) CropService {
	serviceLog := baseLog.With("service", "CropService")
	return &cropService{db: db, log: serviceLog, cropRepo: cropRepo, fieldRepo: fieldRepo, soilRepo: soilRepo}
}

func (cs *cropService) ListCrops(ctx context.Context) ([]*types.Crop, error) {
	crops, err := cs.cropRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	return crops, nil
}

func (cs *cropService) GetCrop(ctx context.Context, cropID uuid.UUID) (*types.Crop, error) {
	crop, err := cs.cropRepo.GetByID(ctx, nil, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("crop_not_found", fmt.Errorf("crop %s does not exist", cropID))
		}
		return nil, fmt.Errorf("load crop: %w", err)
	}
	return crop, nil
}

func (cs *cropService) ListSuitableForField(ctx context.Context, fieldID uuid.UUID) ([]*types.Crop, error) {
	field, err := cs.fieldRepo.GetByID(ctx, nil, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("field_not_found", fmt.Errorf("field %s does not exist", fieldID))
		}
		return nil, fmt.Errorf("load field: %w", err)
	}
	profile, err := cs.soilRepo.GetLatestByFieldID(ctx, nil, field.ID)
	if err != nil {
		return nil, fmt.Errorf("load soil profile: %w", err)
	}
	catalog, err := cs.cropRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	if profile == nil || profile.PH == nil {
		return catalog, nil
	}

	phClass := classifyPH(*profile.PH)
	suitable := make([]*types.Crop, 0, len(catalog))
	for _, crop := range catalog {
		if crop.PreferredPH == "" || crop.PreferredPH == phClass {
			suitable = append(suitable, crop)
		}
	}
	return suitable, nil
}

func classifyPH(ph float64) string {
	switch {
	case ph < 6.5:
		return types.PHAcidic
	case ph > 7.5:
		return types.PHAlkaline
	default:
		return types.PHNeutral
	}
}
