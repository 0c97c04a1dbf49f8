package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/apierr"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/requestdata"
	"github.com/agrofield/agrofield-backend/internal/types"
)

type FieldInput struct {
	Name        string      `json:"name"`
	AreaHa      float64     `json:"area_ha"`
	Coordinates [][]float64 `json:"coordinates,omitempty"`
	SoilType    string      `json:"soil_type,omitempty"`
}

type FieldUpdate struct {
	Name        *string     `json:"name,omitempty"`
	AreaHa      *float64    `json:"area_ha,omitempty"`
	Coordinates [][]float64 `json:"coordinates,omitempty"`
	SoilType    *string     `json:"soil_type,omitempty"`
}

type SoilProfileInput struct {
	PH              *float64           `json:"ph,omitempty"`
	OrganicMatter   *float64           `json:"organic_matter,omitempty"`
	Nitrogen        *float64           `json:"nitrogen,omitempty"`
	Phosphorus      *float64           `json:"phosphorus,omitempty"`
	Potassium       *float64           `json:"potassium,omitempty"`
	NutrientLevels  map[string]float64 `json:"nutrient_levels,omitempty"`
	MoistureContent *float64           `json:"moisture_content,omitempty"`
	SoilDensity     *float64           `json:"soil_density,omitempty"`
	SampleDate      time.Time          `json:"sample_date"`
}

type FieldService interface {
	CreateField(ctx context.Context, input FieldInput) (*types.Field, error)
	ListFields(ctx context.Context) ([]*types.Field, error)
	GetField(ctx context.Context, fieldID uuid.UUID) (*types.Field, error)
	UpdateField(ctx context.Context, fieldID uuid.UUID, update FieldUpdate) (*types.Field, error)
	DeleteField(ctx context.Context, fieldID uuid.UUID) error
	CreateSoilProfile(ctx context.Context, fieldID uuid.UUID, input SoilProfileInput) (*types.FieldSoilProfile, error)
	ListSoilProfiles(ctx context.Context, fieldID uuid.UUID) ([]*types.FieldSoilProfile, error)
}

type fieldService struct {
	db        *gorm.DB
	log       *logger.Logger
	fieldRepo repos.FieldRepo
	soilRepo  repos.FieldSoilProfileRepo
}

func NewFieldService(db *gorm.DB, baseLog *logger.Logger, fieldRepo repos.FieldRepo, soilRepo repos.FieldSoilProfileRepo) FieldService {
	serviceLog := baseLog.With("service", "FieldService")
	return &fieldService{db: db, log: serviceLog, fieldRepo: fieldRepo, soilRepo: soilRepo}
}

func (fs *fieldService) CreateField(ctx context.Context, input FieldInput) (*types.Field, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	if input.Name == "" {
		return nil, apierr.Validation("name_required", errors.New("a field name is required"))
	}
	if input.AreaHa <= 0 {
		return nil, apierr.Validation("invalid_area", fmt.Errorf("area must be positive, got %v", input.AreaHa))
	}

	coords, err := encodeCoordinates(input.Coordinates)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	field := &types.Field{
		ID:          uuid.New(),
		OwnerID:     rd.UserID,
		Name:        input.Name,
		AreaHa:      input.AreaHa,
		Coordinates: coords,
		SoilType:    input.SoilType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := fs.fieldRepo.Create(ctx, nil, field); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	return field, nil
}

func (fs *fieldService) ListFields(ctx context.Context) ([]*types.Field, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	fields, err := fs.fieldRepo.ListByOwnerID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}

func (fs *fieldService) GetField(ctx context.Context, fieldID uuid.UUID) (*types.Field, error) {
	return fs.loadOwnedField(ctx, fieldID)
}

func (fs *fieldService) UpdateField(ctx context.Context, fieldID uuid.UUID, update FieldUpdate) (*types.Field, error) {
	field, err := fs.loadOwnedField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil && *update.Name != "" {
		field.Name = *update.Name
	}
	if update.AreaHa != nil {
		if *update.AreaHa <= 0 {
			return nil, apierr.Validation("invalid_area", fmt.Errorf("area must be positive, got %v", *update.AreaHa))
		}
		field.AreaHa = *update.AreaHa
	}
	if update.Coordinates != nil {
		coords, err := encodeCoordinates(update.Coordinates)
		if err != nil {
			return nil, err
		}
		field.Coordinates = coords
	}
	if update.SoilType != nil {
		field.SoilType = *update.SoilType
	}
	field.UpdatedAt = time.Now()
	if err := fs.fieldRepo.Update(ctx, nil, field); err != nil {
		return nil, fmt.Errorf("update field: %w", err)
	}
	return field, nil
}

func (fs *fieldService) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	field, err := fs.loadOwnedField(ctx, fieldID)
	if err != nil {
		return err
	}
	if err := fs.fieldRepo.Delete(ctx, nil, field.ID); err != nil {
		return fmt.Errorf("delete field: %w", err)
	}
	return nil
}

func (fs *fieldService) CreateSoilProfile(ctx context.Context, fieldID uuid.UUID, input SoilProfileInput) (*types.FieldSoilProfile, error) {
	field, err := fs.loadOwnedField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if input.SampleDate.IsZero() {
		return nil, apierr.Validation("sample_date_required", errors.New("a sample date is required"))
	}
	var nutrients datatypes.JSON
	if input.NutrientLevels != nil {
		raw, err := json.Marshal(input.NutrientLevels)
		if err != nil {
			return nil, apierr.Validation("invalid_nutrient_levels", err)
		}
		nutrients = datatypes.JSON(raw)
	}
	profile := &types.FieldSoilProfile{
		ID:              uuid.New(),
		FieldID:         field.ID,
		PH:              input.PH,
		OrganicMatter:   input.OrganicMatter,
		Nitrogen:        input.Nitrogen,
		Phosphorus:      input.Phosphorus,
		Potassium:       input.Potassium,
		NutrientLevels:  nutrients,
		MoistureContent: input.MoistureContent,
		SoilDensity:     input.SoilDensity,
		SampleDate:      input.SampleDate,
		CreatedAt:       time.Now(),
	}
	if err := fs.soilRepo.Create(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("create soil profile: %w", err)
	}
	return profile, nil
}

func (fs *fieldService) ListSoilProfiles(ctx context.Context, fieldID uuid.UUID) ([]*types.FieldSoilProfile, error) {
	field, err := fs.loadOwnedField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	profiles, err := fs.soilRepo.ListByFieldID(ctx, nil, field.ID)
	if err != nil {
		return nil, fmt.Errorf("list soil profiles: %w", err)
	}
	return profiles, nil
}

func (fs *fieldService) loadOwnedField(ctx context.Context, fieldID uuid.UUID) (*types.Field, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	field, err := fs.fieldRepo.GetByID(ctx, nil, fieldID)
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

func encodeCoordinates(coords [][]float64) (datatypes.JSON, error) {
	if coords == nil {
		return nil, nil
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, apierr.Validation("invalid_coordinates", err)
	}
	return datatypes.JSON(raw), nil
}
