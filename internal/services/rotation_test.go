package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/apierr"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/requestdata"
	"github.com/agrofield/agrofield-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&types.User{},
		&types.Season{},
		&types.FieldGroup{},
		&types.Field{},
		&types.PlantFamily{},
		&types.Crop{},
		&types.CropRotationRule{},
		&types.Planting{},
		&types.FieldSoilProfile{},
		&types.RotationRecommendation{},
	))
	return db
}

func newTestRotationService(t *testing.T, db *gorm.DB) RotationService {
	t.Helper()
	log, err := logger.New("production")
	require.NoError(t, err)
	return NewRotationService(
		db,
		log,
		repos.NewFieldRepo(db, log),
		repos.NewCropRepo(db, log),
		repos.NewCropRotationRuleRepo(db, log),
		repos.NewPlantingRepo(db, log),
		repos.NewFieldSoilProfileRepo(db, log),
		repos.NewSeasonRepo(db, log),
		repos.NewRotationRecommendationRepo(db, log),
	)
}

type rotationFixture struct {
	owner *types.User
	field *types.Field
}

func seedRotationFixture(t *testing.T, db *gorm.DB) *rotationFixture {
	t.Helper()
	now := time.Now()
	owner := &types.User{
		ID:        uuid.New(),
		Email:     "farmer@example.com",
		FirstName: "Anna",
		LastName:  "Farmer",
		Password:  "hashed",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(owner).Error)
	field := &types.Field{
		ID:        uuid.New(),
		OwnerID:   owner.ID,
		Name:      "North field",
		AreaHa:    12.5,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(field).Error)
	return &rotationFixture{owner: owner, field: field}
}

func seedCrop(t *testing.T, db *gorm.DB, family *types.PlantFamily, name, cropType string, interval int) *types.Crop {
	t.Helper()
	crop := &types.Crop{
		ID:               uuid.New(),
		Name:             name,
		FamilyID:         family.ID,
		CropType:         cropType,
		NutrientDemand:   types.DemandMedium,
		PreferredPH:      types.PHNeutral,
		RotationInterval: interval,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, db.Create(crop).Error)
	return crop
}

func seedFamily(t *testing.T, db *gorm.DB, name string) *types.PlantFamily {
	t.Helper()
	family := &types.PlantFamily{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(family).Error)
	return family
}

func seedSeason(t *testing.T, db *gorm.DB, ownerID uuid.UUID, year int) *types.Season {
	t.Helper()
	now := time.Now()
	season := &types.Season{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      fmt.Sprintf("Season %d", year),
		DateStart: time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(season).Error)
	return season
}

func ownerContext(owner *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: owner.ID})
}

func TestGenerateRecommendations_RanksAndLimits(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	family := seedFamily(t, db, "Grasses")
	names := []string{"Barley", "Corn", "Millet", "Oats", "Rye", "Wheat"}
	for _, name := range names {
		seedCrop(t, db, family, name, types.CropTypeGrain, 2)
	}
	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	recs, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	// No history and no soil data: every candidate scores 100 and the
	// tie-break orders by crop name.
	for i, rec := range recs {
		require.Equal(t, 100, rec.Score)
		require.Equal(t, types.TierExcellent, rec.Compatibility)
		require.Equal(t, []string{"soil data unavailable"}, rec.Reasons)
		require.Equal(t, names[i], rec.CropName)
		require.NotEqual(t, uuid.Nil, rec.RecommendationID)
	}

	stored, err := svc.ListRecommendations(ctx, fx.field.ID, 2030)
	require.NoError(t, err)
	require.Len(t, stored, 5)
	wantIDs := map[uuid.UUID]bool{}
	for _, rec := range recs {
		wantIDs[rec.RecommendationID] = true
	}
	for _, rec := range stored {
		require.True(t, wantIDs[rec.RecommendationID])
		require.Equal(t, 100, rec.Score)
	}
}

func TestGenerateRecommendations_ReplacesPriorSet(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	family := seedFamily(t, db, "Legumes")
	seedCrop(t, db, family, "Pea", types.CropTypeLegume, 3)
	seedCrop(t, db, family, "Bean", types.CropTypeLegume, 3)
	seedCrop(t, db, family, "Lentil", types.CropTypeLegume, 3)
	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	first, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)
	require.Len(t, second, 3)

	var count int64
	require.NoError(t, db.Model(&types.RotationRecommendation{}).
		Where("field_id = ? AND target_year = ?", fx.field.ID, 2030).
		Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestGenerateRecommendations_UsesHistoryAndRules(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	nightshades := seedFamily(t, db, "Nightshades")
	legumes := seedFamily(t, db, "Legumes")
	tomato := seedCrop(t, db, nightshades, "Tomato", types.CropTypeVegetable, 3)
	potato := seedCrop(t, db, nightshades, "Potato", types.CropTypeRoot, 4)
	pea := seedCrop(t, db, legumes, "Pea", types.CropTypeLegume, 3)

	require.NoError(t, db.Create(&types.CropRotationRule{
		ID:             uuid.New(),
		PreviousCropID: tomato.ID,
		NextCropID:     pea.ID,
		Compatibility:  types.CompatGood,
		CreatedAt:      time.Now(),
	}).Error)
	require.NoError(t, db.Create(&types.CropRotationRule{
		ID:             uuid.New(),
		PreviousCropID: tomato.ID,
		NextCropID:     potato.ID,
		Compatibility:  types.CompatBad,
		CreatedAt:      time.Now(),
	}).Error)

	season := seedSeason(t, db, fx.owner.ID, 2029)
	now := time.Now()
	require.NoError(t, db.Create(&types.Planting{
		ID:           uuid.New(),
		FieldID:      fx.field.ID,
		CropID:       tomato.ID,
		SeasonID:     season.ID,
		PlantingDate: time.Date(2029, time.May, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error)

	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	recs, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Pea benefits from the good-predecessor rule.
	require.Equal(t, "Pea", recs[0].CropName)
	require.Equal(t, 120, recs[0].Score)
	require.True(t, recs[0].RotationCompliance)

	// Potato is hit by the bad rule and shares the tomato family.
	potatoRec := recs[1]
	require.Equal(t, "Potato", potatoRec.CropName)
	require.Equal(t, 45, potatoRec.Score)
	require.Equal(t, types.TierPoor, potatoRec.Compatibility)
	require.False(t, potatoRec.RotationCompliance)

	// Tomato violates its own interval, repeats its family and its
	// crop type, so it ranks last.
	require.Equal(t, "Tomato", recs[2].CropName)
	require.Equal(t, 35, recs[2].Score)
}

func TestApplyRecommendation_CreatesPlantingAndMarksApplied(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	family := seedFamily(t, db, "Legumes")
	seedCrop(t, db, family, "Pea", types.CropTypeLegume, 3)
	seedSeason(t, db, fx.owner.ID, 2030)
	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	recs, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	planting, err := svc.ApplyRecommendation(ctx, fx.field.ID, recs[0].RecommendationID)
	require.NoError(t, err)
	require.Equal(t, fx.field.ID, planting.FieldID)
	require.Equal(t, recs[0].CropID, planting.CropID)
	require.Equal(t, 2030, planting.PlantingDate.Year())
	require.Equal(t, time.March, planting.PlantingDate.Month())

	var stored types.RotationRecommendation
	require.NoError(t, db.Where("id = ?", recs[0].RecommendationID).First(&stored).Error)
	require.True(t, stored.Applied)

	applied, err := svc.ListAppliedRecommendations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	require.Equal(t, "Pea", applied[0].CropName)
	require.Equal(t, "North field", applied[0].FieldName)

	// Applying again is allowed and creates a second planting.
	second, err := svc.ApplyRecommendation(ctx, fx.field.ID, recs[0].RecommendationID)
	require.NoError(t, err)
	require.NotEqual(t, planting.ID, second.ID)

	var plantingCount int64
	require.NoError(t, db.Model(&types.Planting{}).
		Where("field_id = ?", fx.field.ID).
		Count(&plantingCount).Error)
	require.EqualValues(t, 2, plantingCount)
}

func TestApplyRecommendation_FieldMismatch(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	now := time.Now()
	otherField := &types.Field{
		ID:        uuid.New(),
		OwnerID:   fx.owner.ID,
		Name:      "South field",
		AreaHa:    4.0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(otherField).Error)
	family := seedFamily(t, db, "Legumes")
	seedCrop(t, db, family, "Pea", types.CropTypeLegume, 3)
	seedSeason(t, db, fx.owner.ID, 2030)
	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	recs, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)

	_, err = svc.ApplyRecommendation(ctx, otherField.ID, recs[0].RecommendationID)
	require.Error(t, err)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "recommendation_field_mismatch", apiErr.Code)
	require.Equal(t, 400, apiErr.Status)
}

func TestApplyRecommendation_MissingSeason(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	family := seedFamily(t, db, "Legumes")
	seedCrop(t, db, family, "Pea", types.CropTypeLegume, 3)
	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	recs, err := svc.GenerateRecommendations(ctx, fx.field.ID, 2030, 0)
	require.NoError(t, err)

	_, err = svc.ApplyRecommendation(ctx, fx.field.ID, recs[0].RecommendationID)
	require.Error(t, err)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "season_not_found", apiErr.Code)
	require.Equal(t, 404, apiErr.Status)
}

func TestGenerateRecommendations_ForeignFieldReportedNotFound(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	family := seedFamily(t, db, "Legumes")
	seedCrop(t, db, family, "Pea", types.CropTypeLegume, 3)
	svc := newTestRotationService(t, db)

	now := time.Now()
	stranger := &types.User{
		ID:        uuid.New(),
		Email:     "other@example.com",
		Password:  "hashed",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(stranger).Error)

	_, err := svc.GenerateRecommendations(ownerContext(stranger), fx.field.ID, 2030, 0)
	require.Error(t, err)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "field_not_found", apiErr.Code)
	require.Equal(t, 404, apiErr.Status)
}

func TestGenerateRecommendations_InvalidTargetYear(t *testing.T) {
	db := newTestDB(t)
	fx := seedRotationFixture(t, db)
	svc := newTestRotationService(t, db)
	ctx := ownerContext(fx.owner)

	_, err := svc.GenerateRecommendations(ctx, fx.field.ID, 0, 0)
	require.Error(t, err)
	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "invalid_target_year", apiErr.Code)
}
