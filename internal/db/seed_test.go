package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/types"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&types.PlantFamily{},
		&types.Crop{},
		&types.CropRotationRule{},
	))
	return db
}

func TestSeedReferenceData_PopulatesCatalog(t *testing.T) {
	db := newSeedTestDB(t)
	require.NoError(t, SeedReferenceData(db))

	var familyCount, cropCount, ruleCount int64
	require.NoError(t, db.Model(&types.PlantFamily{}).Count(&familyCount).Error)
	require.NoError(t, db.Model(&types.Crop{}).Count(&cropCount).Error)
	require.NoError(t, db.Model(&types.CropRotationRule{}).Count(&ruleCount).Error)
	require.EqualValues(t, 9, familyCount)
	require.EqualValues(t, 22, cropCount)
	require.EqualValues(t, 16, ruleCount)

	var potato types.Crop
	require.NoError(t, db.Where("name = ?", "Potato").First(&potato).Error)
	require.Equal(t, 4, potato.RotationInterval)
	require.Equal(t, types.PHAcidic, potato.PreferredPH)

	var sunflower types.Crop
	require.NoError(t, db.Where("name = ?", "Sunflower").First(&sunflower).Error)
	var selfRule types.CropRotationRule
	require.NoError(t, db.
		Where("previous_crop_id = ? AND next_crop_id = ?", sunflower.ID, sunflower.ID).
		First(&selfRule).Error)
	require.Equal(t, types.CompatBad, selfRule.Compatibility)
}

func TestSeedReferenceData_Idempotent(t *testing.T) {
	db := newSeedTestDB(t)
	require.NoError(t, SeedReferenceData(db))
	require.NoError(t, SeedReferenceData(db))

	var cropCount int64
	require.NoError(t, db.Model(&types.Crop{}).Count(&cropCount).Error)
	require.EqualValues(t, 22, cropCount)
}
