package types

import (
	"time"

	"github.com/google/uuid"
)

// Demand tiers shared by nutrient and water demand.
const (
	DemandLow    = "low"
	DemandMedium = "medium"
	DemandHigh   = "high"
)

// Soil pH preference classes.
const (
	PHAcidic   = "acidic"
	PHNeutral  = "neutral"
	PHAlkaline = "alkaline"
)

// Base crop type tags.
const (
	CropTypeVegetable = "vegetable"
	CropTypeRoot      = "root"
	CropTypeLegume    = "legume"
	CropTypeGrain     = "grain"
	CropTypeTechnical = "technical"
)

// Crop is immutable reference data after seeding.
type Crop struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string       `gorm:"column:name;not null" json:"name"`
	LatinName        string       `gorm:"column:latin_name" json:"latin_name"`
	FamilyID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"family_id"`
	Family           *PlantFamily `gorm:"constraint:OnDelete:RESTRICT;foreignKey:FamilyID;references:ID" json:"family,omitempty"`
	CropType         string       `gorm:"column:crop_type" json:"crop_type"`
	NutrientDemand   string       `gorm:"column:nutrient_demand" json:"nutrient_demand"`
	WaterDemand      string       `gorm:"column:water_demand" json:"water_demand"`
	DiseaseRisk      string       `gorm:"column:disease_risk" json:"disease_risk"`
	PreferredPH      string       `gorm:"column:preferred_ph" json:"preferred_ph"`
	RotationInterval int          `gorm:"column:rotation_interval;not null;default:3" json:"rotation_interval"`
	CreatedAt        time.Time    `gorm:"not null" json:"created_at"`
}

func (Crop) TableName() string { return "crop" }
