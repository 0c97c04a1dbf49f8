package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldSoilProfile is a point-in-time soil sample. A field's "current"
// profile is the most recent one by sample date.
type FieldSoilProfile struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"field_id"`
	Field           *Field         `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"field,omitempty"`
	PH              *float64       `gorm:"column:ph" json:"ph,omitempty"`
	OrganicMatter   *float64       `gorm:"column:organic_matter" json:"organic_matter,omitempty"`
	Nitrogen        *float64       `gorm:"column:nitrogen" json:"nitrogen,omitempty"`
	Phosphorus      *float64       `gorm:"column:phosphorus" json:"phosphorus,omitempty"`
	Potassium       *float64       `gorm:"column:potassium" json:"potassium,omitempty"`
	NutrientLevels  datatypes.JSON `gorm:"column:nutrient_levels;type:jsonb" json:"nutrient_levels,omitempty"`
	MoistureContent *float64       `gorm:"column:moisture_content" json:"moisture_content,omitempty"`
	SoilDensity     *float64       `gorm:"column:soil_density" json:"soil_density,omitempty"`
	SampleDate      time.Time      `gorm:"column:sample_date;not null;index" json:"sample_date"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
}

func (FieldSoilProfile) TableName() string { return "field_soil_profile" }
