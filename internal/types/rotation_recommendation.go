package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Compatibility tiers assigned by the recommendation generator.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierFair      = "fair"
	TierPoor      = "poor"
)

// RotationRecommendation is an audit record of a past scoring run. Only
// the applied flag is ever mutated after creation.
type RotationRecommendation struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_recommendation_field_year" json:"field_id"`
	Field              *Field         `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"field,omitempty"`
	CropID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"crop_id"`
	Crop               *Crop          `gorm:"constraint:OnDelete:RESTRICT;foreignKey:CropID;references:ID" json:"crop,omitempty"`
	TargetYear         int            `gorm:"column:target_year;not null;index:idx_recommendation_field_year" json:"target_year"`
	AgroScore          int            `gorm:"column:agro_score;not null" json:"agro_score"`
	Compatibility      string         `gorm:"column:compatibility;not null" json:"compatibility"`
	Reasons            datatypes.JSON `gorm:"column:reasons;type:jsonb" json:"reasons"`
	SoilAdaptation     bool           `gorm:"column:soil_adaptation;not null;default:false" json:"soil_adaptation"`
	RotationCompliance bool           `gorm:"column:rotation_compliance;not null;default:false" json:"rotation_compliance"`
	Applied            bool           `gorm:"column:is_applied;not null;default:false" json:"is_applied"`
	GeneratedAt        time.Time      `gorm:"column:generated_at;not null" json:"generated_at"`
}

func (RotationRecommendation) TableName() string { return "rotation_recommendation" }
