package types

import (
	"time"

	"github.com/google/uuid"
)

// Qualitative compatibility of an ordered (previous, next) crop pair.
const (
	CompatGood    = "good"
	CompatNeutral = "neutral"
	CompatBad     = "bad"
)

// CropRotationRule holds at most one rule per ordered crop pair.
type CropRotationRule struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PreviousCropID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rotation_rule_pair" json:"previous_crop_id"`
	PreviousCrop   *Crop     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PreviousCropID;references:ID" json:"previous_crop,omitempty"`
	NextCropID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rotation_rule_pair" json:"next_crop_id"`
	NextCrop       *Crop     `gorm:"constraint:OnDelete:CASCADE;foreignKey:NextCropID;references:ID" json:"next_crop,omitempty"`
	Compatibility  string    `gorm:"column:compatibility;not null" json:"compatibility"`
	Description    string    `gorm:"column:description" json:"description"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (CropRotationRule) TableName() string { return "crop_rotation_rule" }
