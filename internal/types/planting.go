package types

import (
	"time"

	"github.com/google/uuid"
)

type Planting struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"field_id"`
	Field        *Field     `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"field,omitempty"`
	CropID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"crop_id"`
	Crop         *Crop      `gorm:"constraint:OnDelete:RESTRICT;foreignKey:CropID;references:ID" json:"crop,omitempty"`
	SeasonID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"season_id"`
	Season       *Season    `gorm:"constraint:OnDelete:RESTRICT;foreignKey:SeasonID;references:ID" json:"season,omitempty"`
	PlantingDate time.Time  `gorm:"column:planting_date;not null;index" json:"planting_date"`
	HarvestDate  *time.Time `gorm:"column:harvest_date" json:"harvest_date,omitempty"`
	YieldAmount  *float64   `gorm:"column:yield_amount" json:"yield_amount,omitempty"`
	YieldQuality string     `gorm:"column:yield_quality" json:"yield_quality"`
	Notes        string     `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Planting) TableName() string { return "planting" }
