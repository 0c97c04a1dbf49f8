package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Field struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	AreaHa      float64        `gorm:"column:area_ha;not null" json:"area_ha"`
	Coordinates datatypes.JSON `gorm:"column:coordinates;type:jsonb" json:"coordinates,omitempty"`
	SoilType    string         `gorm:"column:soil_type" json:"soil_type"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Field) TableName() string { return "field" }
