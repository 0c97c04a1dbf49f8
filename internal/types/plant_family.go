package types

import (
	"github.com/google/uuid"
)

type PlantFamily struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	LatinName   string    `gorm:"column:latin_name" json:"latin_name"`
	Description string    `gorm:"column:description" json:"description"`
}

func (PlantFamily) TableName() string { return "plant_family" }
