package types

import (
	"time"

	"github.com/google/uuid"
)

type Season struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	DateStart time.Time `gorm:"column:date_start;not null" json:"date_start"`
	DateEnd   time.Time `gorm:"column:date_end;not null" json:"date_end"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Season) TableName() string { return "season" }

// Year is the calendar year the season's plantings are grouped under.
func (s *Season) Year() int { return s.DateStart.Year() }
