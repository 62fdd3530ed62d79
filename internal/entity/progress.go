package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressLog is a dated check-in. A user holds any number of them.
type ProgressLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	WeightKg        *float64  `json:"weight_kg,omitempty"`
	EnergyBurntKcal *int      `json:"energy_burnt_kcal,omitempty"`
	Notes           *string   `gorm:"type:text" json:"notes,omitempty"`
	LoggedAt        time.Time `gorm:"type:date;not null;index" json:"logged_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *ProgressLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
