package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietTarget is the latest-active macro target for a user. The unique index
// on UserID enforces the one-active-target-per-user rule at the database.
type DietTarget struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	WeightKg          float64   `gorm:"not null" json:"weight_kg"`
	ProteinPerKg      float64   `gorm:"not null" json:"protein_per_kg"`
	CarbohydratePerKg float64   `gorm:"not null" json:"carbohydrate_per_kg"`
	FatPerKg          float64   `gorm:"not null" json:"fat_per_kg"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *DietTarget) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ProteinGrams returns the absolute daily protein target in grams.
func (d *DietTarget) ProteinGrams() float64 {
	return d.WeightKg * d.ProteinPerKg
}

func (d *DietTarget) CarbohydrateGrams() float64 {
	return d.WeightKg * d.CarbohydratePerKg
}

func (d *DietTarget) FatGrams() float64 {
	return d.WeightKg * d.FatPerKg
}

// EnergyKcal derives the daily energy target from the macro split
// (4 kcal/g protein and carbohydrate, 9 kcal/g fat).
func (d *DietTarget) EnergyKcal() float64 {
	return d.ProteinGrams()*4 + d.CarbohydrateGrams()*4 + d.FatGrams()*9
}
