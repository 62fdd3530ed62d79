package dto

import (
	"anoa.com/fittrack/internal/entity"
)

type CreateDietTargetInput struct {
	WeightKg          float64 `json:"weight_kg" binding:"required"`
	ProteinPerKg      float64 `json:"protein_per_kg"`
	CarbohydratePerKg float64 `json:"carbohydrate_per_kg"`
	FatPerKg          float64 `json:"fat_per_kg"`
}

type UpdateDietTargetInput struct {
	WeightKg          *float64 `json:"weight_kg,omitempty"`
	ProteinPerKg      *float64 `json:"protein_per_kg,omitempty"`
	CarbohydratePerKg *float64 `json:"carbohydrate_per_kg,omitempty"`
	FatPerKg          *float64 `json:"fat_per_kg,omitempty"`
}

// DietTargetResponse carries the stored per-kg values plus the derived
// absolute daily grams and energy.
type DietTargetResponse struct {
	Username          string             `json:"username"`
	Target            *entity.DietTarget `json:"target"`
	ProteinGrams      float64            `json:"protein_grams"`
	CarbohydrateGrams float64            `json:"carbohydrate_grams"`
	FatGrams          float64            `json:"fat_grams"`
	EnergyKcal        float64            `json:"energy_kcal"`
}
