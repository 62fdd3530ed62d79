package dto

import (
	"anoa.com/fittrack/internal/entity"
)

type CreateProfileInput struct {
	Sex           string  `json:"sex" binding:"required,oneof=M F"`
	ActivityLevel string  `json:"activity_level" binding:"required,oneof=SD LA MA VA EA"`
	FitnessGoal   string  `json:"fitness_goal" binding:"required,oneof=LW MW GW"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	DateOfBirth   string  `json:"date_of_birth" binding:"required"`
	PrivacyLevel  int     `json:"privacy_level" binding:"required"`
}

type UpdateProfileInput struct {
	Sex           *string  `json:"sex,omitempty" binding:"omitempty,oneof=M F"`
	ActivityLevel *string  `json:"activity_level,omitempty" binding:"omitempty,oneof=SD LA MA VA EA"`
	FitnessGoal   *string  `json:"fitness_goal,omitempty" binding:"omitempty,oneof=LW MW GW"`
	HeightCm      *float64 `json:"height_cm,omitempty" binding:"omitempty,gt=0"`
	WeightKg      *float64 `json:"weight_kg,omitempty" binding:"omitempty,gt=0"`
	DateOfBirth   *string  `json:"date_of_birth,omitempty"`
	PrivacyLevel  *int     `json:"privacy_level,omitempty"`
}

// EnergySummary is the derived daily energy breakdown shown on the detail view.
type EnergySummary struct {
	BMRKcal       float64 `json:"bmr_kcal"`
	TDEEKcal      float64 `json:"tdee_kcal"`
	TargetKcal    float64 `json:"target_kcal"`
	ActivityLevel string  `json:"activity_level"`
	FitnessGoal   string  `json:"fitness_goal"`
}

type ProfileResponse struct {
	Username string          `json:"username"`
	Profile  *entity.Profile `json:"profile"`
	Energy   *EnergySummary  `json:"energy,omitempty"`
}
