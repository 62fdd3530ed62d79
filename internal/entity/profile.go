package entity

import (
	"time"

	"github.com/google/uuid"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

func (s Sex) Display() string {
	switch s {
	case SexMale:
		return "Male"
	case SexFemale:
		return "Female"
	}
	return "-"
}

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "SD"
	ActivityLight     ActivityLevel = "LA"
	ActivityModerate  ActivityLevel = "MA"
	ActivityVery      ActivityLevel = "VA"
	ActivityExtra     ActivityLevel = "EA"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityVery, ActivityExtra:
		return true
	}
	return false
}

func (a ActivityLevel) Display() string {
	switch a {
	case ActivitySedentary:
		return "Sedentary"
	case ActivityLight:
		return "Lightly Active"
	case ActivityModerate:
		return "Moderately Active"
	case ActivityVery:
		return "Very Active"
	case ActivityExtra:
		return "Extra Active"
	}
	return "-"
}

// TDEEModifier is the multiplier applied to BMR for this activity level.
func (a ActivityLevel) TDEEModifier() float64 {
	switch a {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityVery:
		return 1.725
	case ActivityExtra:
		return 1.9
	}
	return 1.0
}

type FitnessGoal string

const (
	GoalLoseWeight     FitnessGoal = "LW"
	GoalMaintainWeight FitnessGoal = "MW"
	GoalGainWeight     FitnessGoal = "GW"
)

func (g FitnessGoal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalMaintainWeight, GoalGainWeight:
		return true
	}
	return false
}

func (g FitnessGoal) Display() string {
	switch g {
	case GoalLoseWeight:
		return "Lose Weight"
	case GoalMaintainWeight:
		return "Maintain Weight"
	case GoalGainWeight:
		return "Gain Weight"
	}
	return "-"
}

type Profile struct {
	UserID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"user_id"`
	Sex           Sex           `gorm:"size:2;not null" json:"sex"`
	ActivityLevel ActivityLevel `gorm:"size:2;not null" json:"activity_level"`
	FitnessGoal   FitnessGoal   `gorm:"size:2;not null" json:"fitness_goal"`
	HeightCm      float64       `gorm:"not null" json:"height_cm"`
	WeightKg      float64       `gorm:"not null" json:"weight_kg"`
	DateOfBirth   time.Time     `gorm:"type:date;not null" json:"date_of_birth"`
	PrivacyLevel  PrivacyLevel  `gorm:"not null;default:1" json:"privacy_level"`
	ImageURL      *string       `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
