package service

import (
	"time"

	"anoa.com/fittrack/internal/entity"
	profileDto "anoa.com/fittrack/internal/modules/profile/dto"
)

// goalAdjustmentKcal is the daily energy offset applied per fitness goal.
const goalAdjustmentKcal = 500.0

// energySummary derives BMR (Mifflin-St Jeor), TDEE and the goal-adjusted
// daily target from a profile. now supplies the reference date for age.
func energySummary(profile *entity.Profile, now time.Time) *profileDto.EnergySummary {
	age := yearsBetween(profile.DateOfBirth, now)

	bmr := 10*profile.WeightKg + 6.25*profile.HeightCm - 5*float64(age)
	switch profile.Sex {
	case entity.SexMale:
		bmr += 5
	case entity.SexFemale:
		bmr -= 161
	}

	tdee := bmr * profile.ActivityLevel.TDEEModifier()

	target := tdee
	switch profile.FitnessGoal {
	case entity.GoalLoseWeight:
		target -= goalAdjustmentKcal
	case entity.GoalGainWeight:
		target += goalAdjustmentKcal
	}

	return &profileDto.EnergySummary{
		BMRKcal:       bmr,
		TDEEKcal:      tdee,
		TargetKcal:    target,
		ActivityLevel: profile.ActivityLevel.Display(),
		FitnessGoal:   profile.FitnessGoal.Display(),
	}
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
