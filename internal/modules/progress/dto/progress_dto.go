package dto

import (
	"time"

	"anoa.com/fittrack/internal/entity"
)

type CreateProgressInput struct {
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	EnergyBurntKcal *int     `json:"energy_burnt_kcal,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	LoggedAt        *string  `json:"logged_at,omitempty"` // YYYY-MM-DD, defaults to today
}

type UpdateProgressInput struct {
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	EnergyBurntKcal *int     `json:"energy_burnt_kcal,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	LoggedAt        *string  `json:"logged_at,omitempty"`
}

type ProgressListResponse struct {
	Username string                `json:"username"`
	Logs     []*entity.ProgressLog `json:"logs"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PerPage  int                   `json:"per_page"`
}

// ParseLoggedAt parses the wire date. The zero time plus ok=false means the
// field was absent.
func ParseLoggedAt(raw *string) (time.Time, bool, error) {
	if raw == nil || *raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
