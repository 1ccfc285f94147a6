package domain

import (
	"time"
)

// VacationWindow is one candidate contiguous day range produced and ranked
// by the window search. Lower penalty is better. Ephemeral, never persisted.
type VacationWindow struct {
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Duration     int       `json:"duration"`
	TotalClasses int       `json:"total_classes"`
	AtRiskCount  int       `json:"at_risk_count"`
	Penalty      float64   `json:"penalty"`
}

// Overlaps reports whether the two windows share at least one date.
func (w VacationWindow) Overlaps(other VacationWindow) bool {
	return !w.StartDate.After(other.EndDate) && !w.EndDate.Before(other.StartDate)
}
