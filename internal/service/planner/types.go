package planner

import (
	"github.com/erphive/attendance-planner/internal/domain"
)

type ImpactResponse struct {
	StudentID    string                 `json:"student_id"`
	From         string                 `json:"from"`
	To           string                 `json:"to"`
	TotalDays    int                    `json:"total_days"`
	ActiveDays   int                    `json:"active_days"`
	TotalClasses int                    `json:"total_classes"`
	BreachCount  int                    `json:"breach_count"`
	Impacts      []domain.SubjectImpact `json:"impacts"`
}

// VacationResponse carries the ranked windows plus the run metadata the
// analytics recorder keys on.
type VacationResponse struct {
	StudentID      string                  `json:"student_id"`
	AsOf           string                  `json:"as_of"`
	RunID          string                  `json:"run_id"`
	Premium        bool                    `json:"premium"`
	Limit          int                     `json:"limit"`
	HorizonDays    int                     `json:"horizon_days"`
	CandidateCount int                     `json:"candidate_count"`
	Windows        []domain.VacationWindow `json:"windows"`
}
