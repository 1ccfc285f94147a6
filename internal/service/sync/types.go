package sync

import (
	"github.com/erphive/attendance-planner/internal/domain"
)

// SubjectStanding is one subject's graded state right after a snapshot
// lands. NewlyLow marks subjects that crossed below their threshold with
// this snapshot and triggered an alert.
type SubjectStanding struct {
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Percentage float64        `json:"percentage"`
	Threshold  int            `json:"threshold"`
	Status     domain.Status  `json:"status"`
	Verdict    domain.Verdict `json:"verdict"`
	NewlyLow   bool           `json:"newly_low"`
}

type Result struct {
	StudentID        string            `json:"student_id"`
	SubjectCount     int               `json:"subject_count"`
	Standings        []SubjectStanding `json:"standings"`
	AlertsDispatched int               `json:"alerts_dispatched"`
	AlertsFailed     int               `json:"alerts_failed"`
}
