package dashboard

import (
	"github.com/erphive/attendance-planner/internal/domain"
)

// SubjectRow is one subject's full standing on the dashboard. Bunkable and
// ClassesToAttend are nil when no finite count exists: no floor under
// attendance, or a threshold at 100 or above that attendance cannot reach.
type SubjectRow struct {
	Code               string         `json:"code"`
	Name               string         `json:"name"`
	Attended           int            `json:"attended"`
	Total              int            `json:"total"`
	Percentage         float64        `json:"percentage"`
	Threshold          int            `json:"threshold"`
	Status             domain.Status  `json:"status"`
	Verdict            domain.Verdict `json:"verdict"`
	Bunkable           *int           `json:"bunkable"`
	ClassesToAttend    *int           `json:"classes_to_attend"`
	ThresholdReachable bool           `json:"threshold_reachable"`
	NextClassAttendPct float64        `json:"next_class_attend_pct"`
	NextClassSkipPct   float64        `json:"next_class_skip_pct"`
}

type Totals struct {
	Attended       int     `json:"attended"`
	Total          int     `json:"total"`
	Percentage     float64 `json:"percentage"`
	ActiveSubjects int     `json:"active_subjects"`
}

// TomorrowSlot is one scheduled class on the next calendar day.
type TomorrowSlot struct {
	SubjectCode string         `json:"subject_code"`
	SubjectName string         `json:"subject_name"`
	Verdict     domain.Verdict `json:"verdict"`
}

// Tomorrow carries the next day's schedule and the aggregate projections
// for attending or skipping everything on it.
type Tomorrow struct {
	Date           string         `json:"date"`
	Slots          []TomorrowSlot `json:"slots"`
	AfterAttendAll int            `json:"after_attend_all"`
	AfterSkipAll   int            `json:"after_skip_all"`
}

type Response struct {
	StudentID string       `json:"student_id"`
	AsOf      string       `json:"as_of"`
	Subjects  []SubjectRow `json:"subjects"`
	Totals    Totals       `json:"totals"`
	Tomorrow  Tomorrow     `json:"tomorrow"`
}
