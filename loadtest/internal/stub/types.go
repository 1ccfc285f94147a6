package stub

import "time"

// SeedStudent describes one synthetic student: SubjectCount subjects in
// total, of which LowCount sit below the default threshold so syncing the
// snapshot dispatches that many alerts.
type SeedStudent struct {
	StudentID    string `json:"student_id"`
	SubjectCount int    `json:"subject_count"`
	LowCount     int    `json:"low_count"`
}

type SeedRequest struct {
	Students []SeedStudent `json:"students"`
}

type SubjectSeed struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// SnapshotResponse is shaped so a load driver can PUT it to the subjects
// endpoint unchanged.
type SnapshotResponse struct {
	StudentID string        `json:"student_id"`
	Subjects  []SubjectSeed `json:"subjects"`
}

type ReceivedAlert struct {
	TaskID      string    `json:"task_id"`
	StudentID   string    `json:"student_id"`
	SubjectCode string    `json:"subject_code"`
	CurrentPct  float64   `json:"current_pct"`
	ReceivedAt  time.Time `json:"received_at"`
}

type StatsResponse struct {
	RunID        string         `json:"run_id"`
	StudentCount int            `json:"student_count"`
	AlertCount   int            `json:"alert_count"`
	ByStudent    map[string]int `json:"by_student,omitempty"`
}
