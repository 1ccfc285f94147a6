package domain

// Subject is one attendance-tracked course from a student's latest
// snapshot. Percentage is carried as fetched; consumers recompute it
// from the counters where exactness matters.
type Subject struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Key identifies the subject across snapshots, timetables and threshold
// overrides: the code when present, otherwise the name.
func (s Subject) Key() string {
	if s.Code != "" {
		return s.Code
	}
	return s.Name
}

func (s Subject) HasData() bool {
	return s.Total > 0
}
