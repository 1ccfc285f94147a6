package domain

// SubjectImpact describes how missing every scheduled class of one subject
// across a date range would move its attendance.
type SubjectImpact struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	ClassCount        int     `json:"class_count"`
	CurrentPct        float64 `json:"current_pct"`
	ProjectedPct      float64 `json:"projected_pct"`
	Drop              float64 `json:"drop"`
	CurrentBunkable   int     `json:"current_bunkable"`
	ProjectedBunkable int     `json:"projected_bunkable"`
	BreachesThreshold bool    `json:"breaches_threshold"`
	IsNoData          bool    `json:"is_no_data"`
}

// SubjectKey mirrors Subject.Key for the subject this impact was computed
// from.
func (i SubjectImpact) SubjectKey() string {
	if i.Code != "" {
		return i.Code
	}
	return i.Name
}
