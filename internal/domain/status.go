package domain

// Status represents a subject's attendance standing against its threshold.
type Status string

const (
	StatusSafe     Status = "safe"
	StatusCritical Status = "critical"
	StatusLow      Status = "low"
	StatusNoData   Status = "no_data"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsSafe() bool {
	return s == StatusSafe
}

func (s Status) IsCritical() bool {
	return s == StatusCritical
}

func (s Status) IsLow() bool {
	return s == StatusLow
}

func (s Status) IsNoData() bool {
	return s == StatusNoData
}

// Verdict is the per-slot recommendation derived from a subject's standing.
type Verdict string

const (
	VerdictSkip   Verdict = "skip"
	VerdictRisky  Verdict = "risky"
	VerdictAttend Verdict = "attend"
	VerdictNoData Verdict = "no_data"
)

func (v Verdict) String() string {
	return string(v)
}
