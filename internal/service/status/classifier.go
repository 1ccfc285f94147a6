package status

import (
	"math"

	"github.com/erphive/attendance-planner/internal/domain"
)

const (
	// SafetyBufferPct is the margin (in percentage points) above the
	// threshold a subject must hold to grade as safe rather than critical.
	SafetyBufferPct = 5
)

// Unbounded marks a class count with no finite answer: classes-to-attend
// when the threshold is unreachable, classes-to-bunk when the threshold
// puts no floor under attendance.
const Unbounded = math.MaxInt

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify grades a percentage against the threshold. A subject with no
// classes held yet has no meaningful percentage and grades as no-data.
func (c *Classifier) Classify(percentage float64, threshold, total int) domain.Status {
	if total == 0 {
		return domain.StatusNoData
	}
	if percentage >= float64(threshold+SafetyBufferPct) {
		return domain.StatusSafe
	}
	if percentage >= float64(threshold) {
		return domain.StatusCritical
	}
	return domain.StatusLow
}

// ClassesToBunk returns how many additional classes may be missed while
// attended/(total+k) stays at or above threshold percent. The floor-based
// bound is kept as-is even where a ceiling would be stricter at exact
// threshold boundaries.
func (c *Classifier) ClassesToBunk(attended, total, threshold int) int {
	if threshold <= 0 {
		return Unbounded
	}
	k := attended*100/threshold - total
	if k < 0 {
		return 0
	}
	return k
}

// ClassesToAttend returns the minimum consecutive classes to attend for
// (attended+k)/(total+k) to reach threshold percent. A threshold of 100 or
// above is unreachable by finite attendance and yields Unbounded.
func (c *Classifier) ClassesToAttend(attended, total, threshold int) int {
	if threshold >= 100 {
		return Unbounded
	}
	num := total*threshold - attended*100
	if num <= 0 {
		return 0
	}
	den := 100 - threshold
	return (num + den - 1) / den
}

// VerdictFor recommends whether the subject's next scheduled class can be
// skipped. Safe standing alone is not enough: there must be bunkable
// headroom left.
func (c *Classifier) VerdictFor(subject domain.Subject, threshold int) domain.Verdict {
	if !subject.HasData() {
		return domain.VerdictNoData
	}

	st := c.Classify(subject.Percentage, threshold, subject.Total)
	switch {
	case st.IsSafe() && c.ClassesToBunk(subject.Attended, subject.Total, threshold) > 0:
		return domain.VerdictSkip
	case st.IsLow():
		return domain.VerdictAttend
	default:
		return domain.VerdictRisky
	}
}
