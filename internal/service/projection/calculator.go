package projection

import (
	"math"

	"github.com/erphive/attendance-planner/internal/domain"
)

// Calculator computes "what if" attendance percentages for upcoming
// classes. Per-subject projections keep one decimal; the aggregate day
// outlook rounds to whole percent.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// NextClassAttend projects the percentage after attending the next class.
// With no classes held yet, the first attended class means perfect
// attendance.
func (c *Calculator) NextClassAttend(attended, total int) float64 {
	if total == 0 {
		return 100
	}
	return round1(float64(attended+1) / float64(total+1) * 100)
}

// NextClassSkip projects the percentage after missing the next class.
func (c *Calculator) NextClassSkip(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(attended) / float64(total+1) * 100)
}

// DayOutlook is the aggregate projection after one more class in every
// active subject.
type DayOutlook struct {
	AfterAttendAll int
	AfterSkipAll   int
	ActiveSubjects int
}

// NextDayOutlook aggregates the attend-all and skip-all projections across
// every subject with recorded classes. Subjects without data contribute
// nothing.
func (c *Calculator) NextDayOutlook(subjects []domain.Subject) DayOutlook {
	var attended, total, active int
	for _, s := range subjects {
		if !s.HasData() {
			continue
		}
		active++
		attended += s.Attended
		total += s.Total
	}

	out := DayOutlook{ActiveSubjects: active}
	if total+active == 0 {
		return out
	}

	out.AfterAttendAll = int(math.Round(float64(attended+active) / float64(total+active) * 100))
	out.AfterSkipAll = int(math.Round(float64(attended) / float64(total+active) * 100))
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
