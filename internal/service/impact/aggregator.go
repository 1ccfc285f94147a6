package impact

import (
	"sort"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/service/status"
	"github.com/erphive/attendance-planner/internal/service/threshold"
)

// Aggregator computes the per-subject damage of missing every scheduled
// class across a date range.
type Aggregator struct {
	classifier *status.Classifier
}

func NewAggregator(classifier *status.Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// Summary is the aggregate missed-class picture for a date range.
type Summary struct {
	Impacts      []domain.SubjectImpact
	TotalClasses int
	ActiveDays   int
	TotalDays    int
}

// Compute tallies the classes missed per subject across days and derives
// each subject's impact. Sundays and holidays carry no classes; timetable
// codes with no matching subject are dropped without signal. The output
// ordering is deterministic for identical inputs.
func (a *Aggregator) Compute(
	days []domain.CalendarDay,
	timetable domain.Timetable,
	subjects []domain.Subject,
	thresholds domain.ThresholdConfig,
) Summary {
	summary := Summary{
		Impacts:   []domain.SubjectImpact{},
		TotalDays: len(days),
	}

	missed := make(map[string]int)
	for _, day := range days {
		if !day.Countable() {
			continue
		}
		codes := timetable.CodesFor(day.TimetableIndex)
		if len(codes) == 0 {
			continue
		}
		summary.ActiveDays++
		summary.TotalClasses += len(codes)
		for _, code := range codes {
			missed[code]++
		}
	}

	resolver := threshold.NewResolver(thresholds)
	for _, subject := range subjects {
		count := missed[subject.Key()]
		if count == 0 {
			continue
		}
		summary.Impacts = append(summary.Impacts,
			a.impactFor(subject, count, resolver.EffectiveFor(subject)))
	}

	sortImpacts(summary.Impacts)
	return summary
}

func (a *Aggregator) impactFor(subject domain.Subject, count, thr int) domain.SubjectImpact {
	impact := domain.SubjectImpact{
		Code:       subject.Code,
		Name:       subject.Name,
		ClassCount: count,
	}

	if !subject.HasData() {
		impact.IsNoData = true
		return impact
	}

	currentPct := float64(subject.Attended) / float64(subject.Total) * 100
	projectedPct := float64(subject.Attended) / float64(subject.Total+count) * 100

	impact.CurrentPct = currentPct
	impact.ProjectedPct = projectedPct
	impact.Drop = currentPct - projectedPct
	impact.CurrentBunkable = a.classifier.ClassesToBunk(subject.Attended, subject.Total, thr)
	impact.ProjectedBunkable = a.classifier.ClassesToBunk(subject.Attended, subject.Total+count, thr)
	impact.BreachesThreshold = projectedPct < float64(thr)
	return impact
}

// sortImpacts surfaces the most damaging subjects first: entries without
// data go last; among data entries, threshold breaches lead; ties break by
// descending drop.
func sortImpacts(impacts []domain.SubjectImpact) {
	sort.SliceStable(impacts, func(i, j int) bool {
		a, b := impacts[i], impacts[j]
		if a.IsNoData != b.IsNoData {
			return !a.IsNoData
		}
		if a.BreachesThreshold != b.BreachesThreshold {
			return a.BreachesThreshold
		}
		return a.Drop > b.Drop
	})
}
