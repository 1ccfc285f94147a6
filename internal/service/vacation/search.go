package vacation

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/service/impact"
	"github.com/erphive/attendance-planner/internal/service/threshold"
)

// Penalty weights by how much margin a subject holds over its threshold
// before the window. Windows that damage already-at-risk subjects cost
// far more than windows spending comfortable slack.
const (
	weightBelowThreshold = 3
	weightTightMargin    = 2
	weightComfortable    = 1

	// tightMarginPct is the margin below which a subject still above its
	// threshold counts as tight.
	tightMarginPct = 5
)

// Search scans a bounded future horizon for low-damage vacation windows.
type Search struct {
	aggregator  *impact.Aggregator
	windowSizes []int
	weeksAhead  int
	maxResults  int
}

func NewSearch(aggregator *impact.Aggregator, windowSizes []int, weeksAhead, maxResults int) *Search {
	if len(windowSizes) == 0 {
		windowSizes = []int{3, 5, 7}
	}
	if weeksAhead <= 0 {
		weeksAhead = 3
	}
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Search{
		aggregator:  aggregator,
		windowSizes: windowSizes,
		weeksAhead:  weeksAhead,
		maxResults:  maxResults,
	}
}

// FindBestWindows slides a window of every configured size across the
// horizon (tomorrow through now plus the configured weeks), scores each
// position and greedily keeps the lowest-penalty non-overlapping ones.
// Holiday markings do not apply here: suggestions precede them. An empty
// result means no window fits the horizon, not an error.
func (s *Search) FindBestWindows(
	ctx context.Context,
	now time.Time,
	timetable domain.Timetable,
	subjects []domain.Subject,
	thresholds domain.ThresholdConfig,
) []domain.VacationWindow {
	today := domain.DateOnly(now)
	horizonStart := today.AddDate(0, 0, 1)
	horizonEnd := today.AddDate(0, 0, s.weeksAhead*7)

	resolver := threshold.NewResolver(thresholds)

	var candidates []domain.VacationWindow
	for _, size := range s.windowSizes {
		for start := horizonStart; !start.AddDate(0, 0, size-1).After(horizonEnd); start = start.AddDate(0, 0, 1) {
			end := start.AddDate(0, 0, size-1)

			days := domain.BuildCalendarDays(start, end, nil)
			summary := s.aggregator.Compute(days, timetable, subjects, thresholds)

			candidates = append(candidates, domain.VacationWindow{
				StartDate:    start,
				EndDate:      end,
				Duration:     size,
				TotalClasses: summary.TotalClasses,
				AtRiskCount:  atRiskCount(summary.Impacts),
				Penalty:      scoreWindow(summary.Impacts, resolver),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Penalty < candidates[j].Penalty
	})

	selected := selectNonOverlapping(candidates, s.maxResults)

	slog.DebugContext(ctx, "vacation window search finished",
		slog.Time("horizon_start", horizonStart),
		slog.Time("horizon_end", horizonEnd),
		slog.Int("candidates", len(candidates)),
		slog.Int("selected", len(selected)),
	)

	return selected
}

// scoreWindow sums drop x weight x classCount over every affected subject
// with data. Lower is better.
func scoreWindow(impacts []domain.SubjectImpact, resolver *threshold.Resolver) float64 {
	var penalty float64
	for _, imp := range impacts {
		if imp.IsNoData {
			continue
		}

		margin := imp.CurrentPct - float64(resolver.Effective(imp.SubjectKey()))
		weight := weightComfortable
		switch {
		case margin < 0:
			weight = weightBelowThreshold
		case margin < tightMarginPct:
			weight = weightTightMargin
		}

		penalty += imp.Drop * float64(weight) * float64(imp.ClassCount)
	}
	return penalty
}

func atRiskCount(impacts []domain.SubjectImpact) int {
	var n int
	for _, imp := range impacts {
		if imp.BreachesThreshold && !imp.IsNoData {
			n++
		}
	}
	return n
}

// selectNonOverlapping keeps up to limit windows in candidate order,
// discarding any that shares a date with an already-kept window.
func selectNonOverlapping(candidates []domain.VacationWindow, limit int) []domain.VacationWindow {
	selected := make([]domain.VacationWindow, 0, limit)
	for _, cand := range candidates {
		if len(selected) >= limit {
			break
		}

		overlaps := false
		for _, sel := range selected {
			if cand.Overlaps(sel) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			selected = append(selected, cand)
		}
	}
	return selected
}
