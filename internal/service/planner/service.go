package planner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/service/impact"
	"github.com/erphive/attendance-planner/internal/service/vacation"
)

// Service answers the planning questions: what a date range costs, and
// where low-damage vacation windows sit in the coming weeks.
type Service struct {
	repo             domain.PlannerRepository
	aggregator       *impact.Aggregator
	defaultThreshold int
	windowSizes      []int
	weeksAhead       int
	suggestionLimit  int
}

func NewService(
	repo domain.PlannerRepository,
	aggregator *impact.Aggregator,
	defaultThreshold int,
	windowSizes []int,
	weeksAhead int,
	suggestionLimit int,
) *Service {
	return &Service{
		repo:             repo,
		aggregator:       aggregator,
		defaultThreshold: defaultThreshold,
		windowSizes:      windowSizes,
		weeksAhead:       weeksAhead,
		suggestionLimit:  suggestionLimit,
	}
}

// RangeImpact computes the damage of skipping every class between from and
// to inclusive, with the caller's holidays excluded from counting. An
// inverted range yields an empty summary, not an error.
func (s *Service) RangeImpact(ctx context.Context, studentID string, from, to time.Time, holidays []string) (*ImpactResponse, error) {
	subjects, err := s.repo.GetSubjects(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrSubjectsNotFound) {
			slog.ErrorContext(ctx, "failed to load subject snapshot",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	timetable, thresholds := s.loadPlanningInputs(ctx, studentID)

	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h] = struct{}{}
	}

	days := domain.BuildCalendarDays(from, to, holidaySet)
	summary := s.aggregator.Compute(days, timetable, subjects, thresholds)

	slog.DebugContext(ctx, "range impact computed",
		slog.String("student_id", studentID),
		slog.Int("total_days", summary.TotalDays),
		slog.Int("active_days", summary.ActiveDays),
		slog.Int("total_classes", summary.TotalClasses),
	)

	return &ImpactResponse{
		StudentID:    studentID,
		From:         domain.DayKey(from),
		To:           domain.DayKey(to),
		TotalDays:    summary.TotalDays,
		ActiveDays:   summary.ActiveDays,
		TotalClasses: summary.TotalClasses,
		BreachCount:  breachCount(summary.Impacts),
		Impacts:      summary.Impacts,
	}, nil
}

// SuggestVacations runs the window search as of the given day. The free
// tier gets the single best window; premium unlocks the configured limit.
// runID ties the response to its analytics records.
func (s *Service) SuggestVacations(ctx context.Context, studentID string, asOf time.Time, runID string) (*VacationResponse, error) {
	subjects, err := s.repo.GetSubjects(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrSubjectsNotFound) {
			slog.ErrorContext(ctx, "failed to load subject snapshot",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	timetable, thresholds := s.loadPlanningInputs(ctx, studentID)

	premium := s.isPremium(ctx, studentID)
	limit := 1
	if premium {
		limit = s.suggestionLimit
	}

	search := vacation.NewSearch(s.aggregator, s.windowSizes, s.weeksAhead, limit)
	windows := search.FindBestWindows(ctx, asOf, timetable, subjects, thresholds)

	slog.InfoContext(ctx, "vacation windows suggested",
		slog.String("student_id", studentID),
		slog.String("run_id", runID),
		slog.Bool("premium", premium),
		slog.Int("selected", len(windows)),
	)

	return &VacationResponse{
		StudentID:      studentID,
		AsOf:           domain.DayKey(asOf),
		RunID:          runID,
		Premium:        premium,
		Limit:          limit,
		HorizonDays:    s.weeksAhead * 7,
		CandidateCount: s.candidateCount(),
		Windows:        windows,
	}, nil
}

// isPremium checks the subscription against the real clock; virtual time
// only steers planning, never entitlements. Check failures degrade to the
// free tier.
func (s *Service) isPremium(ctx context.Context, studentID string) bool {
	until, err := s.repo.PremiumUntil(ctx, studentID)
	if err != nil {
		slog.WarnContext(ctx, "failed to check premium status, applying free tier",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return until.After(time.Now())
}

// candidateCount mirrors the search loop arithmetic: one candidate per
// start day that fits each window size inside the horizon.
func (s *Service) candidateCount() int {
	horizonDays := s.weeksAhead * 7
	var n int
	for _, size := range s.windowSizes {
		if positions := horizonDays - size + 1; positions > 0 {
			n += positions
		}
	}
	return n
}

func (s *Service) loadPlanningInputs(ctx context.Context, studentID string) (domain.Timetable, domain.ThresholdConfig) {
	timetable, err := s.repo.GetTimetable(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrTimetableNotFound) {
			slog.WarnContext(ctx, "failed to load timetable, treating as empty",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()),
			)
		}
		timetable = domain.Timetable{}
	}

	thresholds, err := s.repo.GetThresholds(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrThresholdsNotFound) {
			slog.WarnContext(ctx, "failed to load thresholds, using default",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()),
			)
		}
		thresholds = domain.NewThresholdConfig(s.defaultThreshold)
	}

	return timetable, thresholds
}

func breachCount(impacts []domain.SubjectImpact) int {
	var n int
	for _, imp := range impacts {
		if imp.BreachesThreshold && !imp.IsNoData {
			n++
		}
	}
	return n
}
