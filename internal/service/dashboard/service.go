package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/observability/metrics"
	"github.com/erphive/attendance-planner/internal/service/projection"
	"github.com/erphive/attendance-planner/internal/service/status"
	"github.com/erphive/attendance-planner/internal/service/threshold"
)

// Service assembles the per-student dashboard from the latest stored
// snapshot. Everything is recomputed per call; nothing derived is cached.
type Service struct {
	repo             domain.PlannerRepository
	classifier       *status.Classifier
	projector        *projection.Calculator
	defaultThreshold int
	plannerMetrics   *metrics.PlannerMetrics
}

func NewService(
	repo domain.PlannerRepository,
	classifier *status.Classifier,
	projector *projection.Calculator,
	defaultThreshold int,
	plannerMetrics *metrics.PlannerMetrics,
) *Service {
	return &Service{
		repo:             repo,
		classifier:       classifier,
		projector:        projector,
		defaultThreshold: defaultThreshold,
		plannerMetrics:   plannerMetrics,
	}
}

// Build computes the dashboard as of the given day. A missing snapshot is
// the caller's signal to sync first and surfaces as ErrSubjectsNotFound;
// missing timetable or thresholds degrade to an empty schedule and the
// default threshold instead.
func (s *Service) Build(ctx context.Context, studentID string, asOf time.Time) (*Response, error) {
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
	resolver := threshold.NewResolver(thresholds)

	rows := make([]SubjectRow, 0, len(subjects))
	var attendedSum, totalSum int
	for _, subject := range subjects {
		thr := resolver.EffectiveFor(subject)
		row := s.buildRow(subject, thr)

		if s.plannerMetrics != nil {
			s.plannerMetrics.RecordVerdict(ctx, row.Verdict.String())
		}

		attendedSum += subject.Attended
		totalSum += subject.Total
		rows = append(rows, row)
	}

	outlook := s.projector.NextDayOutlook(subjects)

	resp := &Response{
		StudentID: studentID,
		AsOf:      domain.DayKey(asOf),
		Subjects:  rows,
		Totals: Totals{
			Attended:       attendedSum,
			Total:          totalSum,
			Percentage:     overallPct(attendedSum, totalSum),
			ActiveSubjects: outlook.ActiveSubjects,
		},
		Tomorrow: s.buildTomorrow(asOf, timetable, subjects, resolver, outlook),
	}

	slog.DebugContext(ctx, "dashboard built",
		slog.String("student_id", studentID),
		slog.Int("subject_count", len(rows)),
	)

	return resp, nil
}

func (s *Service) buildRow(subject domain.Subject, thr int) SubjectRow {
	row := SubjectRow{
		Code:               subject.Code,
		Name:               subject.Name,
		Attended:           subject.Attended,
		Total:              subject.Total,
		Percentage:         subject.Percentage,
		Threshold:          thr,
		Status:             s.classifier.Classify(subject.Percentage, thr, subject.Total),
		Verdict:            s.classifier.VerdictFor(subject, thr),
		NextClassAttendPct: s.projector.NextClassAttend(subject.Attended, subject.Total),
		NextClassSkipPct:   s.projector.NextClassSkip(subject.Attended, subject.Total),
	}

	if bunkable := s.classifier.ClassesToBunk(subject.Attended, subject.Total, thr); bunkable != status.Unbounded {
		row.Bunkable = &bunkable
	}
	if toAttend := s.classifier.ClassesToAttend(subject.Attended, subject.Total, thr); toAttend != status.Unbounded {
		row.ClassesToAttend = &toAttend
		row.ThresholdReachable = true
	}
	return row
}

// buildTomorrow lists tomorrow's scheduled classes with per-slot verdicts.
// Timetable codes with no matching subject in the snapshot are dropped.
func (s *Service) buildTomorrow(
	asOf time.Time,
	timetable domain.Timetable,
	subjects []domain.Subject,
	resolver *threshold.Resolver,
	outlook projection.DayOutlook,
) Tomorrow {
	tomorrow := domain.DateOnly(asOf).AddDate(0, 0, 1)

	byKey := make(map[string]domain.Subject, len(subjects))
	for _, subject := range subjects {
		byKey[subject.Key()] = subject
	}

	slots := make([]TomorrowSlot, 0)
	for _, code := range timetable.CodesFor(domain.TimetableIndexFor(tomorrow.Weekday())) {
		subject, ok := byKey[code]
		if !ok {
			continue
		}
		slots = append(slots, TomorrowSlot{
			SubjectCode: subject.Code,
			SubjectName: subject.Name,
			Verdict:     s.classifier.VerdictFor(subject, resolver.EffectiveFor(subject)),
		})
	}

	return Tomorrow{
		Date:           domain.DayKey(tomorrow),
		Slots:          slots,
		AfterAttendAll: outlook.AfterAttendAll,
		AfterSkipAll:   outlook.AfterSkipAll,
	}
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

func overallPct(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*10) / 10
}
