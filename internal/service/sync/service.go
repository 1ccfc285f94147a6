package sync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/infra/taskqueue"
	"github.com/erphive/attendance-planner/internal/observability/metrics"
	"github.com/erphive/attendance-planner/internal/service/status"
	"github.com/erphive/attendance-planner/internal/service/threshold"
)

const (
	dispatchSuccess = "success"
	dispatchSkipped = "skipped"
	dispatchFailed  = "failed"
)

// Service ingests scraped attendance snapshots. Persisting the snapshot is
// the primary job; alert dispatch is best-effort on top of it.
type Service struct {
	repo             domain.PlannerRepository
	taskQueue        taskqueue.TaskQueue
	classifier       *status.Classifier
	defaultThreshold int
	plannerMetrics   *metrics.PlannerMetrics
}

func NewService(
	repo domain.PlannerRepository,
	taskQueue taskqueue.TaskQueue,
	classifier *status.Classifier,
	defaultThreshold int,
	plannerMetrics *metrics.PlannerMetrics,
) *Service {
	return &Service{
		repo:             repo,
		taskQueue:        taskQueue,
		classifier:       classifier,
		defaultThreshold: defaultThreshold,
		plannerMetrics:   plannerMetrics,
	}
}

// IngestSnapshot stores the snapshot, grades every subject against the
// stored thresholds and dispatches one alert per newly low subject: low
// now, but not low in the previous snapshot (or absent from it). Alert
// failures are reported in the result without failing the ingest.
func (s *Service) IngestSnapshot(ctx context.Context, studentID string, subjects []domain.Subject) (*Result, error) {
	previous, err := s.repo.GetSubjects(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrSubjectsNotFound) {
			slog.WarnContext(ctx, "failed to load previous snapshot, grading all low subjects as new",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()),
			)
		}
		previous = nil
	}

	resolver := threshold.NewResolver(s.loadThresholds(ctx, studentID))

	if err := s.repo.SaveSubjects(ctx, studentID, subjects); err != nil {
		slog.ErrorContext(ctx, "failed to persist snapshot",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		if s.plannerMetrics != nil {
			s.plannerMetrics.RecordSnapshotSynced(ctx, "failed")
		}
		return nil, err
	}

	previousStatus := make(map[string]domain.Status, len(previous))
	for _, subject := range previous {
		previousStatus[subject.Key()] = s.classifier.Classify(
			subject.Percentage, resolver.EffectiveFor(subject), subject.Total)
	}

	result := &Result{
		StudentID:    studentID,
		SubjectCount: len(subjects),
		Standings:    make([]SubjectStanding, 0, len(subjects)),
	}

	for _, subject := range subjects {
		thr := resolver.EffectiveFor(subject)
		st := s.classifier.Classify(subject.Percentage, thr, subject.Total)

		standing := SubjectStanding{
			Code:       subject.Code,
			Name:       subject.Name,
			Percentage: subject.Percentage,
			Threshold:  thr,
			Status:     st,
			Verdict:    s.classifier.VerdictFor(subject, thr),
		}

		if st.IsLow() {
			prev, known := previousStatus[subject.Key()]
			if !known || !prev.IsLow() {
				standing.NewlyLow = true

				outcome := s.dispatchAlert(ctx, studentID, subject, thr)
				if s.plannerMetrics != nil {
					s.plannerMetrics.RecordAlertDispatched(ctx, outcome)
				}
				switch outcome {
				case dispatchSuccess:
					result.AlertsDispatched++
				case dispatchFailed:
					result.AlertsFailed++
				}
			}
		}

		result.Standings = append(result.Standings, standing)
	}

	if s.plannerMetrics != nil {
		s.plannerMetrics.RecordSnapshotSynced(ctx, "success")
	}

	slog.InfoContext(ctx, "snapshot ingested",
		slog.String("student_id", studentID),
		slog.Int("subject_count", len(subjects)),
		slog.Int("alerts_dispatched", result.AlertsDispatched),
		slog.Int("alerts_failed", result.AlertsFailed),
	)

	return result, nil
}

func (s *Service) dispatchAlert(ctx context.Context, studentID string, subject domain.Subject, thr int) string {
	if s.taskQueue == nil {
		slog.WarnContext(ctx, "task queue not configured, skipping alert dispatch",
			slog.String("student_id", studentID),
			slog.String("subject", subject.Key()),
		)
		return dispatchSkipped
	}

	toAttend := s.classifier.ClassesToAttend(subject.Attended, subject.Total, thr)
	if toAttend == status.Unbounded {
		toAttend = -1
	}

	alertID := uuid.NewString()
	task := &taskqueue.AlertTask{
		AlertID:         alertID,
		TaskID:          alertID,
		StudentID:       studentID,
		SubjectCode:     subject.Code,
		SubjectName:     subject.Name,
		CurrentPct:      subject.Percentage,
		Threshold:       thr,
		ClassesToAttend: toAttend,
	}

	resp, err := s.taskQueue.RegisterAlert(ctx, task)
	if err != nil {
		slog.ErrorContext(ctx, "failed to register low-attendance alert",
			slog.String("alert_id", alertID),
			slog.String("student_id", studentID),
			slog.String("subject", subject.Key()),
			slog.String("error", err.Error()),
		)
		return dispatchFailed
	}

	slog.DebugContext(ctx, "low-attendance alert registered",
		slog.String("alert_id", alertID),
		slog.String("student_id", studentID),
		slog.String("subject", subject.Key()),
		slog.String("task_name", resp.Name),
	)
	return dispatchSuccess
}

func (s *Service) loadThresholds(ctx context.Context, studentID string) domain.ThresholdConfig {
	thresholds, err := s.repo.GetThresholds(ctx, studentID)
	if err != nil {
		if !errors.Is(err, domain.ErrThresholdsNotFound) {
			slog.WarnContext(ctx, "failed to load thresholds, using default",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()),
			)
		}
		return domain.NewThresholdConfig(s.defaultThreshold)
	}
	return thresholds
}
