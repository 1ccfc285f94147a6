package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/service/projection"
	"github.com/erphive/attendance-planner/internal/service/status"
)

func createTestService(repo domain.PlannerRepository) *Service {
	return NewService(repo, status.NewClassifier(), projection.NewCalculator(), 75, nil)
}

// mustParseDay fails the test rather than returning an error for fixture
// dates.
func mustParseDay(t *testing.T, key string) time.Time {
	t.Helper()
	parsed, err := domain.ParseDayKey(key)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", key, err)
	}
	return parsed
}

func TestBuild_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)

	subjects := []domain.Subject{
		{Name: "Mathematics", Code: "MATH101", Attended: 40, Total: 48, Percentage: 83.3},
		{Name: "Physics", Code: "PHY102", Attended: 30, Total: 42, Percentage: 71.4},
		{Name: "Seminar", Code: "SEM201", Attended: 0, Total: 0, Percentage: 0},
	}

	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return(subjects, nil)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(domain.Timetable{
			0: {"MATH101", "PHY102"},
			1: {"PHY102"},
		}, nil)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{Global: 75, Overrides: map[string]int{"PHY102": 70}}, nil)

	svc := createTestService(mockRepo)

	// Sunday, so tomorrow is the Monday row.
	asOf := mustParseDay(t, "2025-03-02")

	resp, err := svc.Build(context.Background(), "student-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Subjects) != 3 {
		t.Fatalf("subject rows: got %d, want 3", len(resp.Subjects))
	}

	math101 := resp.Subjects[0]
	if math101.Status != domain.StatusSafe {
		t.Errorf("MATH101 status: got %s, want safe", math101.Status)
	}
	if math101.Verdict != domain.VerdictSkip {
		t.Errorf("MATH101 verdict: got %s, want skip", math101.Verdict)
	}
	if math101.Bunkable == nil || *math101.Bunkable != 5 {
		t.Errorf("MATH101 bunkable: got %v, want 5", math101.Bunkable)
	}
	if math101.ClassesToAttend == nil || *math101.ClassesToAttend != 0 {
		t.Errorf("MATH101 classes_to_attend: got %v, want 0", math101.ClassesToAttend)
	}
	if !math101.ThresholdReachable {
		t.Error("MATH101 threshold_reachable: got false, want true")
	}
	if math101.NextClassAttendPct != 83.7 {
		t.Errorf("MATH101 next attend pct: got %v, want 83.7", math101.NextClassAttendPct)
	}

	phy102 := resp.Subjects[1]
	if phy102.Threshold != 70 {
		t.Errorf("PHY102 effective threshold: got %d, want override 70", phy102.Threshold)
	}
	if phy102.Status != domain.StatusCritical {
		t.Errorf("PHY102 status: got %s, want critical", phy102.Status)
	}

	sem201 := resp.Subjects[2]
	if sem201.Status != domain.StatusNoData {
		t.Errorf("SEM201 status: got %s, want no_data", sem201.Status)
	}
	if sem201.Verdict != domain.VerdictNoData {
		t.Errorf("SEM201 verdict: got %s, want no_data", sem201.Verdict)
	}

	if resp.Totals.Attended != 70 || resp.Totals.Total != 90 {
		t.Errorf("totals: got %d/%d, want 70/90", resp.Totals.Attended, resp.Totals.Total)
	}
	if resp.Totals.Percentage != 77.8 {
		t.Errorf("total percentage: got %v, want 77.8", resp.Totals.Percentage)
	}
	if resp.Totals.ActiveSubjects != 2 {
		t.Errorf("active subjects: got %d, want 2", resp.Totals.ActiveSubjects)
	}

	if resp.Tomorrow.Date != "2025-03-03" {
		t.Errorf("tomorrow date: got %s, want 2025-03-03", resp.Tomorrow.Date)
	}
	if len(resp.Tomorrow.Slots) != 2 {
		t.Fatalf("tomorrow slots: got %d, want 2", len(resp.Tomorrow.Slots))
	}
	if resp.Tomorrow.Slots[0].SubjectCode != "MATH101" || resp.Tomorrow.Slots[1].SubjectCode != "PHY102" {
		t.Errorf("tomorrow slot order: got %s, %s",
			resp.Tomorrow.Slots[0].SubjectCode, resp.Tomorrow.Slots[1].SubjectCode)
	}
}

func TestBuild_SubjectsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return(nil, domain.ErrSubjectsNotFound)

	svc := createTestService(mockRepo)

	resp, err := svc.Build(context.Background(), "student-1", time.Now())
	if !errors.Is(err, domain.ErrSubjectsNotFound) {
		t.Fatalf("expected ErrSubjectsNotFound, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
}

func TestBuild_DegradesOnMissingPlanningInputs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)

	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return([]domain.Subject{
			{Name: "Mathematics", Code: "MATH101", Attended: 36, Total: 48, Percentage: 75},
		}, nil)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(nil, domain.ErrTimetableNotFound)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{}, domain.ErrThresholdsNotFound)

	svc := createTestService(mockRepo)

	asOf := mustParseDay(t, "2025-03-02")
	resp, err := svc.Build(context.Background(), "student-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Default threshold 75 applies: exactly at threshold grades critical.
	if resp.Subjects[0].Threshold != 75 {
		t.Errorf("threshold: got %d, want default 75", resp.Subjects[0].Threshold)
	}
	if resp.Subjects[0].Status != domain.StatusCritical {
		t.Errorf("status: got %s, want critical", resp.Subjects[0].Status)
	}
	if len(resp.Tomorrow.Slots) != 0 {
		t.Errorf("tomorrow slots without timetable: got %d, want 0", len(resp.Tomorrow.Slots))
	}
}

func TestBuild_UnreachableThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)

	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return([]domain.Subject{
			{Name: "Lab", Code: "LAB301", Attended: 5, Total: 10, Percentage: 50},
		}, nil)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(domain.Timetable{}, nil)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{Global: 100}, nil)

	svc := createTestService(mockRepo)

	resp, err := svc.Build(context.Background(), "student-1", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := resp.Subjects[0]
	if row.ClassesToAttend != nil {
		t.Errorf("classes_to_attend at threshold 100: got %v, want nil", row.ClassesToAttend)
	}
	if row.ThresholdReachable {
		t.Error("threshold_reachable at threshold 100: got true, want false")
	}
	if row.Bunkable == nil || *row.Bunkable != 0 {
		t.Errorf("bunkable: got %v, want 0", row.Bunkable)
	}
}

func TestBuild_TomorrowDropsUnknownCodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)

	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return([]domain.Subject{
			{Name: "Mathematics", Code: "MATH101", Attended: 40, Total: 48, Percentage: 83.3},
		}, nil)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(domain.Timetable{0: {"MATH101", "GHOST999"}}, nil)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{Global: 75}, nil)

	svc := createTestService(mockRepo)

	asOf := mustParseDay(t, "2025-03-02")
	resp, err := svc.Build(context.Background(), "student-1", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Tomorrow.Slots) != 1 {
		t.Fatalf("tomorrow slots: got %d, want 1 (unknown code dropped)", len(resp.Tomorrow.Slots))
	}
	if resp.Tomorrow.Slots[0].SubjectCode != "MATH101" {
		t.Errorf("slot subject: got %s, want MATH101", resp.Tomorrow.Slots[0].SubjectCode)
	}
}
