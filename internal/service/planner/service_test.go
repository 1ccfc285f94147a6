package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/service/impact"
	"github.com/erphive/attendance-planner/internal/service/status"
)

func createTestService(repo domain.PlannerRepository) *Service {
	aggregator := impact.NewAggregator(status.NewClassifier())
	return NewService(repo, aggregator, 75, []int{3, 5, 7}, 3, 3)
}

func mustParseDay(t *testing.T, key string) time.Time {
	t.Helper()
	parsed, err := domain.ParseDayKey(key)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", key, err)
	}
	return parsed
}

func TestRangeImpact_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)

	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return([]domain.Subject{
			{Name: "Mathematics", Code: "MATH101", Attended: 40, Total: 48, Percentage: 83.3},
			{Name: "Physics", Code: "PHY102", Attended: 28, Total: 42, Percentage: 66.7},
		}, nil)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(domain.Timetable{
			0: {"MATH101", "PHY102"},
			1: {"PHY102"},
		}, nil)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{Global: 75}, nil)

	svc := createTestService(mockRepo)

	// Monday through Wednesday with the Tuesday marked as a holiday: only
	// Monday's two classes count.
	from := mustParseDay(t, "2025-03-03")
	to := mustParseDay(t, "2025-03-05")

	resp, err := svc.RangeImpact(context.Background(), "student-1", from, to, []string{"2025-03-04"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalDays != 3 {
		t.Errorf("TotalDays: got %d, want 3", resp.TotalDays)
	}
	if resp.ActiveDays != 1 {
		t.Errorf("ActiveDays: got %d, want 1", resp.ActiveDays)
	}
	if resp.TotalClasses != 2 {
		t.Errorf("TotalClasses: got %d, want 2", resp.TotalClasses)
	}
	if resp.BreachCount != 1 {
		t.Errorf("BreachCount: got %d, want 1", resp.BreachCount)
	}

	if len(resp.Impacts) != 2 {
		t.Fatalf("impacts: got %d, want 2", len(resp.Impacts))
	}
	// Breaching subjects sort ahead of merely dented ones.
	if resp.Impacts[0].Code != "PHY102" {
		t.Errorf("first impact: got %s, want PHY102", resp.Impacts[0].Code)
	}
	if !resp.Impacts[0].BreachesThreshold {
		t.Error("PHY102 should breach its threshold")
	}
	if resp.Impacts[1].Code != "MATH101" {
		t.Errorf("second impact: got %s, want MATH101", resp.Impacts[1].Code)
	}
	if resp.Impacts[1].ClassCount != 1 {
		t.Errorf("MATH101 class count: got %d, want 1", resp.Impacts[1].ClassCount)
	}
	if resp.Impacts[1].ProjectedBunkable != 4 {
		t.Errorf("MATH101 projected bunkable: got %d, want 4", resp.Impacts[1].ProjectedBunkable)
	}
}

func TestRangeImpact_InvertedRangeYieldsEmptySummary(t *testing.T) {
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
		Return(domain.Timetable{0: {"MATH101"}}, nil)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{Global: 75}, nil)

	svc := createTestService(mockRepo)

	from := mustParseDay(t, "2025-03-05")
	to := mustParseDay(t, "2025-03-03")

	resp, err := svc.RangeImpact(context.Background(), "student-1", from, to, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalDays != 0 || resp.ActiveDays != 0 || resp.TotalClasses != 0 {
		t.Errorf("inverted range summary: got %d/%d/%d, want zeros",
			resp.TotalDays, resp.ActiveDays, resp.TotalClasses)
	}
	if len(resp.Impacts) != 0 {
		t.Errorf("impacts: got %d, want 0", len(resp.Impacts))
	}
}

func TestRangeImpact_SubjectsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return(nil, domain.ErrSubjectsNotFound)

	svc := createTestService(mockRepo)

	resp, err := svc.RangeImpact(context.Background(), "student-1", time.Now(), time.Now(), nil)
	if !errors.Is(err, domain.ErrSubjectsNotFound) {
		t.Fatalf("expected ErrSubjectsNotFound, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
}

func expectVacationLoads(mockRepo *domain.MockPlannerRepository) {
	mockRepo.EXPECT().
		GetSubjects(gomock.Any(), "student-1").
		Return([]domain.Subject{
			{Name: "Mathematics", Code: "MATH101", Attended: 40, Total: 48, Percentage: 83.3},
		}, nil)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(domain.Timetable{
			0: {"MATH101"},
			2: {"MATH101"},
			4: {"MATH101"},
		}, nil)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{Global: 75}, nil)
}

func TestSuggestVacations_FreeTierSingleWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	expectVacationLoads(mockRepo)
	mockRepo.EXPECT().
		PremiumUntil(gomock.Any(), "student-1").
		Return(time.Time{}, nil)

	svc := createTestService(mockRepo)

	asOf := mustParseDay(t, "2025-03-02")
	resp, err := svc.SuggestVacations(context.Background(), "student-1", asOf, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Premium {
		t.Error("Premium: got true, want false")
	}
	if resp.Limit != 1 {
		t.Errorf("Limit: got %d, want 1", resp.Limit)
	}
	if len(resp.Windows) != 1 {
		t.Errorf("windows: got %d, want 1", len(resp.Windows))
	}
	if resp.HorizonDays != 21 {
		t.Errorf("HorizonDays: got %d, want 21", resp.HorizonDays)
	}
	// Sizes 3, 5 and 7 across a 21-day horizon: 19 + 17 + 15 positions.
	if resp.CandidateCount != 51 {
		t.Errorf("CandidateCount: got %d, want 51", resp.CandidateCount)
	}
	if resp.RunID != "run-1" {
		t.Errorf("RunID: got %s, want run-1", resp.RunID)
	}
	if resp.AsOf != "2025-03-02" {
		t.Errorf("AsOf: got %s, want 2025-03-02", resp.AsOf)
	}
}

func TestSuggestVacations_PremiumFullLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	expectVacationLoads(mockRepo)
	mockRepo.EXPECT().
		PremiumUntil(gomock.Any(), "student-1").
		Return(time.Now().Add(24*time.Hour), nil)

	svc := createTestService(mockRepo)

	asOf := mustParseDay(t, "2025-03-02")
	resp, err := svc.SuggestVacations(context.Background(), "student-1", asOf, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Premium {
		t.Error("Premium: got false, want true")
	}
	if resp.Limit != 3 {
		t.Errorf("Limit: got %d, want 3", resp.Limit)
	}
	if len(resp.Windows) != 3 {
		t.Fatalf("windows: got %d, want 3", len(resp.Windows))
	}

	for i := 0; i < len(resp.Windows); i++ {
		for j := i + 1; j < len(resp.Windows); j++ {
			if resp.Windows[i].Overlaps(resp.Windows[j]) {
				t.Errorf("windows %d and %d overlap: %v..%v vs %v..%v", i, j,
					resp.Windows[i].StartDate, resp.Windows[i].EndDate,
					resp.Windows[j].StartDate, resp.Windows[j].EndDate)
			}
		}
	}
}

func TestSuggestVacations_PremiumCheckFailureDegradesToFree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	expectVacationLoads(mockRepo)
	mockRepo.EXPECT().
		PremiumUntil(gomock.Any(), "student-1").
		Return(time.Time{}, errors.New("redis connection refused"))

	svc := createTestService(mockRepo)

	asOf := mustParseDay(t, "2025-03-02")
	resp, err := svc.SuggestVacations(context.Background(), "student-1", asOf, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Premium {
		t.Error("Premium after check failure: got true, want false")
	}
	if resp.Limit != 1 {
		t.Errorf("Limit: got %d, want 1", resp.Limit)
	}
}
