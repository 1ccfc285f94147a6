package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/erphive/attendance-planner/internal/domain"
)

func setupSettingsRouter(repo domain.PlannerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewSettingsHandler(repo, 75)

	r := gin.New()
	r.GET("/students/:student_id/timetable", h.HandleGetTimetable)
	r.PUT("/students/:student_id/timetable", h.HandlePutTimetable)
	r.GET("/students/:student_id/thresholds", h.HandleGetThresholds)
	r.PUT("/students/:student_id/thresholds", h.HandlePutThresholds)

	return r
}

func performRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestHandlePutThresholds_StoresValidConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		SaveThresholds(gomock.Any(), "student-1", domain.ThresholdConfig{
			Global:    75,
			Overrides: map[string]int{"PHY102": 80},
		}).
		Return(nil)

	r := setupSettingsRouter(mockRepo)

	w := performRequest(t, r, http.MethodPut, "/students/student-1/thresholds",
		`{"global": 75, "overrides": {"PHY102": 80}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", w.Code, w.Body.String())
	}
}

func TestHandlePutThresholds_RejectsOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	// No save may happen for rejected payloads.

	r := setupSettingsRouter(mockRepo)

	tests := []struct {
		name string
		body string
	}{
		{name: "global above 100", body: `{"global": 101}`},
		{name: "global negative", body: `{"global": -5}`},
		{name: "global missing", body: `{"overrides": {"PHY102": 80}}`},
		{name: "override above 100", body: `{"global": 75, "overrides": {"PHY102": 140}}`},
		{name: "override negative", body: `{"global": 75, "overrides": {"PHY102": -1}}`},
		{name: "empty override key", body: `{"global": 75, "overrides": {"": 80}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, r, http.MethodPut, "/students/student-1/thresholds", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestHandlePutThresholds_AcceptsZeroGlobal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		SaveThresholds(gomock.Any(), "student-1", domain.ThresholdConfig{Global: 0}).
		Return(nil)

	r := setupSettingsRouter(mockRepo)

	w := performRequest(t, r, http.MethodPut, "/students/student-1/thresholds", `{"global": 0}`)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", w.Code, w.Body.String())
	}
}

func TestHandlePutTimetable_StoresDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		SaveTimetable(gomock.Any(), "student-1", domain.Timetable{
			0: {"MATH101", "PHY102"},
			2: {"MATH101"},
		}).
		Return(nil)

	r := setupSettingsRouter(mockRepo)

	w := performRequest(t, r, http.MethodPut, "/students/student-1/timetable",
		`{"0": ["MATH101", "PHY102"], "2": ["MATH101"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", w.Code, w.Body.String())
	}
}

func TestHandlePutTimetable_RejectsBadKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)

	r := setupSettingsRouter(mockRepo)

	tests := []struct {
		name string
		body string
	}{
		{name: "sunday index", body: `{"6": ["MATH101"]}`},
		{name: "negative index", body: `{"-1": ["MATH101"]}`},
		{name: "non numeric key", body: `{"monday": ["MATH101"]}`},
		{name: "empty subject entry", body: `{"0": [""]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, r, http.MethodPut, "/students/student-1/timetable", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d, body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleGetThresholds_DefaultsWhenUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		GetThresholds(gomock.Any(), "student-1").
		Return(domain.ThresholdConfig{}, domain.ErrThresholdsNotFound)

	r := setupSettingsRouter(mockRepo)

	w := performRequest(t, r, http.MethodGet, "/students/student-1/thresholds", "")

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"global":75`) {
		t.Errorf("expected default global 75, got body %s", w.Body.String())
	}
}

func TestHandleGetTimetable_EmptyWhenUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := domain.NewMockPlannerRepository(ctrl)
	mockRepo.EXPECT().
		GetTimetable(gomock.Any(), "student-1").
		Return(nil, domain.ErrTimetableNotFound)

	r := setupSettingsRouter(mockRepo)

	w := performRequest(t, r, http.MethodGet, "/students/student-1/timetable", "")

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "{}" {
		t.Errorf("expected empty timetable object, got %s", body)
	}
}
