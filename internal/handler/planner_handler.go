package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/erphive/attendance-planner/internal/config"
	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/observability/logging"
	"github.com/erphive/attendance-planner/internal/observability/metrics"
	"github.com/erphive/attendance-planner/internal/observability/tracing"
	"github.com/erphive/attendance-planner/internal/service/planner"
)

type PlannerHandler struct {
	plannerService *planner.Service
	config         *config.Config
	plannerMetrics *metrics.PlannerMetrics
	searchRecorder domain.SearchResultRecorder
}

func NewPlannerHandler(
	plannerService *planner.Service,
	cfg *config.Config,
	plannerMetrics *metrics.PlannerMetrics,
	searchRecorder domain.SearchResultRecorder,
) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
		config:         cfg,
		plannerMetrics: plannerMetrics,
		searchRecorder: searchRecorder,
	}
}

type impactRequest struct {
	From     string   `json:"from" binding:"required"`
	To       string   `json:"to" binding:"required"`
	Holidays []string `json:"holidays"`
}

func (h *PlannerHandler) HandleRangeImpact(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	var req impactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	from, err := domain.ParseDayKey(req.From)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid from date format, expected YYYY-MM-DD")
		return
	}

	to, err := domain.ParseDayKey(req.To)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid to date format, expected YYYY-MM-DD")
		return
	}

	for _, holiday := range req.Holidays {
		if _, err := domain.ParseDayKey(holiday); err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid holiday date format, expected YYYY-MM-DD")
			return
		}
	}

	impactCtx, span := tracing.StartImpactSpan(ctx, from, to, len(req.Holidays))
	start := time.Now()

	resp, err := h.plannerService.RangeImpact(impactCtx, studentID, from, to, req.Holidays)

	if h.plannerMetrics != nil {
		h.plannerMetrics.RecordImpactDuration(impactCtx, time.Since(start))
	}

	if err != nil {
		tracing.RecordImpactResult(span, 0, 0, 0, err)
		span.End()

		if errors.Is(err, domain.ErrSubjectsNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "no attendance snapshot for this student")
			return
		}

		slog.ErrorContext(ctx, "range impact failed",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to compute range impact")
		return
	}

	tracing.RecordImpactResult(span, resp.TotalClasses, resp.ActiveDays, resp.BreachCount, nil)
	span.End()

	c.JSON(http.StatusOK, resp)
}

func (h *PlannerHandler) HandleSuggestVacations(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	runID := c.GetHeader("X-Run-ID")
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}

	horizonDays := h.config.Planner.WeeksAhead * 7

	searchCtx, span := tracing.StartVacationSearchSpan(ctx, studentID, horizonDays)
	start := time.Now()

	resp, err := h.plannerService.SuggestVacations(searchCtx, studentID, asOf, runID)

	duration := time.Since(start)

	if err != nil {
		tracing.RecordSearchResult(span, 0, 0, 0, err)
		span.End()

		if h.plannerMetrics != nil {
			h.plannerMetrics.RecordSearchRun(searchCtx, duration, 0)
		}

		if errors.Is(err, domain.ErrSubjectsNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "no attendance snapshot for this student")
			return
		}

		slog.ErrorContext(ctx, "vacation search failed",
			slog.String("student_id", studentID),
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to search vacation windows")
		return
	}

	if h.plannerMetrics != nil {
		h.plannerMetrics.RecordSearchRun(searchCtx, duration, resp.CandidateCount)
	}

	var bestPenalty float64
	if len(resp.Windows) > 0 {
		bestPenalty = resp.Windows[0].Penalty
	}
	tracing.RecordSearchResult(span, resp.CandidateCount, len(resp.Windows), bestPenalty, nil)
	span.End()

	if h.searchRecorder != nil {
		h.recordSearchRun(searchCtx, resp, duration)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlannerHandler) recordSearchRun(ctx context.Context, resp *planner.VacationResponse, duration time.Duration) {
	run := domain.SearchRunRecord{
		RunID:          resp.RunID,
		StudentID:      resp.StudentID,
		SearchedAt:     time.Now().UTC(),
		HorizonDays:    resp.HorizonDays,
		CandidateCount: resp.CandidateCount,
		SelectedCount:  len(resp.Windows),
		DurationMillis: duration.Milliseconds(),
	}

	if len(resp.Windows) > 0 {
		penalties := make([]float64, 0, len(resp.Windows))
		for _, w := range resp.Windows {
			penalties = append(penalties, w.Penalty)
		}
		run.BestPenalty, _ = stats.Min(penalties)
		run.MeanPenalty, _ = stats.Mean(penalties)
		run.WorstPenalty, _ = stats.Max(penalties)
	}

	if err := h.searchRecorder.RecordSearchRun(ctx, run); err != nil {
		slog.WarnContext(ctx, "failed to record search run",
			slog.String("run_id", resp.RunID),
			slog.String("error", err.Error()),
		)
	}

	if len(resp.Windows) == 0 {
		return
	}

	windows := make([]domain.SelectedWindowRecord, 0, len(resp.Windows))
	for i, w := range resp.Windows {
		windows = append(windows, domain.SelectedWindowRecord{
			RunID:        resp.RunID,
			StudentID:    resp.StudentID,
			Rank:         i + 1,
			StartDate:    w.StartDate,
			EndDate:      w.EndDate,
			Duration:     w.Duration,
			TotalClasses: w.TotalClasses,
			AtRiskCount:  w.AtRiskCount,
			Penalty:      w.Penalty,
		})
	}

	if err := h.searchRecorder.RecordSelectedWindows(ctx, windows); err != nil {
		slog.WarnContext(ctx, "failed to record selected windows",
			slog.String("run_id", resp.RunID),
			slog.String("error", err.Error()),
		)
	}
}
