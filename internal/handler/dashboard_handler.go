package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/observability/metrics"
	"github.com/erphive/attendance-planner/internal/observability/tracing"
	"github.com/erphive/attendance-planner/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService *dashboard.Service
	plannerMetrics   *metrics.PlannerMetrics
}

func NewDashboardHandler(dashboardService *dashboard.Service, plannerMetrics *metrics.PlannerMetrics) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		plannerMetrics:   plannerMetrics,
	}
}

func (h *DashboardHandler) HandleGetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	buildCtx, span := tracing.StartDashboardSpan(ctx, studentID, asOf)
	start := time.Now()

	resp, err := h.dashboardService.Build(buildCtx, studentID, asOf)

	if h.plannerMetrics != nil {
		h.plannerMetrics.RecordDashboardBuildDuration(buildCtx, time.Since(start))
	}

	if err != nil {
		tracing.RecordDashboardResult(span, 0, err)
		span.End()

		if errors.Is(err, domain.ErrSubjectsNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "no attendance snapshot for this student")
			return
		}

		slog.ErrorContext(ctx, "dashboard build failed",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to build dashboard")
		return
	}

	tracing.RecordDashboardResult(span, len(resp.Subjects), nil)
	span.End()

	c.JSON(http.StatusOK, resp)
}
