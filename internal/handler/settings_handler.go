package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/internal/domain"
)

// SettingsHandler serves the timetable and threshold settings. Both are
// wholesale replaced on PUT; range checks happen here so stored configs
// are always valid.
type SettingsHandler struct {
	repo             domain.PlannerRepository
	defaultThreshold int
}

func NewSettingsHandler(repo domain.PlannerRepository, defaultThreshold int) *SettingsHandler {
	return &SettingsHandler{
		repo:             repo,
		defaultThreshold: defaultThreshold,
	}
}

func (h *SettingsHandler) HandleGetTimetable(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	timetable, err := h.repo.GetTimetable(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrTimetableNotFound) {
			c.JSON(http.StatusOK, domain.Timetable{})
			return
		}

		slog.ErrorContext(ctx, "failed to load timetable",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to load timetable")
		return
	}

	c.JSON(http.StatusOK, timetable)
}

func (h *SettingsHandler) HandlePutTimetable(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	var req map[string][]string
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	timetable := make(domain.Timetable, len(req))
	for key, codes := range req {
		dayIndex, err := strconv.Atoi(key)
		if err != nil || dayIndex < 0 || dayIndex > 5 {
			respondError(c, http.StatusBadRequest, "validation_error", "timetable keys must be weekday indexes 0 through 5")
			return
		}
		for _, code := range codes {
			if code == "" {
				respondError(c, http.StatusBadRequest, "validation_error", "timetable entries must not be empty")
				return
			}
		}
		timetable[dayIndex] = codes
	}

	if err := h.repo.SaveTimetable(ctx, studentID, timetable); err != nil {
		slog.ErrorContext(ctx, "failed to save timetable",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to save timetable")
		return
	}

	slog.InfoContext(ctx, "timetable replaced",
		slog.String("student_id", studentID),
		slog.Int("days_with_classes", len(timetable)),
	)

	c.JSON(http.StatusOK, timetable)
}

type thresholdsRequest struct {
	Global    *int           `json:"global" binding:"required,gte=0,lte=100"`
	Overrides map[string]int `json:"overrides" binding:"omitempty,dive,gte=0,lte=100"`
}

func (h *SettingsHandler) HandleGetThresholds(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	thresholds, err := h.repo.GetThresholds(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrThresholdsNotFound) {
			c.JSON(http.StatusOK, domain.NewThresholdConfig(h.defaultThreshold))
			return
		}

		slog.ErrorContext(ctx, "failed to load thresholds",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to load thresholds")
		return
	}

	c.JSON(http.StatusOK, thresholds)
}

func (h *SettingsHandler) HandlePutThresholds(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	var req thresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	for key := range req.Overrides {
		if key == "" {
			respondError(c, http.StatusBadRequest, "validation_error", "override keys must not be empty")
			return
		}
	}

	thresholds := domain.ThresholdConfig{
		Global:    *req.Global,
		Overrides: req.Overrides,
	}

	if err := h.repo.SaveThresholds(ctx, studentID, thresholds); err != nil {
		slog.ErrorContext(ctx, "failed to save thresholds",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to save thresholds")
		return
	}

	slog.InfoContext(ctx, "thresholds replaced",
		slog.String("student_id", studentID),
		slog.Int("global", thresholds.Global),
		slog.Int("override_count", len(thresholds.Overrides)),
	)

	c.JSON(http.StatusOK, thresholds)
}
