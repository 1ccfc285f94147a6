package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/observability/tracing"
	"github.com/erphive/attendance-planner/internal/service/sync"
)

type SyncHandler struct {
	syncService *sync.Service
}

func NewSyncHandler(syncService *sync.Service) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

type subjectPayload struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Attended   int     `json:"attended" binding:"gte=0"`
	Total      int     `json:"total" binding:"gte=0"`
	Percentage float64 `json:"percentage"`
}

type syncRequest struct {
	Subjects []subjectPayload `json:"subjects" binding:"required,dive"`
}

func (h *SyncHandler) HandleSyncSubjects(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	subjects := make([]domain.Subject, 0, len(req.Subjects))
	for _, p := range req.Subjects {
		if p.Code == "" && p.Name == "" {
			respondError(c, http.StatusBadRequest, "validation_error", "each subject requires a code or a name")
			return
		}
		subjects = append(subjects, domain.Subject{
			Name:       p.Name,
			Code:       p.Code,
			Attended:   p.Attended,
			Total:      p.Total,
			Percentage: p.Percentage,
		})
	}

	syncCtx, span := tracing.StartSnapshotSyncSpan(ctx, studentID, len(subjects))

	result, err := h.syncService.IngestSnapshot(syncCtx, studentID, subjects)
	if err != nil {
		tracing.RecordSyncResult(span, len(subjects), 0, err)
		span.End()

		slog.ErrorContext(ctx, "snapshot ingest failed",
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to ingest snapshot")
		return
	}

	newlyLow := 0
	for _, standing := range result.Standings {
		if standing.NewlyLow {
			newlyLow++
		}
	}

	tracing.RecordSyncResult(span, result.SubjectCount, newlyLow, nil)
	span.End()

	c.JSON(http.StatusOK, result)
}
