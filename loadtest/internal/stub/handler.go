package stub

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/internal/infra/taskqueue"
)

type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

// POST /reset?run_id=...
func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

// POST /seed?run_id=...
func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, student := range req.Students {
		if student.StudentID == "" || student.SubjectCount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "each student requires a student_id and a positive subject_count"})
			return
		}
		if student.LowCount < 0 || student.LowCount > student.SubjectCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "low_count must be between 0 and subject_count"})
			return
		}
	}

	totalSubjects := h.storage.Seed(runID, req.Students)

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("student_count", len(req.Students)),
		slog.Int("total_subject_count", totalSubjects),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":        "seeded",
		"run_id":        runID,
		"student_count": len(req.Students),
		"subject_count": totalSubjects,
	})
}

// GET /students/:student_id/snapshot?run_id=...
func (h *Handler) HandleGetSnapshot(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")
	studentID := c.Param("student_id")

	subjects, ok := h.storage.Snapshot(runID, studentID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not seeded"})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{
		StudentID: studentID,
		Subjects:  subjects,
	})
}

// POST /tasks and POST /tasks/:queue
//
// Accepts the Cloud-Tasks-shaped registration the planner's alert client
// sends. Alerts are recorded under the queue name, so a driver that sets
// TASK_QUEUE_NAME to its run ID gets per-run attribution for free.
func (h *Handler) HandleRegisterTask(c *gin.Context) {
	runID := c.Param("queue")
	if runID == "" {
		runID = "default"
	}

	var req taskqueue.TasksAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Task.HTTPRequest.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task body is not valid base64"})
		return
	}

	var task taskqueue.AlertTask
	if err := json.Unmarshal(payload, &task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task body is not a valid alert task"})
		return
	}

	now := time.Now().UTC()

	h.storage.RecordAlert(runID, ReceivedAlert{
		TaskID:      task.TaskID,
		StudentID:   task.StudentID,
		SubjectCode: task.SubjectCode,
		CurrentPct:  task.CurrentPct,
		ReceivedAt:  now,
	})

	slog.Debug("alert task received",
		slog.String("run_id", runID),
		slog.String("task_id", task.TaskID),
		slog.String("student_id", task.StudentID),
		slog.String("subject_code", task.SubjectCode),
	)

	scheduleTime := req.Task.ScheduleTime
	if scheduleTime == "" {
		scheduleTime = now.Format(time.RFC3339)
	}

	c.JSON(http.StatusCreated, taskqueue.TasksAPIResponse{
		Name:         "queues/" + runID + "/tasks/" + task.TaskID,
		ScheduleTime: scheduleTime,
		CreateTime:   now.Format(time.RFC3339),
	})
}

// GET /stats?run_id=...
func (h *Handler) HandleStats(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	c.JSON(http.StatusOK, h.storage.Stats(runID))
}
