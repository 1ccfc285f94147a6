//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/erphive/attendance-planner/internal/observability/logging"
	"github.com/erphive/attendance-planner/internal/observability/tracing"
)

type AlertTasksClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewAlertTasksClient(baseURL, queueName string, maxRetries int) *AlertTasksClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &AlertTasksClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *AlertTasksClient) RegisterAlert(ctx context.Context, task *AlertTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert task: %w", err)
	}

	encodedBody := base64.StdEncoding.EncodeToString(payload)

	tasksReq := TasksAPIRequest{
		Task: TasksAPITask{
			HTTPRequest: TasksAPIHTTPRequest{
				Body: encodedBody,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		tasksReq.Task.ScheduleTime = task.ScheduleAt.Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(tasksReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying alert registration",
				slog.String("alert_id", task.AlertID),
				slog.String("student_id", task.StudentID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, url, reqBody, task.AlertID, task.StudentID)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for alert registration",
		slog.String("alert_id", task.AlertID),
		slog.String("student_id", task.StudentID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to register alert after %d retries: %w", c.maxRetries, lastErr)
}

func (c *AlertTasksClient) doRequest(ctx context.Context, url string, reqBody []byte, alertID, studentID string) (*TaskResponse, error) {
	slog.Debug("registering alert to alert tasks service",
		slog.String("url", url),
		slog.String("alert_id", alertID),
		slog.String("student_id", studentID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)

	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send request to alert tasks service",
			slog.String("alert_id", alertID),
			slog.String("student_id", studentID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.Warn("unexpected status code from alert tasks service",
			slog.String("alert_id", alertID),
			slog.String("student_id", studentID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var tasksResp TasksAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&tasksResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, tasksResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, tasksResp.CreateTime)

	slog.Info("alert task registered to alert tasks service",
		slog.String("task_name", tasksResp.Name),
		slog.String("alert_id", alertID),
		slog.String("student_id", studentID),
	)

	return &TaskResponse{
		Name:         tasksResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}
