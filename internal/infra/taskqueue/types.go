package taskqueue

import "time"

type AlertTask struct {
	AlertID    string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	TaskID          string  `json:"task_id"`
	StudentID       string  `json:"student_id"`
	SubjectCode     string  `json:"subject_code"`
	SubjectName     string  `json:"subject_name"`
	CurrentPct      float64 `json:"current_pct"`
	Threshold       int     `json:"threshold"`
	ClassesToAttend int     `json:"classes_to_attend"` // -1 when the threshold cannot be reached this term
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

// Wire types for the self-hosted alert tasks service, which mirrors the
// Cloud Tasks REST shape.

type TasksAPIRequest struct {
	Task TasksAPITask `json:"task"`
}

type TasksAPITask struct {
	HTTPRequest  TasksAPIHTTPRequest `json:"httpRequest"`
	ScheduleTime string              `json:"scheduleTime,omitempty"`
}

type TasksAPIHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type TasksAPIResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
