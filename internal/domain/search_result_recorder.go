package domain

import (
	"context"
	"time"
)

type SearchRunRecord struct {
	RunID          string
	StudentID      string
	SearchedAt     time.Time
	HorizonDays    int
	CandidateCount int
	SelectedCount  int
	BestPenalty    float64
	MeanPenalty    float64
	WorstPenalty   float64
	DurationMillis int64
}

type SelectedWindowRecord struct {
	RunID        string
	StudentID    string
	Rank         int
	StartDate    time.Time
	EndDate      time.Time
	Duration     int
	TotalClasses int
	AtRiskCount  int
	Penalty      float64
}

type SearchResultRecorder interface {
	RecordSearchRun(ctx context.Context, record SearchRunRecord) error
	RecordSelectedWindows(ctx context.Context, records []SelectedWindowRecord) error
	Flush(ctx context.Context) error
	Close() error
}
