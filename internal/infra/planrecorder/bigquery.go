//go:build gcloud

package planrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/erphive/attendance-planner/internal/domain"
)

type bigQueryRunRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	RunID          string    `bigquery:"run_id"`
	StudentID      string    `bigquery:"student_id"`
	SearchedAt     time.Time `bigquery:"searched_at"`
	HorizonDays    int64     `bigquery:"horizon_days"`
	CandidateCount int64     `bigquery:"candidate_count"`
	SelectedCount  int64     `bigquery:"selected_count"`
	BestPenalty    float64   `bigquery:"best_penalty"`
	MeanPenalty    float64   `bigquery:"mean_penalty"`
	WorstPenalty   float64   `bigquery:"worst_penalty"`
	DurationMillis int64     `bigquery:"duration_ms"`
}

type bigQueryWindowRecord struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	RunID        string    `bigquery:"run_id"`
	StudentID    string    `bigquery:"student_id"`
	Rank         int64     `bigquery:"rank"`
	StartDate    time.Time `bigquery:"start_date"`
	EndDate      time.Time `bigquery:"end_date"`
	Duration     int64     `bigquery:"duration"`
	TotalClasses int64     `bigquery:"total_classes"`
	AtRiskCount  int64     `bigquery:"at_risk_count"`
	Penalty      float64   `bigquery:"penalty"`
}

type bigQueryRecorder struct {
	client         *bigquery.Client
	runInserter    *bigquery.Inserter
	windowInserter *bigquery.Inserter
	dataset        string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SearchResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "search result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, search result recording disabled")
		return NewNoopRecorder(), nil
	}

	// Credentials resolve from the runtime service account unless a key
	// file is configured explicitly.
	var opts []option.ClientOption
	if cfg.BigQueryCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.BigQueryCredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, search result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)
	runInserter := dataset.Table(cfg.BigQueryRunsTable).Inserter()
	windowInserter := dataset.Table(cfg.BigQueryWindowTable).Inserter()

	slog.InfoContext(ctx, "search result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("runs_table", cfg.BigQueryRunsTable),
		slog.String("windows_table", cfg.BigQueryWindowTable),
	)

	return &bigQueryRecorder{
		client:         client,
		runInserter:    runInserter,
		windowInserter: windowInserter,
		dataset:        cfg.BigQueryDataset,
	}, nil
}

func (r *bigQueryRecorder) RecordSearchRun(ctx context.Context, record domain.SearchRunRecord) error {
	bqRecord := &bigQueryRunRecord{
		RecordedAt:     time.Now(),
		RunID:          record.RunID,
		StudentID:      record.StudentID,
		SearchedAt:     record.SearchedAt,
		HorizonDays:    int64(record.HorizonDays),
		CandidateCount: int64(record.CandidateCount),
		SelectedCount:  int64(record.SelectedCount),
		BestPenalty:    record.BestPenalty,
		MeanPenalty:    record.MeanPenalty,
		WorstPenalty:   record.WorstPenalty,
		DurationMillis: record.DurationMillis,
	}

	if err := r.runInserter.Put(ctx, bqRecord); err != nil {
		slog.WarnContext(ctx, "failed to insert search run to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordSelectedWindows(ctx context.Context, records []domain.SelectedWindowRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	bqRecords := make([]*bigQueryWindowRecord, 0, len(records))
	for _, record := range records {
		bqRecords = append(bqRecords, &bigQueryWindowRecord{
			RecordedAt:   now,
			RunID:        record.RunID,
			StudentID:    record.StudentID,
			Rank:         int64(record.Rank),
			StartDate:    record.StartDate,
			EndDate:      record.EndDate,
			Duration:     int64(record.Duration),
			TotalClasses: int64(record.TotalClasses),
			AtRiskCount:  int64(record.AtRiskCount),
			Penalty:      record.Penalty,
		})
	}

	if err := r.windowInserter.Put(ctx, bqRecords); err != nil {
		slog.WarnContext(ctx, "failed to insert selected windows to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
