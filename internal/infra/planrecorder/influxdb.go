//go:build !gcloud

package planrecorder

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/erphive/attendance-planner/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.SearchResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "search result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, search result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "search result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordSearchRun(ctx context.Context, record domain.SearchRunRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"search_run",
		map[string]string{
			"run_id":     runID,
			"student_id": record.StudentID,
		},
		map[string]any{
			"horizon_days":    record.HorizonDays,
			"candidate_count": record.CandidateCount,
			"selected_count":  record.SelectedCount,
			"best_penalty":    record.BestPenalty,
			"mean_penalty":    record.MeanPenalty,
			"worst_penalty":   record.WorstPenalty,
			"duration_ms":     record.DurationMillis,
		},
		record.SearchedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write search run to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", runID),
			slog.String("student_id", record.StudentID),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordSelectedWindows(ctx context.Context, records []domain.SelectedWindowRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		// Use real time as timestamp to prevent overwrites between runs
		pointTime := time.Now()

		point := influxdb2.NewPoint(
			"selected_window",
			map[string]string{
				"run_id":     runID,
				"student_id": record.StudentID,
				"rank":       strconv.Itoa(record.Rank),
			},
			map[string]any{
				"start_unix":    record.StartDate.Unix(),
				"end_unix":      record.EndDate.Unix(),
				"duration":      record.Duration,
				"total_classes": record.TotalClasses,
				"at_risk_count": record.AtRiskCount,
				"penalty":       record.Penalty,
			},
			pointTime,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write selected window to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("run_id", runID),
				slog.Int("rank", record.Rank),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
