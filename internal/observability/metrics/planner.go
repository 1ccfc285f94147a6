package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	plannerMeterName = "planner.service"
)

type PlannerMetrics struct {
	snapshotsSynced  metric.Int64Counter
	alertsDispatched metric.Int64Counter
	verdicts         metric.Int64Counter
	dashboardBuilds  metric.Float64Histogram
	impactDuration   metric.Float64Histogram
	searchDuration   metric.Float64Histogram
	searchCandidates metric.Int64Histogram
}

func NewPlannerMetrics() (*PlannerMetrics, error) {
	meter := otel.Meter(plannerMeterName)

	snapshotsSynced, err := meter.Int64Counter(
		"planner_snapshots_synced_total",
		metric.WithDescription("Total number of attendance snapshots ingested"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		return nil, err
	}

	alertsDispatched, err := meter.Int64Counter(
		"planner_alerts_dispatched_total",
		metric.WithDescription("Total number of low-attendance alerts dispatched"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return nil, err
	}

	verdicts, err := meter.Int64Counter(
		"planner_verdicts_total",
		metric.WithDescription("Distribution of per-subject verdicts on dashboard builds"),
		metric.WithUnit("{subject}"),
	)
	if err != nil {
		return nil, err
	}

	dashboardBuilds, err := meter.Float64Histogram(
		"planner_dashboard_build_duration_seconds",
		metric.WithDescription("Time spent assembling the dashboard"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	impactDuration, err := meter.Float64Histogram(
		"planner_impact_duration_seconds",
		metric.WithDescription("Time spent computing range impact"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	searchDuration, err := meter.Float64Histogram(
		"planner_vacation_search_duration_seconds",
		metric.WithDescription("Vacation window search duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	searchCandidates, err := meter.Int64Histogram(
		"planner_vacation_search_candidates",
		metric.WithDescription("Number of candidate windows evaluated per search"),
		metric.WithUnit("{window}"),
		metric.WithExplicitBucketBoundaries(
			1, 5, 10, 25, 50, 100, 250,
		),
	)
	if err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		snapshotsSynced:  snapshotsSynced,
		alertsDispatched: alertsDispatched,
		verdicts:         verdicts,
		dashboardBuilds:  dashboardBuilds,
		impactDuration:   impactDuration,
		searchDuration:   searchDuration,
		searchCandidates: searchCandidates,
	}, nil
}

func (m *PlannerMetrics) RecordSnapshotSynced(ctx context.Context, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("outcome", outcome),
	}
	attrs = appendLoadtestLabels(ctx, attrs)
	m.snapshotsSynced.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *PlannerMetrics) RecordAlertDispatched(ctx context.Context, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("outcome", outcome),
	}
	attrs = appendLoadtestLabels(ctx, attrs)
	m.alertsDispatched.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *PlannerMetrics) RecordVerdict(ctx context.Context, verdict string) {
	attrs := []attribute.KeyValue{
		attribute.String("verdict", verdict),
	}
	attrs = appendLoadtestLabels(ctx, attrs)
	m.verdicts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *PlannerMetrics) RecordDashboardBuildDuration(ctx context.Context, duration time.Duration) {
	m.dashboardBuilds.Record(ctx, duration.Seconds(), metric.WithAttributes(appendLoadtestLabels(ctx, nil)...))
}

func (m *PlannerMetrics) RecordImpactDuration(ctx context.Context, duration time.Duration) {
	m.impactDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(appendLoadtestLabels(ctx, nil)...))
}

func (m *PlannerMetrics) RecordSearchRun(ctx context.Context, duration time.Duration, candidateCount int) {
	attrs := appendLoadtestLabels(ctx, nil)
	m.searchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.searchCandidates.Record(ctx, int64(candidateCount), metric.WithAttributes(attrs...))
}
