package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const plannerTracerName = "github.com/erphive/attendance-planner/internal/service/planner"

func PlannerTracer() trace.Tracer {
	return otel.Tracer(plannerTracerName)
}

func StartDashboardSpan(ctx context.Context, studentID string, asOf time.Time) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.dashboard",
		trace.WithAttributes(
			attribute.String("student_id", studentID),
			attribute.String("as_of", asOf.Format(time.RFC3339)),
		),
	)
}

func StartImpactSpan(ctx context.Context, from, to time.Time, holidayCount int) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.range_impact",
		trace.WithAttributes(
			attribute.String("range.from", from.Format(time.RFC3339)),
			attribute.String("range.to", to.Format(time.RFC3339)),
			attribute.Int("range.holidays", holidayCount),
		),
	)
}

func StartVacationSearchSpan(ctx context.Context, studentID string, horizonDays int) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.vacation_search",
		trace.WithAttributes(
			attribute.String("student_id", studentID),
			attribute.Int("search.horizon_days", horizonDays),
		),
	)
}

func StartSnapshotSyncSpan(ctx context.Context, studentID string, subjectCount int) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.snapshot_sync",
		trace.WithAttributes(
			attribute.String("student_id", studentID),
			attribute.Int("sync.subject_count", subjectCount),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordImpactResult(span trace.Span, totalClasses, activeDays, breachCount int, err error) {
	span.SetAttributes(
		attribute.Int("impact.total_classes", totalClasses),
		attribute.Int("impact.active_days", activeDays),
		attribute.Int("impact.breach_count", breachCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordSearchResult(span trace.Span, candidateCount, selectedCount int, bestPenalty float64, err error) {
	span.SetAttributes(
		attribute.Int("search.candidate_count", candidateCount),
		attribute.Int("search.selected_count", selectedCount),
		attribute.Float64("search.best_penalty", bestPenalty),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordSyncResult(span trace.Span, subjectCount, newlyLowCount int, err error) {
	span.SetAttributes(
		attribute.Int("sync.subject_count", subjectCount),
		attribute.Int("sync.newly_low_count", newlyLowCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordDashboardResult(span trace.Span, subjectCount int, err error) {
	span.SetAttributes(
		attribute.Int("dashboard.subject_count", subjectCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
