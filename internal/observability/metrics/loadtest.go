//go:build loadtest

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/erphive/attendance-planner/internal/observability/logging"
)

// appendLoadtestLabels tags metrics with the load-test run so separate runs
// can be compared side by side.
func appendLoadtestLabels(ctx context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		return attrs
	}
	return append(attrs, attribute.String("run_id", runID))
}
