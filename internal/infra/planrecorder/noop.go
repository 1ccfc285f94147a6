package planrecorder

import (
	"context"

	"github.com/erphive/attendance-planner/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.SearchResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordSearchRun(_ context.Context, _ domain.SearchRunRecord) error {
	return nil
}

func (n *noopRecorder) RecordSelectedWindows(_ context.Context, _ []domain.SelectedWindowRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
