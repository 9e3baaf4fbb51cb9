package otel

import (
	"context"
	"time"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordLoad(ctx context.Context, records int, duration time.Duration, err error) {
}

func (e *NoOpExporter) RecordMutation(ctx context.Context, op string, err error) {}

func (e *NoOpExporter) RecordClassification(ctx context.Context, advisories int, blocking bool) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
