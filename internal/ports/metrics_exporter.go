package ports

import (
	"context"
	"time"
)

// MetricsExporter exports client-side cache and classifier metrics to an
// external observability system.
type MetricsExporter interface {
	// RecordLoad records one full cache load with its outcome and duration.
	RecordLoad(ctx context.Context, records int, duration time.Duration, err error)
	// RecordMutation records one write-through mutation attempt.
	RecordMutation(ctx context.Context, op string, err error)
	// RecordClassification records one classified report with its advisory
	// count and blocking verdict.
	RecordClassification(ctx context.Context, advisories int, blocking bool)
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
