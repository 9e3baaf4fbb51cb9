package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "opticode"
	serviceVersion = "1.0.0"
)

// Exporter exports cache and classifier metrics to an OTEL Collector.
type Exporter struct {
	provider        *sdkmetric.MeterProvider
	meter           metric.Meter
	loadsTotal      metric.Int64Counter
	loadDuration    metric.Float64Histogram
	loadedRecords   metric.Int64Histogram
	mutationsTotal  metric.Int64Counter
	classifications metric.Int64Counter
	advisoriesHist  metric.Int64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	loadsTotal, err := meter.Int64Counter(
		"opticode_history_loads_total",
		metric.WithDescription("Full cache loads from the authority"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loads counter: %w", err)
	}

	loadDuration, err := meter.Float64Histogram(
		"opticode_history_load_duration_seconds",
		metric.WithDescription("Duration of full cache loads"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating load duration histogram: %w", err)
	}

	loadedRecords, err := meter.Int64Histogram(
		"opticode_history_loaded_records",
		metric.WithDescription("Records delivered per successful load"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loaded records histogram: %w", err)
	}

	mutationsTotal, err := meter.Int64Counter(
		"opticode_history_mutations_total",
		metric.WithDescription("Write-through mutations by operation and outcome"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mutations counter: %w", err)
	}

	classifications, err := meter.Int64Counter(
		"opticode_classifications_total",
		metric.WithDescription("Classified diagnostic reports"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating classifications counter: %w", err)
	}

	advisoriesHist, err := meter.Int64Histogram(
		"opticode_classification_advisories",
		metric.WithDescription("Advisories per classified report"),
		metric.WithUnit("{advisory}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating advisories histogram: %w", err)
	}

	return &Exporter{
		provider:        provider,
		meter:           meter,
		loadsTotal:      loadsTotal,
		loadDuration:    loadDuration,
		loadedRecords:   loadedRecords,
		mutationsTotal:  mutationsTotal,
		classifications: classifications,
		advisoriesHist:  advisoriesHist,
	}, nil
}

// RecordLoad records one full cache load with its outcome and duration.
func (e *Exporter) RecordLoad(ctx context.Context, records int, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("outcome", outcome(err)))
	e.loadsTotal.Add(ctx, 1, opt)
	e.loadDuration.Record(ctx, duration.Seconds(), opt)
	if err == nil {
		e.loadedRecords.Record(ctx, int64(records))
	}
}

// RecordMutation records one write-through mutation attempt.
func (e *Exporter) RecordMutation(ctx context.Context, op string, err error) {
	e.mutationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome(err)),
	))
}

// RecordClassification records one classified report.
func (e *Exporter) RecordClassification(ctx context.Context, advisories int, blocking bool) {
	e.classifications.Add(ctx, 1, metric.WithAttributes(attribute.Bool("blocking", blocking)))
	e.advisoriesHist.Record(ctx, int64(advisories))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
