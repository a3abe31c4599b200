package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tornado-matcher"

const (
	metricRuleStatusTotal = "rule.status.total"
	metricProcessDuration = "process.duration"
	metricProcessTotal    = "process.runs.total"
)

// Recorder is the observability seam the matcher calls into on every
// Process run. It never blocks and never returns an error: a failing
// exporter must not fail a match. NoopRecorder satisfies it with empty
// methods and is the zero-value-safe default.
type Recorder interface {
	// RecordRuleStatus records the terminal status a single rule reached,
	// as rule.Status.String() spells it (Matched / NotMatched /
	// PartiallyMatched / NotProcessed).
	RecordRuleStatus(ruleName string, status string)
	// RecordProcessDuration records the wall-clock time spent processing
	// one event through the tree.
	RecordProcessDuration(d time.Duration)
	// StartSpan starts a span named name and returns a context carrying
	// it plus a func to end it.
	StartSpan(ctx context.Context, name string) (context.Context, func())
}

// NoopRecorder discards everything. It is the Matcher's default Recorder
// so telemetry wiring is opt-in, never required: the matcher does no I/O
// on the hot path unless a host explicitly asks for it.
type NoopRecorder struct{}

func (NoopRecorder) RecordRuleStatus(string, string)       {}
func (NoopRecorder) RecordProcessDuration(time.Duration)   {}
func (NoopRecorder) StartSpan(ctx context.Context, _ string) (context.Context, func()) {
	return ctx, func() {}
}

// OtelRecorder records metrics and spans through a caller-supplied
// OpenTelemetry MeterProvider/TracerProvider, so hosts embedding the
// matcher keep full control over exporters.
type OtelRecorder struct {
	meter  metric.Meter
	tracer trace.Tracer

	ruleStatusCounter metric.Int64Counter
	processDuration   metric.Float64Histogram
	processCounter    metric.Int64Counter
}

// NewOtelRecorder builds an OtelRecorder against the given providers.
func NewOtelRecorder(mp metric.MeterProvider, tp trace.TracerProvider) (*OtelRecorder, error) {
	meter := mp.Meter(serviceName)
	tracer := tp.Tracer(serviceName)

	ruleStatusCounter, err := meter.Int64Counter(
		metricRuleStatusTotal,
		metric.WithDescription("Total number of rule evaluations by terminal status"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create rule status counter: %w", err)
	}

	processDuration, err := meter.Float64Histogram(
		metricProcessDuration,
		metric.WithDescription("Time spent processing one event through the tree"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create process duration histogram: %w", err)
	}

	processCounter, err := meter.Int64Counter(
		metricProcessTotal,
		metric.WithDescription("Total number of Process calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create process counter: %w", err)
	}

	return &OtelRecorder{
		meter:             meter,
		tracer:            tracer,
		ruleStatusCounter: ruleStatusCounter,
		processDuration:   processDuration,
		processCounter:    processCounter,
	}, nil
}

func (r *OtelRecorder) RecordRuleStatus(ruleName string, status string) {
	r.ruleStatusCounter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("rule.name", ruleName),
		attribute.String("rule.status", status),
	))
}

func (r *OtelRecorder) RecordProcessDuration(d time.Duration) {
	ctx := context.Background()
	r.processDuration.Record(ctx, float64(d.Microseconds())/1000)
	r.processCounter.Add(ctx, 1)
}

func (r *OtelRecorder) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	spanCtx, span := r.tracer.Start(ctx, name)
	return spanCtx, func() { span.End() }
}

// MeterProviderConfig configures NewPrometheusRecorder's underlying
// OpenTelemetry SDK wiring.
type MeterProviderConfig struct {
	ServiceVersion string
	Environment    string
}

// NewPrometheusRecorder builds a self-contained Recorder that exposes its
// metrics through the OpenTelemetry Prometheus exporter. The returned
// shutdown func must be called on drain.
func NewPrometheusRecorder(ctx context.Context, cfg MeterProviderConfig) (*OtelRecorder, func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	rec, err := NewOtelRecorder(mp, otel.GetTracerProvider())
	if err != nil {
		return nil, nil, err
	}
	return rec, mp.Shutdown, nil
}
