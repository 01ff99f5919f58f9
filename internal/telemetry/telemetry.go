// Package telemetry provides OpenTelemetry instrumentation for the triage
// service. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "report-triage"

// Metrics holds all triage Prometheus metrics.
type Metrics struct {
	// Triage metrics
	ReportsTriaged *prometheus.CounterVec
	TriageFailed   prometheus.Counter
	TriageDuration prometheus.Histogram
	BatchSize      prometheus.Histogram

	// Predictor sidecar metrics
	PredictorRequests *prometheus.CounterVec
	PredictorLatency  prometheus.Histogram

	// Worker pool metrics
	QueueDepth    prometheus.Gauge
	ActiveWorkers prometheus.Gauge
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.ReportsTriaged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_reports_total",
		Help: "Total reports triaged, by category and reason code",
	}, []string{"category", "reason"})

	m.TriageFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triage_reports_failed_total",
		Help: "Total reports that failed triage",
	})

	m.TriageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_duration_seconds",
		Help:    "Time to categorize a single report",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_batch_size",
		Help:    "Number of reports per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})

	m.PredictorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_predictor_requests_total",
		Help: "Total predictor sidecar requests, by outcome",
	}, []string{"outcome"})

	m.PredictorLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_predictor_latency_seconds",
		Help:    "Predictor sidecar request latency",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	})

	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "triage_queue_depth",
		Help: "Current pending reports in the work queue",
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "triage_active_workers",
		Help: "Currently active worker goroutines",
	})

	return m
}

// RecordTriage records one triage verdict with its duration.
func (p *Provider) RecordTriage(ctx context.Context, category, reason string, duration time.Duration) {
	p.Metrics.ReportsTriaged.WithLabelValues(category, reason).Inc()
	p.Metrics.TriageDuration.Observe(duration.Seconds())
}

// RecordTriageFailure records a report that could not be triaged.
func (p *Provider) RecordTriageFailure(ctx context.Context) {
	p.Metrics.TriageFailed.Inc()
}

// RecordBatchSize records the size of a processed batch.
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordPredictorCall records one predictor sidecar round trip.
func (p *Provider) RecordPredictorCall(ctx context.Context, outcome string, duration time.Duration) {
	p.Metrics.PredictorRequests.WithLabelValues(outcome).Inc()
	p.Metrics.PredictorLatency.Observe(duration.Seconds())
}

// SetQueueDepth sets the current queue depth.
func (p *Provider) SetQueueDepth(depth int) {
	p.Metrics.QueueDepth.Set(float64(depth))
}

// SetActiveWorkers sets the current active worker count.
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
