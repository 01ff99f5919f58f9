package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/report-triage/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global
// registry.
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordTriage(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordTriage(ctx, "functional_errors", "keyword_map", time.Millisecond)
	provider.RecordTriage(ctx, "unclear_insufficient_info", "unclear_gate", time.Millisecond)
	provider.RecordTriageFailure(ctx)
}

func TestRecordPredictorCall(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordPredictorCall(ctx, "ok", 20*time.Millisecond)
	provider.RecordPredictorCall(ctx, "error", 5*time.Millisecond)
}

func TestWorkerGauges(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.SetQueueDepth(42)
	provider.SetActiveWorkers(8)
	provider.RecordBatchSize(100)
}

func TestStartSpan(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartSpan(context.Background(), "test-span")
	if ctx == nil || span == nil {
		t.Fatal("expected non-nil context and span")
	}
	span.End()
}
