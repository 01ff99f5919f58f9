package processor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/engine"
	"github.com/jonesrussell/report-triage/internal/predictor"
)

type fakePredictor struct {
	mu       sync.Mutex
	calls    int
	category string
	err      error
}

func (f *fakePredictor) Predict(_ context.Context, _ *predictor.PredictRequest) (*predictor.PredictResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &predictor.PredictResponse{Category: f.category, Confidence: 0.8}, nil
}

type fakeHistory struct {
	mu      sync.Mutex
	records []*domain.TriageHistory
}

func (f *fakeHistory) Create(_ context.Context, h *domain.TriageHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, h)
	return nil
}

func newProcessor(concurrency int) *BatchProcessor {
	return NewBatchProcessor(engine.New(catalog.Default(), nil), concurrency, nil)
}

func TestProcess_OrderPreserved(t *testing.T) {
	p := newProcessor(4)

	reports := []*domain.Report{
		{ID: "r1", Comment: "Feature request: add dark mode"},
		{ID: "r2", Comment: "app keeps crashing"},
		{ID: "r3", Filenames: []string{"image.jpg"}},
		{ID: "r4", Comment: "unable to connect to server"},
	}

	results := p.Process(context.Background(), reports)
	if len(results) != len(reports) {
		t.Fatalf("expected %d results, got %d", len(reports), len(results))
	}
	for i, r := range results {
		if r.Report.ID != reports[i].ID {
			t.Errorf("result %d out of order: got %s", i, r.Report.ID)
		}
	}
	if results[0].Result.Category != domain.CategoryFeatureRequests {
		t.Errorf("r1: expected feature_requests, got %s", results[0].Result.Category)
	}
	if results[1].Result.Category != domain.CategoryCrashStability {
		t.Errorf("r2: expected crash_stability, got %s", results[1].Result.Category)
	}
	if results[2].Result.Category != domain.CategoryUnclear {
		t.Errorf("r3: expected unclear, got %s", results[2].Result.Category)
	}
	if results[3].Result.Category != domain.CategoryConnectivityProblems {
		t.Errorf("r4: expected connectivity, got %s", results[3].Result.Category)
	}
}

func TestProcess_EmptyBatch(t *testing.T) {
	p := newProcessor(2)
	results := p.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestProcess_PredictorFillsModelPred(t *testing.T) {
	fp := &fakePredictor{category: string(domain.CategoryPerformanceIssues)}
	p := newProcessor(2).WithPredictor(fp, nil)

	// No strong rule or catalog hit, so the sidecar prediction decides.
	results := p.Process(context.Background(), []*domain.Report{
		{ID: "r1", Comment: "the app behaves oddly today"},
	})
	if got := results[0].Result.Category; got != domain.CategoryPerformanceIssues {
		t.Errorf("expected model-backed performance_issues, got %s", got)
	}
	if results[0].Result.Reason != domain.ReasonModelPred {
		t.Errorf("expected reason %s, got %s", domain.ReasonModelPred, results[0].Result.Reason)
	}
	if fp.calls != 1 {
		t.Errorf("expected 1 predictor call, got %d", fp.calls)
	}
}

func TestProcess_PredictorSkippedWhenPredPresent(t *testing.T) {
	fp := &fakePredictor{category: string(domain.CategoryUIUXIssues)}
	p := newProcessor(1).WithPredictor(fp, nil)

	p.Process(context.Background(), []*domain.Report{
		{ID: "r1", Comment: "odd behavior", ModelPred: string(domain.CategoryFunctionalErrors)},
	})
	if fp.calls != 0 {
		t.Errorf("expected no predictor call, got %d", fp.calls)
	}
}

func TestProcess_PredictorFailureDegrades(t *testing.T) {
	fp := &fakePredictor{err: errors.New("connection refused")}
	p := newProcessor(1).WithPredictor(fp, nil)

	results := p.Process(context.Background(), []*domain.Report{
		{ID: "r1", Comment: "app keeps crashing"},
	})
	if results[0].Result.Category != domain.CategoryCrashStability {
		t.Errorf("rule-only triage expected, got %s", results[0].Result.Category)
	}
}

func TestProcess_HistoryPersisted(t *testing.T) {
	fh := &fakeHistory{}
	p := newProcessor(2).WithHistory(fh)

	p.Process(context.Background(), []*domain.Report{
		{ID: "r1", Comment: "app keeps crashing"},
		{Comment: "no id, not persisted"},
	})

	if len(fh.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(fh.records))
	}
	rec := fh.records[0]
	if rec.ReportID != "r1" || rec.Category != domain.CategoryCrashStability {
		t.Errorf("unexpected history record: %+v", rec)
	}
	if rec.EngineVersion != engine.Version {
		t.Errorf("history missing engine version: %+v", rec)
	}
}

func TestProcess_CancelledContextStillReturnsPerInput(t *testing.T) {
	p := newProcessor(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports := []*domain.Report{
		{ID: "r1", Comment: "crash"},
		{ID: "r2", Comment: "crash"},
		{ID: "r3", Comment: "crash"},
	}
	results := p.Process(ctx, reports)
	if len(results) != len(reports) {
		t.Fatalf("expected %d results, got %d", len(reports), len(results))
	}
	for i, r := range results {
		if r == nil || r.Report == nil {
			t.Errorf("result %d missing report", i)
		}
	}
}

func TestNewBatchProcessor_ConcurrencyDefault(t *testing.T) {
	p := newProcessor(0)
	if p.Concurrency() != defaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", defaultConcurrency, p.Concurrency())
	}
}
