// Package processor runs triage over batches of reports using a worker pool,
// with optional model predictions from the predictor sidecar and optional
// history persistence.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/engine"
	"github.com/jonesrussell/report-triage/internal/logger"
	"github.com/jonesrussell/report-triage/internal/predictor"
	"github.com/jonesrussell/report-triage/internal/telemetry"
)

const defaultConcurrency = 8

// Predictor obtains an optional model prediction for a report's text.
type Predictor interface {
	Predict(ctx context.Context, req *predictor.PredictRequest) (*predictor.PredictResponse, error)
}

// HistoryWriter persists one triage verdict.
type HistoryWriter interface {
	Create(ctx context.Context, history *domain.TriageHistory) error
}

// ProcessResult holds the verdict for a single report.
type ProcessResult struct {
	Report     *domain.Report      `json:"report"`
	Result     domain.TriageResult `json:"result"`
	DurationMs int64               `json:"duration_ms"`
}

// BatchProcessor triages batches of reports in parallel using a worker pool.
// The predictor, history writer, and telemetry provider are all optional.
type BatchProcessor struct {
	engine      *engine.Engine
	predictor   Predictor
	history     HistoryWriter
	telemetry   *telemetry.Provider
	limiter     *RateLimiter
	concurrency int
	log         logger.Logger
}

// NewBatchProcessor creates a batch processor around a triage engine.
func NewBatchProcessor(eng *engine.Engine, concurrency int, log logger.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchProcessor{
		engine:      eng,
		concurrency: concurrency,
		log:         log,
	}
}

// WithPredictor attaches the model sidecar. Predictions are fetched only for
// reports that carry none; sidecar failures degrade to rule-only triage.
func (b *BatchProcessor) WithPredictor(p Predictor, limiter *RateLimiter) *BatchProcessor {
	b.predictor = p
	b.limiter = limiter
	return b
}

// WithHistory attaches the history writer.
func (b *BatchProcessor) WithHistory(h HistoryWriter) *BatchProcessor {
	b.history = h
	return b
}

// WithTelemetry attaches the telemetry provider.
func (b *BatchProcessor) WithTelemetry(t *telemetry.Provider) *BatchProcessor {
	b.telemetry = t
	return b
}

// Process triages a batch of reports. Results come back in input order; a
// cancelled context leaves the remaining results with zero verdicts.
func (b *BatchProcessor) Process(ctx context.Context, reports []*domain.Report) []*ProcessResult {
	results := make([]*ProcessResult, len(reports))
	if len(reports) == 0 {
		return results
	}

	b.log.Info("starting batch triage",
		logger.Int("batch_size", len(reports)),
		logger.Int("concurrency", b.concurrency))

	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(reports))
		b.telemetry.SetQueueDepth(len(reports))
		defer b.telemetry.SetQueueDepth(0)
	}

	startTime := time.Now()

	type job struct {
		index  int
		report *domain.Report
	}
	jobs := make(chan job, len(reports))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			if b.telemetry != nil {
				b.telemetry.Metrics.ActiveWorkers.Inc()
				defer b.telemetry.Metrics.ActiveWorkers.Dec()
			}
			for j := range jobs {
				select {
				case <-ctx.Done():
					b.log.Warn("worker stopping, context cancelled",
						logger.Int("worker_id", workerID))
					return
				default:
				}
				results[j.index] = b.processOne(ctx, j.report)
			}
		}(i)
	}

	for i, r := range reports {
		jobs <- job{index: i, report: r}
	}
	close(jobs)
	wg.Wait()

	// Cancellation can leave gaps; fill them so callers always get a result
	// per input.
	for i, r := range results {
		if r == nil {
			results[i] = &ProcessResult{Report: reports[i]}
		}
	}

	duration := time.Since(startTime)
	b.log.Info("batch triage complete",
		logger.Int("total", len(reports)),
		logger.Int64("duration_ms", duration.Milliseconds()))

	return results
}

// ProcessOne triages a single report.
func (b *BatchProcessor) ProcessOne(ctx context.Context, report *domain.Report) *ProcessResult {
	return b.processOne(ctx, report)
}

func (b *BatchProcessor) processOne(ctx context.Context, report *domain.Report) *ProcessResult {
	if report == nil {
		report = &domain.Report{}
	}

	start := time.Now()

	b.fetchPrediction(ctx, report)
	result := b.engine.Categorize(report)

	duration := time.Since(start)
	if b.telemetry != nil {
		b.telemetry.RecordTriage(ctx, string(result.Category), string(result.Reason), duration)
	}

	b.persist(ctx, report, result, duration)

	return &ProcessResult{
		Report:     report,
		Result:     result,
		DurationMs: duration.Milliseconds(),
	}
}

// fetchPrediction fills report.ModelPred from the sidecar when configured.
// Any sidecar failure leaves the report without a prediction.
func (b *BatchProcessor) fetchPrediction(ctx context.Context, report *domain.Report) {
	if b.predictor == nil || report.ModelPred != "" {
		return
	}
	if report.EffectiveComment() == "" && len(report.OCRTexts) == 0 {
		return
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return
		}
	}

	start := time.Now()
	resp, err := b.predictor.Predict(ctx, &predictor.PredictRequest{
		Comment:  report.EffectiveComment(),
		OCRTexts: report.OCRTexts,
	})
	if b.telemetry != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		b.telemetry.RecordPredictorCall(ctx, outcome, time.Since(start))
	}
	if err != nil {
		b.log.Warn("predictor unavailable, continuing rule-only",
			logger.String("report_id", report.ID),
			logger.Error(err))
		return
	}
	report.ModelPred = resp.Category
}

func (b *BatchProcessor) persist(ctx context.Context, report *domain.Report, result domain.TriageResult, duration time.Duration) {
	if b.history == nil || report.ID == "" {
		return
	}
	history := &domain.TriageHistory{
		ReportID:      report.ID,
		Category:      result.Category,
		Confidence:    result.Confidence,
		Reason:        result.Reason,
		EngineVersion: engine.Version,
		DurationMs:    duration.Milliseconds(),
	}
	if err := b.history.Create(ctx, history); err != nil {
		b.log.Error("failed to persist triage history",
			logger.String("report_id", report.ID),
			logger.Error(err))
	}
}

// Concurrency returns the worker pool size.
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}
