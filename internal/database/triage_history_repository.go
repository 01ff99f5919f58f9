package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/report-triage/internal/domain"
)

// ErrNotFound indicates no history record exists for the requested report.
var ErrNotFound = errors.New("triage history not found")

// TriageHistoryRepository handles database operations for triage history.
type TriageHistoryRepository struct {
	db *sqlx.DB
}

// NewTriageHistoryRepository creates a new triage history repository.
func NewTriageHistoryRepository(db *sqlx.DB) *TriageHistoryRepository {
	return &TriageHistoryRepository{db: db}
}

// TriageStats represents overall triage statistics.
type TriageStats struct {
	TotalTriaged  int            `json:"total_triaged"`
	AvgConfidence float64        `json:"avg_confidence"`
	UnclearCount  int            `json:"unclear_count"`
	AvgDurationMs float64        `json:"avg_duration_ms"`
	ByCategory    map[string]int `json:"by_category"`
	ByReason      map[string]int `json:"by_reason"`
}

// Create inserts a new triage history record.
func (r *TriageHistoryRepository) Create(ctx context.Context, history *domain.TriageHistory) error {
	query := `
		INSERT INTO triage_history (
			report_id, category, confidence, reason, engine_version, duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, triaged_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		history.ReportID,
		history.Category,
		history.Confidence,
		history.Reason,
		history.EngineVersion,
		history.DurationMs,
	).Scan(&history.ID, &history.TriagedAt)

	if err != nil {
		return fmt.Errorf("failed to create triage history: %w", err)
	}

	return nil
}

// GetByReportID retrieves the most recent triage record for a report.
func (r *TriageHistoryRepository) GetByReportID(ctx context.Context, reportID string) (*domain.TriageHistory, error) {
	var history domain.TriageHistory
	query := `
		SELECT id, report_id, category, confidence, reason, engine_version,
		       duration_ms, triaged_at
		FROM triage_history
		WHERE report_id = $1
		ORDER BY triaged_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &history, query, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to get triage history: %w", err)
	}

	return &history, nil
}

// GetStats retrieves overall triage statistics.
func (r *TriageHistoryRepository) GetStats(ctx context.Context) (*TriageStats, error) {
	stats := &TriageStats{
		ByCategory: make(map[string]int),
		ByReason:   make(map[string]int),
	}

	query := `
		SELECT
			COUNT(*) AS total_triaged,
			COALESCE(AVG(confidence), 0) AS avg_confidence,
			SUM(CASE WHEN category = 'unclear_insufficient_info' THEN 1 ELSE 0 END) AS unclear_count,
			COALESCE(AVG(duration_ms), 0) AS avg_duration_ms
		FROM triage_history
	`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalTriaged,
		&stats.AvgConfidence,
		&stats.UnclearCount,
		&stats.AvgDurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get triage stats: %w", err)
	}

	if err := r.fillGroupCounts(ctx, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *TriageHistoryRepository) fillGroupCounts(ctx context.Context, stats *TriageStats) error {
	type groupCount struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}

	var byCategory []groupCount
	err := r.db.SelectContext(ctx, &byCategory, `
		SELECT category AS key, COUNT(*) AS count
		FROM triage_history
		GROUP BY category
		ORDER BY count DESC
	`)
	if err != nil {
		return fmt.Errorf("failed to get category counts: %w", err)
	}
	for _, g := range byCategory {
		stats.ByCategory[g.Key] = g.Count
	}

	var byReason []groupCount
	err = r.db.SelectContext(ctx, &byReason, `
		SELECT reason AS key, COUNT(*) AS count
		FROM triage_history
		GROUP BY reason
		ORDER BY count DESC
	`)
	if err != nil {
		return fmt.Errorf("failed to get reason counts: %w", err)
	}
	for _, g := range byReason {
		stats.ByReason[g.Key] = g.Count
	}

	return nil
}

// DeleteOlderThan removes history records past the retention window. Returns
// the number of rows removed.
func (r *TriageHistoryRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM triage_history
		WHERE triaged_at < NOW() - ($1 || ' days')::interval
	`, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune triage history: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return rows, nil
}
