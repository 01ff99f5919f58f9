// Package relabel re-runs the triage engine over an exported report file and
// rewrites the category labels in place. The export is a JSON object keyed
// by report id; records keep their old label when it carries a higher
// confidence than the fresh verdict.
package relabel

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/engine"
	"github.com/jonesrussell/report-triage/internal/logger"
)

// Summary describes the outcome of one relabel pass.
type Summary struct {
	Total      int            `json:"total"`
	Changed    int            `json:"changed"`
	Kept       int            `json:"kept"`
	Unclear    int            `json:"unclear"`
	ByCategory map[string]int `json:"by_category"`
	ByReason   map[string]int `json:"by_reason"`
}

// Relabeler applies the engine to export records.
type Relabeler struct {
	engine *engine.Engine
	log    logger.Logger
}

// New creates a relabeler.
func New(eng *engine.Engine, log logger.Logger) *Relabeler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Relabeler{engine: eng, log: log}
}

// Run reads the export at inPath, relabels every record, and writes the
// updated export to outPath. Passing the same path for both rewrites the
// file.
func (r *Relabeler) Run(inPath, outPath string) (*Summary, error) {
	records, err := loadExport(inPath)
	if err != nil {
		return nil, err
	}

	summary := r.Apply(records)

	if err := writeExport(outPath, records); err != nil {
		return nil, err
	}

	r.log.Info("relabel pass complete",
		logger.Int("total", summary.Total),
		logger.Int("changed", summary.Changed),
		logger.Int("kept", summary.Kept),
		logger.Int("unclear", summary.Unclear))

	return summary, nil
}

// Apply relabels the records in place and returns the pass summary. Records
// are visited in sorted id order.
func (r *Relabeler) Apply(records map[string]*domain.ExportRecord) *Summary {
	summary := &Summary{
		ByCategory: make(map[string]int),
		ByReason:   make(map[string]int),
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rec := records[id]
		if rec == nil {
			continue
		}
		summary.Total++

		report := &domain.Report{
			ID:                id,
			Comment:           rec.Comment,
			CommentTranslated: rec.CommentTranslated,
			OCRTexts:          rec.OCRTexts(),
			Filenames:         rec.AttachmentFilenames(),
			ModelPred:         string(rec.Category),
		}
		result := r.engine.Categorize(report)

		// A previous label with strictly higher confidence survives.
		if rec.Category != "" && domain.IsCanonical(rec.Category) &&
			rec.LabelConfidence > result.Confidence {
			summary.Kept++
			summary.ByCategory[string(rec.Category)]++
			summary.ByReason[string(rec.LabelReason)]++
			continue
		}

		if rec.Category != result.Category {
			summary.Changed++
			r.log.Debug("label changed",
				logger.String("report_id", id),
				logger.String("from", string(rec.Category)),
				logger.String("to", string(result.Category)),
				logger.String("reason", string(result.Reason)))
		}

		rec.Category = result.Category
		rec.LabelConfidence = result.Confidence
		rec.LabelReason = result.Reason

		if result.Category == domain.CategoryUnclear {
			summary.Unclear++
		}
		summary.ByCategory[string(result.Category)]++
		summary.ByReason[string(result.Reason)]++
	}

	return summary
}

func loadExport(path string) (map[string]*domain.ExportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	var records map[string]*domain.ExportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return records, nil
}

func writeExport(path string, records map[string]*domain.ExportRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
