package relabel

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/engine"
)

func newRelabeler() *Relabeler {
	return New(engine.New(catalog.Default(), nil), nil)
}

func TestApply(t *testing.T) {
	r := newRelabeler()

	records := map[string]*domain.ExportRecord{
		"r1": {
			Comment:  "Feature request: add dark mode",
			Category: domain.CategoryFunctionalErrors,
		},
		"r2": {
			ExtractedText: domain.ExtractedTextValue{"Unable to connect"},
		},
		"r3": {
			Attachments: []string{"https://cdn.example.com/a/image.jpg"},
		},
	}

	summary := r.Apply(records)

	if summary.Total != 3 {
		t.Errorf("expected total 3, got %d", summary.Total)
	}
	if records["r1"].Category != domain.CategoryFeatureRequests {
		t.Errorf("r1: expected feature_requests, got %s", records["r1"].Category)
	}
	if records["r2"].Category != domain.CategoryConnectivityProblems {
		t.Errorf("r2: expected connectivity_problems, got %s", records["r2"].Category)
	}
	if records["r3"].Category != domain.CategoryUnclear {
		t.Errorf("r3: expected unclear, got %s", records["r3"].Category)
	}
	if summary.Unclear != 1 {
		t.Errorf("expected 1 unclear, got %d", summary.Unclear)
	}
	// r1 and r3 gained labels; r2 changed from empty.
	if summary.Changed != 3 {
		t.Errorf("expected 3 changes, got %d", summary.Changed)
	}
	if records["r1"].LabelReason == "" || records["r1"].LabelConfidence == 0 {
		t.Errorf("r1 missing label metadata: %+v", records["r1"])
	}
}

func TestApply_HigherConfidenceLabelKept(t *testing.T) {
	r := newRelabeler()

	records := map[string]*domain.ExportRecord{
		"r1": {
			Comment:         "the app behaves oddly today",
			Category:        domain.CategoryPerformanceIssues,
			LabelConfidence: 0.95,
			LabelReason:     domain.ReasonModelPred,
		},
	}

	summary := r.Apply(records)

	if summary.Kept != 1 {
		t.Errorf("expected 1 kept, got %d", summary.Kept)
	}
	if records["r1"].Category != domain.CategoryPerformanceIssues {
		t.Errorf("high-confidence label overwritten: %+v", records["r1"])
	}
	if records["r1"].LabelConfidence != 0.95 {
		t.Errorf("confidence overwritten: %f", records["r1"].LabelConfidence)
	}
}

func TestApply_ExistingLabelActsAsModelHint(t *testing.T) {
	r := newRelabeler()

	// No rule matches, so the previous label is echoed through the model
	// path with refreshed confidence.
	records := map[string]*domain.ExportRecord{
		"r1": {
			Comment:         "the app behaves oddly today",
			Category:        domain.CategoryPerformanceIssues,
			LabelConfidence: 0.4,
		},
	}

	r.Apply(records)

	if records["r1"].Category != domain.CategoryPerformanceIssues {
		t.Errorf("expected label retained via model path, got %s", records["r1"].Category)
	}
	if records["r1"].LabelReason != domain.ReasonModelPred {
		t.Errorf("expected reason %s, got %s", domain.ReasonModelPred, records["r1"].LabelReason)
	}
}

func TestRun_RoundTrip(t *testing.T) {
	r := newRelabeler()
	dir := t.TempDir()

	inPath := filepath.Join(dir, "export.json")
	outPath := filepath.Join(dir, "export_relabelled.json")

	input := `{
		"r1": {"comment": "app keeps crashing", "extracted_text": "Loading"},
		"r2": {"comment": "", "attachments": ["https://cdn.example.com/o/bug_reports%2Fimage.jpg"]}
	}`
	if err := os.WriteFile(inPath, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, err := r.Run(inPath, outPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 2 {
		t.Errorf("expected total 2, got %d", summary.Total)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var out map[string]*domain.ExportRecord
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if out["r1"].Category != domain.CategoryCrashStability {
		t.Errorf("r1: expected crash_stability, got %s", out["r1"].Category)
	}
	if out["r2"].Category != domain.CategoryUnclear {
		t.Errorf("r2: expected unclear, got %s", out["r2"].Category)
	}
}

func TestRun_MissingInput(t *testing.T) {
	r := newRelabeler()
	if _, err := r.Run("/nonexistent/export.json", "/tmp/out.json"); err == nil {
		t.Error("expected error for missing input")
	}
}
