package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/report-triage/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_ValidResources(t *testing.T) {
	dir := t.TempDir()

	categoriesPath := writeFile(t, dir, "categories.json", `[
		{"id": "connectivity_problems"},
		{"id": "data_integrity_issues"},
		{"id": "functional_errors"}
	]`)
	rulesPath := writeFile(t, dir, "rules.json", `{
		"priority_order": ["connectivity_problems", "data_integrity_issues", "functional_errors"],
		"keyword_map": {
			"no internet": "connectivity_problems",
			"wrong total": "data_integrity_issues"
		},
		"regex_map": {
			"\\btimeout\\b": "connectivity_problems"
		},
		"structured_token_patterns": {
			"amount": "\\b\\d+\\b"
		}
	}`)

	cat := Load(categoriesPath, rulesPath, nil)

	if len(cat.Categories) != 3 {
		t.Errorf("expected 3 categories, got %d", len(cat.Categories))
	}
	if len(cat.Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %d", len(cat.Keywords))
	}
	if len(cat.Regexes) != 1 {
		t.Errorf("expected 1 regex, got %d", len(cat.Regexes))
	}
	if !cat.StructuredToken("amount", "paid 450") {
		t.Error("configured structured pattern not applied")
	}

	m := cat.MatchText("wrong total after timeout")
	if m == nil || m.Category != domain.CategoryConnectivityProblems {
		t.Errorf("expected connectivity via priority order, got %+v", m)
	}
}

func TestLoad_MissingFilesFallBackToDefaults(t *testing.T) {
	cat := Load("/nonexistent/categories.json", "/nonexistent/rules.json", nil)

	if len(cat.Categories) != len(domain.CanonicalCategories) {
		t.Errorf("expected canonical categories, got %d", len(cat.Categories))
	}
	if len(cat.Keywords) == 0 || len(cat.Regexes) == 0 {
		t.Error("built-in rule maps not substituted")
	}
	if m := cat.MatchText("there is a crash"); m == nil || m.Category != domain.CategoryCrashStability {
		t.Errorf("built-in keywords not active, got %+v", m)
	}
}

func TestLoad_EmptyPathsFallBackToDefaults(t *testing.T) {
	cat := Load("", "", nil)
	if len(cat.Keywords) == 0 {
		t.Error("expected built-in catalog for empty paths")
	}
}

func TestLoad_SkipsInvalidEntries(t *testing.T) {
	dir := t.TempDir()

	categoriesPath := writeFile(t, dir, "categories.json", `[{"id": "functional_errors"}]`)
	rulesPath := writeFile(t, dir, "rules.json", `{
		"priority_order": ["functional_errors", "not_a_category"],
		"keyword_map": {
			"broken": "functional_errors",
			"ghost": "not_a_category",
			"": "functional_errors"
		},
		"regex_map": {
			"\\berror\\b": "functional_errors",
			"[unclosed": "functional_errors",
			"\\bok\\b": "not_a_category"
		},
		"structured_token_patterns": {
			"bad": "[also unclosed"
		}
	}`)

	cat := Load(categoriesPath, rulesPath, nil)

	if len(cat.PriorityOrder) != 1 {
		t.Errorf("unknown category kept in priority order: %v", cat.PriorityOrder)
	}
	if len(cat.Keywords) != 1 || cat.Keywords[0].Keyword != "broken" {
		t.Errorf("invalid keyword entries kept: %+v", cat.Keywords)
	}
	if len(cat.Regexes) != 1 || cat.Regexes[0].Pattern != `\berror\b` {
		t.Errorf("invalid regex entries kept: %+v", cat.Regexes)
	}
	// All structured patterns failed to compile, so the defaults back-fill.
	if len(cat.Structured) == 0 {
		t.Error("expected default structured patterns as back-fill")
	}
	if !cat.StructuredToken(TokenAmount, "42") {
		t.Error("default amount pattern missing after back-fill")
	}
}

func TestLoad_MalformedRulesFileFallsBack(t *testing.T) {
	dir := t.TempDir()

	categoriesPath := writeFile(t, dir, "categories.json", `[{"id": "functional_errors"}]`)
	rulesPath := writeFile(t, dir, "rules.json", `{not json at all`)

	cat := Load(categoriesPath, rulesPath, nil)
	if len(cat.Keywords) == 0 {
		t.Error("expected built-in keyword map after parse failure")
	}
}
