// Package engine implements the deterministic categorization engine: a
// cascade of strong per-source rules, the configured keyword/regex catalog,
// model-aware post-adjustment, weak-signal heuristics, and a strict
// insufficient-information gate. The engine is a pure function of (report,
// catalog): no I/O, no shared mutable state, safe for concurrent use over a
// shared catalog.
package engine

import (
	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/logger"
)

// Version identifies the rule cascade generation, recorded in triage history.
const Version = "2.3.0"

// unclearConfidence is the fixed confidence of an unclear-gate verdict.
const unclearConfidence = 0.3

// Engine categorizes reports against an injected immutable catalog.
type Engine struct {
	catalog *catalog.Catalog
	log     logger.Logger
}

// New creates an engine. A nil logger disables stage logging.
func New(cat *catalog.Catalog, log logger.Logger) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{catalog: cat, log: log}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Categorize triages one report. It is total: every report-shaped input
// yields exactly one canonical category, a confidence in [0, 0.99], and the
// reason code of the deciding stage.
func (e *Engine) Categorize(report *domain.Report) domain.TriageResult {
	if report == nil {
		report = &domain.Report{}
	}

	comment := Normalize(report.EffectiveComment())

	// A model prediction outside the catalog's enumeration is ignored, not
	// propagated.
	modelPred := domain.Category(report.ModelPred)
	if modelPred != "" && !e.catalog.HasCategory(modelPred) {
		modelPred = ""
	}

	// 1. Strong comment rules.
	if cat, rule, ok := matchCommentRules(comment); ok {
		return e.finish(report, cat, domain.ReasonStrongComment, rule,
			computeConfidence(0, e.catalog.StructuredTokenPresent(lightCombined(report)), true, false))
	}

	// 2. Strong OCR rules, each text in order.
	for _, text := range report.OCRTexts {
		if cat, rule, ok := matchOCRRules(Normalize(text)); ok {
			return e.finish(report, cat, domain.ReasonStrongOCR, rule,
				computeConfidence(0, e.catalog.StructuredTokenPresent(lightCombined(report)), true, false))
		}
	}

	// 3. Strong filename rules, each filename in order.
	for _, fn := range report.Filenames {
		if cat, ok := matchFilenameRules(fn); ok {
			return e.finish(report, cat, domain.ReasonFilenameRule, "filename",
				computeConfidence(0, false, true, false))
		}
	}

	// 4. Configured keyword/regex catalog over the combined text, ties
	// resolved by priority order.
	combined := combineTexts(comment, normalizeAll(report.OCRTexts))
	structured := e.catalog.StructuredTokenPresent(lightCombined(report))
	if m := e.catalog.MatchText(combined); m != nil {
		reason := domain.ReasonKeywordMap
		if m.RegexContributed {
			reason = domain.ReasonRegexMap
		}
		return e.finish(report, m.Category, reason, "catalog",
			computeConfidence(m.Hits, structured, false, false))
	}

	// 5. Post-adjustment: explicit comment signals override the model
	// prediction; an unclear candidate defers to the gate.
	if cat, reason, ok := e.postAdjust(comment, modelPred); ok {
		modelUsed := reason == domain.ReasonModelPred
		return e.finish(report, cat, reason, "post_adjustment",
			computeConfidence(0, structured, false, modelUsed))
	}

	// 6. Weak-signal heuristics.
	light := lightCombined(report)
	if m := resolveWeakSignals(e.catalog, light, report.Filenames, modelPred); m != nil {
		return e.finish(report, m.category, m.reason, "weak_signal",
			computeConfidence(m.hits, structured, false, m.modelUsed))
	}

	// 7. Model prediction, when nothing above matched.
	if modelPred != "" && modelPred != domain.CategoryUnclear {
		return e.finish(report, modelPred, domain.ReasonModelPred, "model",
			computeConfidence(0, structured, false, true))
	}

	// 8. Strict unclear gate.
	lightComment := normalizeLight(report.EffectiveComment())
	lightOCR := normalizeAllLight(report.OCRTexts)
	if allowUnclear(e.catalog, lightComment, lightOCR, report.Filenames) {
		return e.finish(report, domain.CategoryUnclear, domain.ReasonUnclearGate, "gate", unclearConfidence)
	}

	// 9. Usable content exists but nothing matched: best-effort default.
	if modelPred != "" && modelPred != domain.CategoryUnclear {
		return e.finish(report, modelPred, domain.ReasonModelFallback, "model_fallback",
			computeConfidence(0, structured, false, true))
	}
	return e.finish(report, domain.CategoryFunctionalErrors, domain.ReasonDefault, "default",
		computeConfidence(0, structured, false, false))
}

// CategorizeLabel is the category-only convenience form.
func (e *Engine) CategorizeLabel(report *domain.Report) domain.Category {
	return e.Categorize(report).Category
}

// postAdjust applies the explicit-signal overrides on top of the model
// prediction. The auth override yields only to a concrete non-UI candidate.
// Returns ok=false when the outcome is empty or unclear, which defers the
// decision to the later stages.
func (e *Engine) postAdjust(comment string, modelPred domain.Category) (domain.Category, domain.ReasonCode, bool) {
	explicitCrash := containsAny(comment, "crash", "force close", "stopped working")
	explicitConnectivity := containsAny(comment, "unable to connect", "network error", "api failed", "timeout")
	explicitAuth := containsAny(comment, "login", "sign in", "password", "otp")

	switch {
	case explicitCrash:
		return domain.CategoryCrashStability, domain.ReasonPostAdjustment, true
	case explicitConnectivity:
		return domain.CategoryConnectivityProblems, domain.ReasonPostAdjustment, true
	case explicitAuth && (modelPred == "" || modelPred == domain.CategoryUIUXIssues || modelPred == domain.CategoryUnclear):
		return domain.CategoryAuthenticationAccess, domain.ReasonPostAdjustment, true
	}

	if modelPred != "" && modelPred != domain.CategoryUnclear {
		return modelPred, domain.ReasonModelPred, true
	}
	return "", "", false
}

// finish logs the deciding stage and assembles the result.
func (e *Engine) finish(report *domain.Report, cat domain.Category, reason domain.ReasonCode, rule string, conf float64) domain.TriageResult {
	e.log.Debug("report categorized",
		logger.String("report_id", report.ID),
		logger.String("category", string(cat)),
		logger.String("reason", string(reason)),
		logger.String("rule", rule),
		logger.Float64("confidence", conf))
	return domain.TriageResult{Category: cat, Confidence: conf, Reason: reason}
}

// lightCombined joins the lightly-normalized comment and OCR texts.
func lightCombined(report *domain.Report) string {
	return combineTexts(normalizeLight(report.EffectiveComment()), normalizeAllLight(report.OCRTexts))
}

func normalizeAll(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func normalizeAllLight(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if n := normalizeLight(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
