// Package domain defines the core types shared across the triage service.
package domain

// Category is a canonical problem category identifier.
type Category string

// Canonical categories. Every category the engine returns belongs to this
// set; an unrecognized id in configuration is a catalog error, not a
// pass-through value.
const (
	CategoryFunctionalErrors     Category = "functional_errors"
	CategoryUIUXIssues           Category = "ui_ux_issues"
	CategoryPerformanceIssues    Category = "performance_issues"
	CategoryConnectivityProblems Category = "connectivity_problems"
	CategoryAuthenticationAccess Category = "authentication_access"
	CategoryDataIntegrityIssues  Category = "data_integrity_issues"
	CategoryCrashStability       Category = "crash_stability"
	CategoryIntegrationFailures  Category = "integration_failures"
	CategoryConfigurationIssues  Category = "configuration_settings"
	CategoryCompatibilityIssues  Category = "compatibility_issues"
	CategoryFeatureRequests      Category = "feature_requests"
	CategoryProductQuality       Category = "product_quality_issues"
	CategoryUnclear              Category = "unclear_insufficient_info"
)

// CanonicalCategories lists every category in declaration order.
var CanonicalCategories = []Category{
	CategoryFunctionalErrors,
	CategoryUIUXIssues,
	CategoryPerformanceIssues,
	CategoryConnectivityProblems,
	CategoryAuthenticationAccess,
	CategoryDataIntegrityIssues,
	CategoryCrashStability,
	CategoryIntegrationFailures,
	CategoryConfigurationIssues,
	CategoryCompatibilityIssues,
	CategoryFeatureRequests,
	CategoryProductQuality,
	CategoryUnclear,
}

// IsCanonical reports whether id is one of the canonical categories.
func IsCanonical(id Category) bool {
	for _, c := range CanonicalCategories {
		if c == id {
			return true
		}
	}
	return false
}

// ReasonCode identifies which engine stage produced a category. Reason codes
// exist for auditability and QA sampling; callers must not branch on them.
type ReasonCode string

const (
	ReasonStrongComment  ReasonCode = "strong_comment_regex"
	ReasonStrongOCR      ReasonCode = "strong_ocr_regex"
	ReasonFilenameRule   ReasonCode = "filename_rule"
	ReasonKeywordMap     ReasonCode = "keyword_map"
	ReasonRegexMap       ReasonCode = "regex_map"
	ReasonPostAdjustment ReasonCode = "post_adjustment"
	ReasonModelPred      ReasonCode = "model_pred"
	ReasonWeakMonetary   ReasonCode = "weak_monetary"
	ReasonWeakGeneric    ReasonCode = "weak_generic_error"
	ReasonWeakConnect    ReasonCode = "weak_connectivity"
	ReasonWeakAuth       ReasonCode = "weak_auth"
	ReasonWeakIntegr     ReasonCode = "weak_integration"
	ReasonWeakUI         ReasonCode = "weak_ui"
	ReasonWeakPerf       ReasonCode = "weak_performance"
	ReasonWeakFuzzy      ReasonCode = "weak_fuzzy_token"
	ReasonWeakFilename   ReasonCode = "weak_filename"
	ReasonUnclearGate    ReasonCode = "unclear_gate"
	ReasonModelFallback  ReasonCode = "model_pred_fallback"
	ReasonDefault        ReasonCode = "default_fallback"
)
