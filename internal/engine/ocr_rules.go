package engine

import (
	"strings"

	"github.com/jonesrussell/report-triage/internal/domain"
)

// ocrRules mirror a subset of the comment priority groups, tuned to what
// actually shows up on screenshots: dialogs, spinners, and settings screens.
var ocrRules = []strongRule{
	{
		name:     "app_wont_open",
		category: domain.CategoryCrashStability,
		match:    appWontOpenRe.MatchString,
	},
	{
		name:     "performance_lag",
		category: domain.CategoryPerformanceIssues,
		match: func(t string) bool {
			return containsAny(t, "lag", "freeze", "freezes", "hanging", "sluggish")
		},
	},
	{
		name:     "connectivity",
		category: domain.CategoryConnectivityProblems,
		match: func(t string) bool {
			return containsAny(t, connectivityPhrases...)
		},
	},
	{
		name:     "rate_card",
		category: domain.CategoryConfigurationIssues,
		match: func(t string) bool {
			return containsAny(t, "rate card", "ratecard", "rate list")
		},
	},
	{
		name:     "monetary_discrepancy",
		category: domain.CategoryDataIntegrityIssues,
		match: func(t string) bool {
			return containsAny(t, monetaryNouns...) && containsAny(t, mismatchWords...)
		},
	},
	{
		name:     "product_quality",
		category: domain.CategoryProductQuality,
		match: func(t string) bool {
			return containsAny(t, "bad quality", "poor quality", "damaged", "defective")
		},
	},
	{
		name:     "explicit_error",
		category: domain.CategoryFunctionalErrors,
		match: func(t string) bool {
			return containsAny(t, "error", "exception", "fatal", "stack trace")
		},
	},
	{
		name:     "auth_screen",
		category: domain.CategoryAuthenticationAccess,
		match: func(t string) bool {
			return containsAny(t, "sign in", "login", "password", "otp")
		},
	},
	{
		name:     "network_dialog",
		category: domain.CategoryConnectivityProblems,
		match: func(t string) bool {
			return containsAny(t, "unable to connect", "no internet", "network error",
				"api request failed", "timeout")
		},
	},
	{
		// A spinner caption without a completion word reads as a stall.
		name:     "loading_without_success",
		category: domain.CategoryPerformanceIssues,
		match: func(t string) bool {
			return containsAny(t, "loading", "please wait", "processing") &&
				!containsAny(t, "success", "completed")
		},
	},
	{
		name:     "settings_screen",
		category: domain.CategoryConfigurationIssues,
		match: func(t string) bool {
			return containsAny(t, "settings", "preferences", "configuration")
		},
	},
	{
		name:     "payment_integration",
		category: domain.CategoryIntegrationFailures,
		match: func(t string) bool {
			return containsAny(t, "payment", "transaction", "gateway", "upi",
				"printer", "bluetooth")
		},
	},
	{
		name:     "totals_mismatch",
		category: domain.CategoryDataIntegrityIssues,
		match: func(t string) bool {
			return containsAny(t, "total", "balance", "amount") &&
				containsAny(t, "wrong", "mismatch", "not matching")
		},
	},
}

// matchOCRRules runs the ordered OCR rule list over one normalized OCR text.
func matchOCRRules(normalized string) (domain.Category, string, bool) {
	if strings.TrimSpace(normalized) == "" {
		return "", "", false
	}
	for _, rule := range ocrRules {
		if rule.match(normalized) {
			return rule.category, rule.name, true
		}
	}
	return "", "", false
}
