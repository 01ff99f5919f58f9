package engine

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/report-triage/internal/domain"
)

// strongRule is one hand-authored check in a fixed-order rule list. The
// first matching rule decides the category outright.
type strongRule struct {
	name     string
	category domain.Category
	match    func(t string) bool
}

// monetaryNouns and mismatchWords together describe sales/amount discrepancy
// phrasing ("total is wrong", "coins less than sales").
var (
	monetaryNouns = []string{"sales", "sale", "coins", "coin", "amount", "balance", "total"}
	mismatchWords = []string{"wrong", "mismatch", "not matching", "incorrect", "less", "more", "difference"}
)

var appWontOpenRe = regexp.MustCompile(`\bapp (?:is )?(?:wo ?n ?t|does ?n ?o ?t|do ?esnt|can ?t|not) open(?:ing)?\b`)

// Transliterated/localized connectivity phrasing seen in real reports
// alongside the English forms.
var connectivityPhrases = []string{
	"unable to connect", "no internet", "network error", "api failed",
	"server error", "timeout", "connection lost",
	"net nahi", "network nahi", "internet nahi", "net slow hai",
}

// commentRules are evaluated in order against the normalized comment; the
// first hit wins. The leading groups are narrow high-precision checks, the
// trailing generic groups mirror the broader per-category keyword sets.
var commentRules = []strongRule{
	{
		name:     "monetary_discrepancy",
		category: domain.CategoryDataIntegrityIssues,
		match: func(t string) bool {
			return containsAny(t, monetaryNouns...) && containsAny(t, mismatchWords...)
		},
	},
	{
		name:     "app_wont_open",
		category: domain.CategoryCrashStability,
		match:    appWontOpenRe.MatchString,
	},
	{
		name:     "performance_lag",
		category: domain.CategoryPerformanceIssues,
		match: func(t string) bool {
			return containsAny(t, "slow", "lag", "freeze", "freezes", "freezing",
				"hanging", "loading forever", "takes too long", "sluggish")
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
		name:     "stop_notifications",
		category: domain.CategoryFeatureRequests,
		match: func(t string) bool {
			return containsAny(t, "stop notification", "stop notifications",
				"turn off notification", "disable notification")
		},
	},
	{
		name:     "rate_card",
		category: domain.CategoryConfigurationIssues,
		match: func(t string) bool {
			return containsAny(t, "rate card", "ratecard", "rate list", "price list")
		},
	},
	{
		name:     "product_quality",
		category: domain.CategoryProductQuality,
		match: func(t string) bool {
			return containsAny(t, "bad quality", "poor quality", "low quality",
				"damaged", "damage", "defective")
		},
	},

	// Broader second pass: generic per-category keyword sets in fixed order.
	{
		name:     "generic_feature_request",
		category: domain.CategoryFeatureRequests,
		match: func(t string) bool {
			return containsAny(t, "feature request", "feature", "would be great",
				"please add", "enhancement")
		},
	},
	{
		name:     "generic_connectivity",
		category: domain.CategoryConnectivityProblems,
		match: func(t string) bool {
			return containsAny(t, "unable to connect", "no internet", "network error",
				"api failed", "server error", "timeout")
		},
	},
	{
		name:     "generic_auth",
		category: domain.CategoryAuthenticationAccess,
		match: func(t string) bool {
			return containsAny(t, "login", "sign in", "signin", "authentication",
				"password", "otp", "permission denied", "access denied", "session")
		},
	},
	{
		name:     "generic_performance",
		category: domain.CategoryPerformanceIssues,
		match: func(t string) bool {
			return containsAny(t, "slow", "lag", "freeze", "hanging", "loading forever",
				"takes too long", "sluggish")
		},
	},
	{
		name:     "generic_crash",
		category: domain.CategoryCrashStability,
		match: func(t string) bool {
			return containsAny(t, "crash", "crashes", "force close", "stopped working",
				"app closed unexpectedly")
		},
	},
	{
		name:     "generic_integration",
		category: domain.CategoryIntegrationFailures,
		match: func(t string) bool {
			return containsAny(t, "printer", "bluetooth", "weighing scale",
				"payment gateway", "google", "firebase", "upi", "razorpay")
		},
	},
	{
		name:     "generic_configuration",
		category: domain.CategoryConfigurationIssues,
		match: func(t string) bool {
			return containsAny(t, "settings", "configuration", "preference",
				"does not save setting", "default value wrong")
		},
	},
	{
		name:     "generic_data_integrity",
		category: domain.CategoryDataIntegrityIssues,
		match: func(t string) bool {
			return containsAny(t, "wrong total", "incorrect", "mismatch", "duplicate",
				"missing data", "data lost", "not saved")
		},
	},
	{
		name:     "generic_ui_ux",
		category: domain.CategoryUIUXIssues,
		match: func(t string) bool {
			return containsAny(t, "ui", "ux", "alignment", "overlap", "cut off",
				"hard to read", "too small", "button not visible")
		},
	},
	{
		name:     "generic_functional",
		category: domain.CategoryFunctionalErrors,
		match: func(t string) bool {
			return containsAny(t, "does not work", "not working", "cannot", "can t",
				"fails", "not possible", "broken", "stuck action")
		},
	},
	{
		name:     "generic_compatibility",
		category: domain.CategoryCompatibilityIssues,
		match: func(t string) bool {
			return containsAny(t, "only on my phone", "android 14", "ios", "tablet",
				"resolution", "screen size")
		},
	},
}

// matchCommentRules runs the ordered comment rule list over a normalized
// comment. Returns the rule name for audit logging.
func matchCommentRules(normalized string) (domain.Category, string, bool) {
	if strings.TrimSpace(normalized) == "" {
		return "", "", false
	}
	for _, rule := range commentRules {
		if rule.match(normalized) {
			return rule.category, rule.name, true
		}
	}
	return "", "", false
}
