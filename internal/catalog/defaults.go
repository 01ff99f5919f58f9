package catalog

import (
	"regexp"

	"github.com/jonesrussell/report-triage/internal/domain"
)

// defaultPriorityOrder breaks ties when several categories match through the
// keyword/regex maps: lowest index wins.
var defaultPriorityOrder = []domain.Category{
	domain.CategoryFeatureRequests,
	domain.CategoryConnectivityProblems,
	domain.CategoryAuthenticationAccess,
	domain.CategoryPerformanceIssues,
	domain.CategoryCrashStability,
	domain.CategoryIntegrationFailures,
	domain.CategoryConfigurationIssues,
	domain.CategoryDataIntegrityIssues,
	domain.CategoryUIUXIssues,
	domain.CategoryFunctionalErrors,
	domain.CategoryCompatibilityIssues,
	domain.CategoryProductQuality,
}

// defaultKeywords is the built-in keyword map. Substrings are matched
// against normalized text.
var defaultKeywords = []KeywordEntry{
	{"feature request", domain.CategoryFeatureRequests},
	{"please add", domain.CategoryFeatureRequests},
	{"would be great", domain.CategoryFeatureRequests},
	{"enhancement", domain.CategoryFeatureRequests},

	{"unable to connect", domain.CategoryConnectivityProblems},
	{"no internet", domain.CategoryConnectivityProblems},
	{"network error", domain.CategoryConnectivityProblems},
	{"api failed", domain.CategoryConnectivityProblems},
	{"server error", domain.CategoryConnectivityProblems},
	{"timeout", domain.CategoryConnectivityProblems},

	{"sign in", domain.CategoryAuthenticationAccess},
	{"authentication", domain.CategoryAuthenticationAccess},
	{"password", domain.CategoryAuthenticationAccess},
	{"permission denied", domain.CategoryAuthenticationAccess},
	{"access denied", domain.CategoryAuthenticationAccess},

	{"loading forever", domain.CategoryPerformanceIssues},
	{"takes too long", domain.CategoryPerformanceIssues},
	{"sluggish", domain.CategoryPerformanceIssues},
	{"very slow", domain.CategoryPerformanceIssues},

	{"force close", domain.CategoryCrashStability},
	{"stopped working", domain.CategoryCrashStability},
	{"app closed unexpectedly", domain.CategoryCrashStability},
	{"crash", domain.CategoryCrashStability},

	{"printer", domain.CategoryIntegrationFailures},
	{"bluetooth", domain.CategoryIntegrationFailures},
	{"weighing scale", domain.CategoryIntegrationFailures},
	{"payment gateway", domain.CategoryIntegrationFailures},
	{"razorpay", domain.CategoryIntegrationFailures},
	{"upi", domain.CategoryIntegrationFailures},

	{"settings", domain.CategoryConfigurationIssues},
	{"configuration", domain.CategoryConfigurationIssues},
	{"preference", domain.CategoryConfigurationIssues},
	{"default value wrong", domain.CategoryConfigurationIssues},

	{"wrong total", domain.CategoryDataIntegrityIssues},
	{"mismatch", domain.CategoryDataIntegrityIssues},
	{"duplicate", domain.CategoryDataIntegrityIssues},
	{"missing data", domain.CategoryDataIntegrityIssues},
	{"data lost", domain.CategoryDataIntegrityIssues},
	{"not saved", domain.CategoryDataIntegrityIssues},

	{"alignment", domain.CategoryUIUXIssues},
	{"overlap", domain.CategoryUIUXIssues},
	{"cut off", domain.CategoryUIUXIssues},
	{"hard to read", domain.CategoryUIUXIssues},
	{"button not visible", domain.CategoryUIUXIssues},

	{"does not work", domain.CategoryFunctionalErrors},
	{"not working", domain.CategoryFunctionalErrors},
	{"broken", domain.CategoryFunctionalErrors},

	{"only on my phone", domain.CategoryCompatibilityIssues},
	{"screen size", domain.CategoryCompatibilityIssues},
	{"resolution", domain.CategoryCompatibilityIssues},

	{"bad quality", domain.CategoryProductQuality},
	{"poor quality", domain.CategoryProductQuality},
	{"damaged", domain.CategoryProductQuality},
}

// defaultRegexes is the built-in regex map.
var defaultRegexes = []RegexEntry{
	{
		Pattern:  `\bapp (wo ?n ?t|does ?n ?o ?t|can ?t) open\b`,
		Category: domain.CategoryCrashStability,
	},
	{
		Pattern:  `\b(login|log in|signin|otp)\b`,
		Category: domain.CategoryAuthenticationAccess,
	},
	{
		Pattern:  `\b(lag|lagging|freez\w*|hang\w*)\b`,
		Category: domain.CategoryPerformanceIssues,
	},
	{
		Pattern:  `\brate ?card\b`,
		Category: domain.CategoryConfigurationIssues,
	},
	{
		Pattern:  `\b(android|ios) \d+\b`,
		Category: domain.CategoryCompatibilityIssues,
	},
}

// defaultStructuredPatterns detect quantifiable content; they never assign a
// category on their own.
func defaultStructuredPatterns() map[string]*regexp.Regexp {
	return map[string]*regexp.Regexp{
		TokenDate:     regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		TokenTime:     regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`),
		TokenCurrency: regexp.MustCompile(`₹|\b(?:rs|inr)\b|\b(?:amount|total|balance)\b`),
		TokenAmount:   regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),
		TokenCoins:    regexp.MustCompile(`\bcoins?\b`),
	}
}

// defaultCatalog builds the built-in fallback catalog. Regex entries are
// compiled with MustCompile: the built-in patterns are fixed and covered by
// tests.
func defaultCatalog() *Catalog {
	regexes := make([]RegexEntry, len(defaultRegexes))
	for i, entry := range defaultRegexes {
		regexes[i] = RegexEntry{
			Pattern:  entry.Pattern,
			Re:       regexp.MustCompile(entry.Pattern),
			Category: entry.Category,
		}
	}
	return &Catalog{
		Categories:    append([]domain.Category(nil), domain.CanonicalCategories...),
		PriorityOrder: append([]domain.Category(nil), defaultPriorityOrder...),
		Keywords:      append([]KeywordEntry(nil), defaultKeywords...),
		Regexes:       regexes,
		Structured:    defaultStructuredPatterns(),
	}
}
