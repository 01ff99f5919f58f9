package engine

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/domain"
)

// Weak-signal keyword sets. Lower precision than the strong rules; consulted
// only after strong rules, the configured catalog, and post-adjustment all
// come up empty.
var (
	weakCurrencyRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:rs|inr)\b|₹`),
		regexp.MustCompile(`\bamount\b`),
		regexp.MustCompile(`\btotal\b`),
		regexp.MustCompile(`\bbalance\b`),
		regexp.MustCompile(`\bcoins?\b`),
	}

	weakMismatchWords = []string{"wrong", "mismatch", "not matching", "less", "more", "only", "difference"}

	genericErrorTokens = []string{"error", "fail", "failed", "not working", "does not work",
		"unable", "stuck", "cannot", "can't", "can t"}

	weakConnectivityWords = []string{"no internet", "network", "server", "timeout", "api"}
	weakAuthWords         = []string{"otp", "signin", "sign in", "login", "password", "pin"}
	weakIntegrationWords  = []string{"printer", "bluetooth", "payment", "gateway", "upi", "sync"}
	weakUIWords           = []string{"screen", "button", "display", "layout", "alignment",
		"overlap", "font", "icon"}
	weakPerformanceWords = []string{"loading", "please wait", "processing", "slow", "lag"}
	successWords         = []string{"success", "successful", "completed", "done"}
)

// weakMatch is the outcome of the weak-signal resolver.
type weakMatch struct {
	category  domain.Category
	reason    domain.ReasonCode
	hits      int
	modelUsed bool
}

// resolveWeakSignals applies the best-effort heuristics in fixed order over
// the lightly-normalized combined text; the first hit wins. When the text is
// inconclusive, filenames are scanned as a last resort. Returns nil when no
// weak signal fires.
func resolveWeakSignals(cat *catalog.Catalog, combined string, filenames []string, modelPred domain.Category) *weakMatch {
	if combined != "" {
		if m := resolveWeakText(cat, combined, modelPred); m != nil {
			return m
		}
	}
	return resolveWeakFilenames(filenames)
}

func resolveWeakText(cat *catalog.Catalog, combined string, modelPred domain.Category) *weakMatch {
	structured := cat.StructuredTokenPresent(combined)

	// 1. Numbers alongside currency wording, or any mismatch wording.
	numberPresent := digitRe.MatchString(combined)
	currencyPresent := false
	for _, re := range weakCurrencyRes {
		if re.MatchString(combined) {
			currencyPresent = true
			break
		}
	}
	if (numberPresent && currencyPresent) || containsAny(combined, weakMismatchWords...) {
		return &weakMatch{
			category: domain.CategoryDataIntegrityIssues,
			reason:   domain.ReasonWeakMonetary,
			hits:     countDistinct(combined, weakMismatchWords),
		}
	}

	// 2. Generic error tokens. Two distinct tokens, or one plus a structured
	// token, are enough for a functional-error verdict. A single bare token
	// prefers the model prediction, then UI wording, else falls through.
	genericHits := countDistinct(combined, genericErrorTokens)
	uiHits := countDistinct(combined, weakUIWords)
	if genericHits >= 2 || (genericHits >= 1 && structured) {
		return &weakMatch{
			category: domain.CategoryFunctionalErrors,
			reason:   domain.ReasonWeakGeneric,
			hits:     genericHits,
		}
	}
	if genericHits == 1 {
		if modelPred != "" && modelPred != domain.CategoryUnclear {
			return &weakMatch{
				category:  modelPred,
				reason:    domain.ReasonModelPred,
				modelUsed: true,
			}
		}
		if uiHits >= 1 {
			return &weakMatch{
				category: domain.CategoryUIUXIssues,
				reason:   domain.ReasonWeakUI,
				hits:     uiHits,
			}
		}
		// No model, no UI wording: not decisive on its own.
	}

	// 3–5. Connectivity, auth, integration keyword sets.
	connHits := countDistinct(combined, weakConnectivityWords)
	if connHits > 0 {
		return &weakMatch{
			category: domain.CategoryConnectivityProblems,
			reason:   domain.ReasonWeakConnect,
			hits:     connHits,
		}
	}
	authHits := countDistinct(combined, weakAuthWords)
	if authHits > 0 {
		return &weakMatch{
			category: domain.CategoryAuthenticationAccess,
			reason:   domain.ReasonWeakAuth,
			hits:     authHits,
		}
	}
	integrationHits := countDistinct(combined, weakIntegrationWords)
	if integrationHits > 0 {
		return &weakMatch{
			category: domain.CategoryIntegrationFailures,
			reason:   domain.ReasonWeakIntegr,
			hits:     integrationHits,
		}
	}

	// 6. UI wording with no competing weak signal and no generic-error hits.
	if uiHits >= 1 && genericHits == 0 {
		return &weakMatch{
			category: domain.CategoryUIUXIssues,
			reason:   domain.ReasonWeakUI,
			hits:     uiHits,
		}
	}

	// 7. Performance wording without completion words.
	if containsAny(combined, weakPerformanceWords...) && !containsAny(combined, successWords...) {
		return &weakMatch{
			category: domain.CategoryPerformanceIssues,
			reason:   domain.ReasonWeakPerf,
			hits:     countDistinct(combined, weakPerformanceWords),
		}
	}

	// 8. Fuzzy token matches for OCR misreads of key nouns.
	for _, token := range strings.Fields(combined) {
		if withinEditDistanceOne(token, "coins") {
			return &weakMatch{
				category: domain.CategoryDataIntegrityIssues,
				reason:   domain.ReasonWeakFuzzy,
				hits:     1,
			}
		}
		if withinEditDistanceOne(token, "quality") || withinEditDistanceOne(token, "damage") {
			return &weakMatch{
				category: domain.CategoryProductQuality,
				reason:   domain.ReasonWeakFuzzy,
				hits:     1,
			}
		}
	}

	return nil
}

// resolveWeakFilenames scans filenames with the UI/integration/connectivity
// keyword sets when the text gave nothing.
func resolveWeakFilenames(filenames []string) *weakMatch {
	for _, fn := range filenames {
		f := normalizeFilename(fn)
		if f == "" {
			continue
		}
		switch {
		case containsAny(f, weakUIWords...):
			return &weakMatch{category: domain.CategoryUIUXIssues, reason: domain.ReasonWeakFilename, hits: 1}
		case containsAny(f, weakIntegrationWords...):
			return &weakMatch{category: domain.CategoryIntegrationFailures, reason: domain.ReasonWeakFilename, hits: 1}
		case containsAny(f, weakConnectivityWords...):
			return &weakMatch{category: domain.CategoryConnectivityProblems, reason: domain.ReasonWeakFilename, hits: 1}
		}
	}
	return nil
}

// withinEditDistanceOne reports whether a and b are equal or differ by a
// single substitution, insertion, or deletion. Fixed-token comparison only;
// a general edit-distance implementation is not needed here.
func withinEditDistanceOne(a, b string) bool {
	if a == b {
		return true
	}
	la, lb := len(a), len(b)
	switch {
	case la == lb:
		diff := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diff++
				if diff > 1 {
					return false
				}
			}
		}
		return diff == 1
	case la+1 == lb:
		return oneDeletionApart(b, a)
	case lb+1 == la:
		return oneDeletionApart(a, b)
	default:
		return false
	}
}

// oneDeletionApart reports whether deleting one byte from longer yields
// shorter.
func oneDeletionApart(longer, shorter string) bool {
	i, j := 0, 0
	skipped := false
	for i < len(longer) && j < len(shorter) {
		if longer[i] == shorter[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		i++
	}
	return true
}
