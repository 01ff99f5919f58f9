package engine

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/report-triage/internal/catalog"
)

// Usability gate thresholds and patterns.
const minUsableTextLen = 10

var (
	digitRe    = regexp.MustCompile(`\d`)
	dateRe     = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	timeRe     = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`)
	keyValueRe = regexp.MustCompile(`\b[a-z][a-z0-9_\s]{2,}:\s*\S+`)

	currencyTokenRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:rs|inr)\b`),
		regexp.MustCompile(`₹`),
		regexp.MustCompile(`\bamount\b`),
		regexp.MustCompile(`\btotal\b`),
		regexp.MustCompile(`\bbalance\b`),
	}
)

// headerKeywords are recognizable field headers that mark a screenshot or
// comment as carrying real content.
var headerKeywords = []string{
	"date", "time", "invoice", "total", "amount", "balance", "settings",
	"login", "sign in", "signin", "password", "otp", "error", "failed", "network",
}

// filenameHintKeywords mark a filename as indicative on its own.
var filenameHintKeywords = []string{"login", "signin", "error", "timeout", "network"}

// hasUsableContent decides whether the report carries any signal at all. The
// inputs are the lightly-normalized comment and OCR texts (punctuation
// preserved, so date/time and "label: value" shapes are still visible) plus
// raw filenames, including a derived log filename when present.
func hasUsableContent(comment string, ocrTexts, filenames []string) bool {
	combined := combineTexts(comment, ocrTexts)

	if len(combined) >= minUsableTextLen {
		return true
	}
	if digitRe.MatchString(combined) ||
		dateRe.MatchString(combined) ||
		timeRe.MatchString(combined) {
		return true
	}
	if containsAny(combined, headerKeywords...) {
		return true
	}
	for _, re := range currencyTokenRes {
		if re.MatchString(combined) {
			return true
		}
	}
	if keyValueRe.MatchString(combined) {
		return true
	}

	for _, fn := range filenames {
		f := normalizeFilename(fn)
		if f == "" {
			continue
		}
		if containsAny(f, filenameHintKeywords...) {
			return true
		}
		if dateRe.MatchString(f) || digitRe.MatchString(f) {
			return true
		}
		if strings.HasSuffix(f, ".txt") || strings.HasSuffix(f, ".log") {
			return true
		}
	}

	return false
}

// allowUnclear reports whether "insufficient information" is a legitimate
// verdict: only when the basic usability check fails AND neither the
// configured catalog nor the structured token patterns find anything in the
// combined text.
func allowUnclear(cat *catalog.Catalog, comment string, ocrTexts, filenames []string) bool {
	if hasUsableContent(comment, ocrTexts, filenames) {
		return false
	}
	return !cat.HasAnyRuleSignal(combineTexts(comment, ocrTexts))
}

// combineTexts joins the normalized comment and OCR texts for gate and
// weak-signal evaluation.
func combineTexts(comment string, ocrTexts []string) string {
	parts := make([]string, 0, 1+len(ocrTexts))
	if comment != "" {
		parts = append(parts, comment)
	}
	for _, t := range ocrTexts {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " \n ")
}
