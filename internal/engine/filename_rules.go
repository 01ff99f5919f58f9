package engine

import (
	"strings"

	"github.com/jonesrussell/report-triage/internal/domain"
)

// matchFilenameRules inspects one bare filename. Log and text attachments
// return no-match: a log file alone must never force a category, though it
// still counts toward the usability gate.
func matchFilenameRules(filename string) (domain.Category, bool) {
	f := normalizeFilename(filename)
	if f == "" {
		return "", false
	}

	if strings.HasSuffix(f, ".txt") || strings.HasSuffix(f, ".log") {
		return "", false
	}

	if strings.Contains(f, "screenshot") && strings.Contains(f, "error") {
		return domain.CategoryFunctionalErrors, true
	}
	if strings.Contains(f, "login") || strings.Contains(f, "signin") {
		return domain.CategoryAuthenticationAccess, true
	}
	if strings.Contains(f, "timeout") || strings.Contains(f, "network") {
		return domain.CategoryConnectivityProblems, true
	}

	return "", false
}
