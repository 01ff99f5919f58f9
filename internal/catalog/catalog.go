// Package catalog holds the rule catalog the triage engine matches against:
// a category priority order, a keyword map, a regex map, and the structured
// token patterns. Catalogs are immutable once built and safe for concurrent
// readers.
package catalog

import (
	"regexp"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/report-triage/internal/domain"
)

// KeywordEntry binds a lowercase substring to a category.
type KeywordEntry struct {
	Keyword  string
	Category domain.Category
}

// RegexEntry binds a compiled pattern to a category.
type RegexEntry struct {
	Pattern  string
	Re       *regexp.Regexp
	Category domain.Category
}

// Structured token pattern names.
const (
	TokenDate     = "date"
	TokenTime     = "time"
	TokenCurrency = "currency"
	TokenAmount   = "amount"
	TokenCoins    = "coins"
)

// Catalog is the loaded, immutable rule catalog.
type Catalog struct {
	Categories    []domain.Category
	PriorityOrder []domain.Category

	Keywords []KeywordEntry
	Regexes  []RegexEntry

	// Structured patterns detect quantifiable content (dates, amounts); they
	// never assign a category by themselves.
	Structured map[string]*regexp.Regexp

	categorySet   map[domain.Category]struct{}
	priorityIndex map[domain.Category]int
	matcher       *ahocorasick.Matcher
}

// Match is the outcome of matching a text against the keyword and regex maps.
type Match struct {
	Category domain.Category
	// Hits is the number of distinct keyword/regex entries that matched for
	// the winning category.
	Hits int
	// RegexContributed reports whether any contributing match came from the
	// regex map rather than the keyword map.
	RegexContributed bool
}

// build finalizes a catalog's derived state. Called once at load; the
// catalog is read-only afterward.
func (c *Catalog) build() {
	c.categorySet = make(map[domain.Category]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		c.categorySet[cat] = struct{}{}
	}

	c.priorityIndex = make(map[domain.Category]int, len(c.PriorityOrder))
	for i, cat := range c.PriorityOrder {
		if _, seen := c.priorityIndex[cat]; !seen {
			c.priorityIndex[cat] = i
		}
	}

	if len(c.Keywords) > 0 {
		patterns := make([]string, len(c.Keywords))
		for i, kw := range c.Keywords {
			patterns[i] = kw.Keyword
		}
		c.matcher = ahocorasick.NewStringMatcher(patterns)
	}
}

// HasCategory reports whether id belongs to the catalog's enumeration.
func (c *Catalog) HasCategory(id domain.Category) bool {
	_, ok := c.categorySet[id]
	return ok
}

// PriorityIndex returns the tie-break rank of a category. Categories absent
// from the priority order sort after every listed one.
func (c *Catalog) PriorityIndex(cat domain.Category) int {
	if i, ok := c.priorityIndex[cat]; ok {
		return i
	}
	return len(c.PriorityOrder)
}

// MatchText runs the keyword and regex maps over an already-normalized text
// and resolves ties via the priority order. Returns nil when nothing matches.
func (c *Catalog) MatchText(text string) *Match {
	if text == "" {
		return nil
	}

	type accum struct {
		hits  int
		regex bool
		order int // insertion order for stable tie-breaking
	}
	byCategory := make(map[domain.Category]*accum)
	next := 0
	record := func(cat domain.Category, fromRegex bool) {
		acc, ok := byCategory[cat]
		if !ok {
			acc = &accum{order: next}
			next++
			byCategory[cat] = acc
		}
		acc.hits++
		acc.regex = acc.regex || fromRegex
	}

	if c.matcher != nil {
		for _, idx := range c.matcher.Match([]byte(text)) {
			if idx < len(c.Keywords) {
				record(c.Keywords[idx].Category, false)
			}
		}
	}
	for _, re := range c.Regexes {
		if re.Re.MatchString(text) {
			record(re.Category, true)
		}
	}

	if len(byCategory) == 0 {
		return nil
	}

	var best domain.Category
	bestAcc := (*accum)(nil)
	for cat, acc := range byCategory {
		if bestAcc == nil {
			best, bestAcc = cat, acc
			continue
		}
		pi, pb := c.PriorityIndex(cat), c.PriorityIndex(best)
		if pi < pb || (pi == pb && acc.order < bestAcc.order) {
			best, bestAcc = cat, acc
		}
	}

	return &Match{Category: best, Hits: bestAcc.hits, RegexContributed: bestAcc.regex}
}

// StructuredTokenPresent reports whether any structured token pattern
// matches the normalized text.
func (c *Catalog) StructuredTokenPresent(text string) bool {
	if text == "" {
		return false
	}
	for _, re := range c.Structured {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// StructuredToken reports whether the named structured pattern matches.
func (c *Catalog) StructuredToken(name, text string) bool {
	re, ok := c.Structured[name]
	return ok && text != "" && re.MatchString(text)
}

// HasAnyRuleSignal reports whether the keyword map, regex map, or structured
// patterns find anything in the text. The unclear gate uses this as its
// second tier: any catalog signal forbids an unclear verdict.
func (c *Catalog) HasAnyRuleSignal(text string) bool {
	if text == "" {
		return false
	}
	if c.MatchText(text) != nil {
		return true
	}
	return c.StructuredTokenPresent(text)
}
