package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/logger"
)

// categoryFile is one entry of the categories resource.
type categoryFile struct {
	ID string `json:"id"`
}

// rulesFile is the on-disk shape of the rules resource. Keyword and regex
// maps are JSON objects keyed by substring/pattern.
type rulesFile struct {
	PriorityOrder []string          `json:"priority_order"`
	KeywordMap    map[string]string `json:"keyword_map"`
	RegexMap      map[string]string `json:"regex_map"`
	Structured    map[string]string `json:"structured_token_patterns"`
}

// Load reads the categories and rules resources and builds a catalog. Any
// whole-file failure substitutes the built-in defaults for that resource;
// an individual regex that fails to compile or an entry naming an unknown
// category is skipped. Load never fails outright: the engine is always left
// with a usable catalog.
func Load(categoriesPath, rulesPath string, log logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewNop()
	}

	cat := &Catalog{}

	categories, err := loadCategories(categoriesPath)
	if err != nil {
		log.Warn("categories resource unavailable, using built-in enumeration",
			logger.String("path", categoriesPath),
			logger.Error(err))
		categories = append([]domain.Category(nil), domain.CanonicalCategories...)
	}
	cat.Categories = categories
	cat.categorySet = make(map[domain.Category]struct{}, len(categories))
	for _, c := range categories {
		cat.categorySet[c] = struct{}{}
	}

	rf, err := loadRules(rulesPath)
	if err != nil {
		log.Warn("rules resource unavailable, using built-in catalog",
			logger.String("path", rulesPath),
			logger.Error(err))
		def := defaultCatalog()
		cat.PriorityOrder = def.PriorityOrder
		cat.Keywords = def.Keywords
		cat.Regexes = def.Regexes
		cat.Structured = def.Structured
		cat.build()
		return cat
	}

	applyRules(cat, rf, log)
	cat.build()

	log.Info("rule catalog loaded",
		logger.String("path", rulesPath),
		logger.Int("categories", len(cat.Categories)),
		logger.Int("keywords", len(cat.Keywords)),
		logger.Int("regexes", len(cat.Regexes)))
	return cat
}

// Default returns the built-in catalog used when no configuration is given.
func Default() *Catalog {
	cat := defaultCatalog()
	cat.build()
	return cat
}

func loadCategories(path string) ([]domain.Category, error) {
	if path == "" {
		return nil, fmt.Errorf("no categories path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	var entries []categoryFile
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("categories resource is empty")
	}
	categories := make([]domain.Category, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		categories = append(categories, domain.Category(e.ID))
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("categories resource has no usable ids")
	}
	return categories, nil
}

func loadRules(path string) (*rulesFile, error) {
	if path == "" {
		return nil, fmt.Errorf("no rules path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rf rulesFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return &rf, nil
}

// applyRules copies the parsed rules resource into the catalog, skipping
// entries that name categories outside the enumeration and patterns that do
// not compile.
func applyRules(cat *Catalog, rf *rulesFile, log logger.Logger) {
	for _, id := range rf.PriorityOrder {
		c := domain.Category(id)
		if !cat.HasCategory(c) {
			log.Warn("priority order names unknown category, skipping",
				logger.String("category", id))
			continue
		}
		cat.PriorityOrder = append(cat.PriorityOrder, c)
	}

	// Map iteration order would leak into the tie-break, so entries are
	// applied in sorted key order.
	for _, kw := range sortedKeys(rf.KeywordMap) {
		id := rf.KeywordMap[kw]
		c := domain.Category(id)
		if kw == "" || !cat.HasCategory(c) {
			log.Warn("keyword map entry invalid, skipping",
				logger.String("keyword", kw),
				logger.String("category", id))
			continue
		}
		cat.Keywords = append(cat.Keywords, KeywordEntry{Keyword: kw, Category: c})
	}

	for _, pattern := range sortedKeys(rf.RegexMap) {
		id := rf.RegexMap[pattern]
		c := domain.Category(id)
		if !cat.HasCategory(c) {
			log.Warn("regex map entry names unknown category, skipping",
				logger.String("pattern", pattern),
				logger.String("category", id))
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			log.Warn("regex pattern failed to compile, skipping",
				logger.String("pattern", pattern),
				logger.Error(err))
			continue
		}
		cat.Regexes = append(cat.Regexes, RegexEntry{Pattern: pattern, Re: re, Category: c})
	}

	cat.Structured = make(map[string]*regexp.Regexp)
	for name, pattern := range rf.Structured {
		re, err := regexp.Compile(pattern)
		if err != nil {
			log.Warn("structured token pattern failed to compile, skipping",
				logger.String("name", name),
				logger.Error(err))
			continue
		}
		cat.Structured[name] = re
	}
	// A rules file without structured patterns still needs the defaults: the
	// weak-signal resolver and the unclear gate depend on them.
	if len(cat.Structured) == 0 {
		cat.Structured = defaultStructuredPatterns()
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
