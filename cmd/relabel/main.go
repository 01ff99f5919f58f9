// Command relabel re-runs the triage engine over an exported report file
// and rewrites the category labels.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jonesrussell/report-triage/internal/bootstrap"
	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/engine"
	"github.com/jonesrussell/report-triage/internal/relabel"
)

func main() {
	var (
		inPath  = flag.String("in", "", "path to the exported reports JSON file")
		outPath = flag.String("out", "", "output path (defaults to rewriting the input file)")
	)
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *outPath == "" {
		*outPath = *inPath
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	cat := catalog.Load(cfg.Catalog.CategoriesPath, cfg.Catalog.RulesPath, lg)
	eng := engine.New(cat, lg)

	summary, err := relabel.New(eng, lg).Run(*inPath, *outPath)
	if err != nil {
		log.Fatalf("Relabel failed: %v", err)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Encode summary: %v", err)
	}
	fmt.Println(string(out))
}
