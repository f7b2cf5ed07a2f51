// Package main provides the file-based preprocessing entry point:
// raw CSV -> clean -> feature recipe -> features CSV + quality report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/config"
	"github.com/etiennechatreaux/macro-dynamics/internal/ingest"
	"github.com/etiennechatreaux/macro-dynamics/internal/recipe"
	"github.com/etiennechatreaux/macro-dynamics/internal/reporting"
)

func main() {
	input := flag.String("input", "", "Path to raw data CSV")
	recipeName := flag.String("recipe", recipe.ZPlusMomentum, "Preprocessing recipe")
	asof := flag.String("asof", "", "Filter data up to this date (YYYY-MM-DD)")
	outputDir := flag.String("output-dir", "data/features", "Output directory for features")
	reportDir := flag.String("report-dir", "reports", "Output directory for quality report")
	listRecipes := flag.Bool("list-recipes", false, "List available recipes and exit")
	flag.Parse()

	if *listRecipes {
		fmt.Println("Available recipes:")
		for _, name := range recipe.Available {
			fmt.Printf("  %-16s %s\n", name, recipe.Descriptions[name])
		}
		return
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *asof != "" {
		t, err := time.Parse("2006-01-02", *asof)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -asof date %q: %v\n", *asof, err)
			os.Exit(1)
		}
		cfg.AsOf = &t
	}

	// Build the pipeline first: unknown recipes fail before any I/O.
	pipeline, err := recipe.Build(*recipeName, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Macro Preprocessing Pipeline ===")
	fmt.Printf("Recipe: %s\n", *recipeName)
	fmt.Printf("Input:  %s\n", *input)

	raw, err := ingest.LoadCSV(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading input: %v\n", err)
		os.Exit(1)
	}

	clean := ingest.Clean(raw, cfg)
	if err := ingest.Validate(clean, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error validating input: %v\n", err)
		os.Exit(1)
	}

	warnings := ingest.CheckMonthlyCadence(clean)
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	features, err := pipeline.Run(clean)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running pipeline: %v\n", err)
		os.Exit(1)
	}

	featuresPath := filepath.Join(*outputDir, *recipeName+".csv")
	if err := reporting.WriteFrameCSV(features, featuresPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing features: %v\n", err)
		os.Exit(1)
	}

	report := reporting.BuildQualityReport(features, *recipeName, time.Now().UTC())
	report.Warnings = warnings
	reportPath := filepath.Join(*reportDir, "data_quality.json")
	if err := report.WriteJSON(reportPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing quality report: %v\n", err)
		os.Exit(1)
	}
	summaryPath := filepath.Join(*reportDir, "summary.md")
	if err := os.WriteFile(summaryPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nPreprocessing completed:")
	fmt.Printf("  Rows:       %d (from %d raw)\n", features.Len(), raw.Len())
	fmt.Printf("  Features:   %d\n", len(features.Columns()))
	if features.Len() > 0 {
		fmt.Printf("  Date range: %s to %s\n",
			features.Date(0).Format("2006-01-02"),
			features.Date(features.Len()-1).Format("2006-01-02"))
	}
	fmt.Printf("  Output:     %s\n", featuresPath)
	fmt.Printf("  Report:     %s\n", reportPath)
	fmt.Printf("  Summary:    %s\n", summaryPath)
}
