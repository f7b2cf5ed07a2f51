// Package main provides the store-backed pipeline entry point.
// Executes: observations -> cleaning -> feature recipes -> feature rows.
//
// With no DSN flags the pipeline runs on in-memory stores seeded from a CSV
// fixture. With -postgres-dsn and -clickhouse-dsn it reads observations from
// PostgreSQL and writes feature rows to ClickHouse, applying migrations first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/etiennechatreaux/macro-dynamics/internal/config"
	"github.com/etiennechatreaux/macro-dynamics/internal/ingest"
	"github.com/etiennechatreaux/macro-dynamics/internal/orchestrator"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage"
	chstore "github.com/etiennechatreaux/macro-dynamics/internal/storage/clickhouse"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage/memory"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage/migrations"
	pgstore "github.com/etiennechatreaux/macro-dynamics/internal/storage/postgres"
)

func main() {
	input := flag.String("input", "", "CSV fixture to seed the observation store (memory mode)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL DSN for observations (empty = memory store)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN for feature rows (empty = memory store)")
	recipes := flag.String("recipes", "", "Comma-separated recipes to run (default: all)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling pipeline...\n", sig)
		cancel()
	}()

	var recipeList []string
	if *recipes != "" {
		for _, name := range strings.Split(*recipes, ",") {
			recipeList = append(recipeList, strings.TrimSpace(name))
		}
	}

	obsStore, featStore, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up stores: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	fmt.Println("=== Feature Pipeline ===")
	orch := orchestrator.New(orchestrator.Options{
		ObservationStore: obsStore,
		FeatureStore:     featStore,
		Config:           config.Default(),
		Recipes:          recipeList,
		Verbose:          *verbose,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	fmt.Println("Pipeline completed:")
	fmt.Printf("  Observations: %d\n", result.ObservationsLoaded)
	fmt.Printf("  Recipes:      %d\n", result.RecipesRun)
	fmt.Printf("  Features:     %d\n", result.FeaturesWritten)

	names := make([]string, 0, len(result.RowsPerRecipe))
	for name := range result.RowsPerRecipe {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("    %-16s %d rows\n", name, result.RowsPerRecipe[name])
	}
}

// createStores wires observation and feature stores from the DSN flags.
// Memory mode requires a CSV fixture to seed observations.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN, input string) (storage.ObservationStore, storage.FeatureStore, func(), error) {
	cleanup := func() {}

	var obsStore storage.ObservationStore
	switch {
	case postgresDSN != "":
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, cleanup, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, cleanup, err
		}
		cleanup = pool.Close
		obsStore = pgstore.NewObservationStore(pool)
	case input != "":
		raw, err := ingest.LoadCSV(input)
		if err != nil {
			return nil, nil, cleanup, err
		}
		store := memory.NewObservationStore()
		if err := store.InsertBulk(ctx, raw.ObservationPoints()); err != nil {
			return nil, nil, cleanup, err
		}
		obsStore = store
	default:
		return nil, nil, cleanup, fmt.Errorf("either -postgres-dsn or -input is required")
	}

	var featStore storage.FeatureStore
	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, func() {}, err
		}
		prev := cleanup
		cleanup = func() {
			conn.Close()
			prev()
		}
		featStore = chstore.NewFeatureStore(conn)
	} else {
		featStore = memory.NewFeatureStore()
	}

	return obsStore, featStore, cleanup, nil
}
