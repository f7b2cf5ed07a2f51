// Package orchestrator coordinates the store-backed pipeline:
// observations -> frame -> recipe pipelines -> feature rows.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/etiennechatreaux/macro-dynamics/internal/config"
	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
	"github.com/etiennechatreaux/macro-dynamics/internal/ingest"
	"github.com/etiennechatreaux/macro-dynamics/internal/recipe"
	"github.com/etiennechatreaux/macro-dynamics/internal/storage"
)

// Orchestrator loads raw observations, runs one or more feature recipes over
// them and persists the resulting feature rows.
type Orchestrator struct {
	observationStore storage.ObservationStore
	featureStore     storage.FeatureStore
	cfg              config.Config
	recipes          []string
	verbose          bool
}

// Options for creating an Orchestrator.
type Options struct {
	ObservationStore storage.ObservationStore
	FeatureStore     storage.FeatureStore
	Config           config.Config

	// Recipes to run. Defaults to recipe.Available when empty.
	Recipes []string

	Verbose bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	recipes := opts.Recipes
	if len(recipes) == 0 {
		recipes = recipe.Available
	}
	return &Orchestrator{
		observationStore: opts.ObservationStore,
		featureStore:     opts.FeatureStore,
		cfg:              opts.Config,
		recipes:          recipes,
		verbose:          opts.Verbose,
	}
}

// RunResult contains results from orchestrator execution.
type RunResult struct {
	ObservationsLoaded int
	RecipesRun         int
	FeaturesWritten    int
	RowsPerRecipe      map[string]int
	Warnings           []string
}

// Run executes the full store-backed pipeline. Recipe pipelines are built
// before any computation starts, so an unknown recipe name fails the run up
// front.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	// Build all pipelines first: unknown recipe identifiers are fatal
	// before any computation begins.
	pipelines := make([]*recipe.Pipeline, 0, len(o.recipes))
	for _, name := range o.recipes {
		p, err := recipe.Build(name, o.cfg)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, p)
	}

	points, err := o.observationStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no observations in store")
	}

	raw := domain.FrameFromObservations(points)
	clean := ingest.Clean(raw, o.cfg)
	if err := ingest.Validate(clean, o.cfg); err != nil {
		return nil, fmt.Errorf("validate observations: %w", err)
	}

	result := &RunResult{
		ObservationsLoaded: len(points),
		RowsPerRecipe:      make(map[string]int),
		Warnings:           ingest.CheckMonthlyCadence(clean),
	}

	for _, p := range pipelines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		features, err := p.Run(clean)
		if err != nil {
			return nil, err
		}

		featurePoints := features.FeaturePoints(p.Recipe())
		if len(featurePoints) > 0 {
			if err := o.featureStore.InsertBulk(ctx, featurePoints); err != nil {
				return nil, fmt.Errorf("persist features for %s: %w", p.Recipe(), err)
			}
		}

		result.RecipesRun++
		result.FeaturesWritten += len(featurePoints)
		result.RowsPerRecipe[p.Recipe()] = features.Len()

		if o.verbose {
			fmt.Printf("  recipe %s: %d rows, %d feature values\n",
				p.Recipe(), features.Len(), len(featurePoints))
		}
	}

	return result, nil
}
