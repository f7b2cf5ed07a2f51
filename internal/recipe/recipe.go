// Package recipe assembles transformation primitives into named feature
// pipelines. The recipe set is closed: every recipe starts with the yield
// curve slope and ends by pruning rows left incomplete by warm-up windows.
package recipe

import (
	"errors"
	"fmt"

	"github.com/etiennechatreaux/macro-dynamics/internal/config"
	"github.com/etiennechatreaux/macro-dynamics/internal/transform"
)

// Recipe identifiers.
const (
	BaselineZ     = "baseline_z"
	ZPlusMomentum = "z_plus_momentum"
	ChangesOnly   = "changes_only"
	LevelsOnly    = "levels_only"
)

// Available lists the recipe identifiers in presentation order.
var Available = []string{BaselineZ, ZPlusMomentum, ChangesOnly, LevelsOnly}

// Descriptions maps each recipe to a one-line summary.
var Descriptions = map[string]string{
	BaselineZ:     "YC_SLOPE + rolling z-scores on levels only",
	ZPlusMomentum: "baseline_z + 1M/6M diffs + equity drawdown",
	ChangesOnly:   "only diffs/momentum, no level z-scores",
	LevelsOnly:    "only level z-scores, no diffs",
}

// ErrUnknownRecipe is returned for identifiers outside the closed recipe set.
var ErrUnknownRecipe = errors.New("unknown recipe")

// Build composes the pipeline for the named recipe. It fails before any
// computation if the name is not in the closed set.
func Build(name string, cfg config.Config) (*Pipeline, error) {
	var steps []Step

	// Structural prefix: every recipe derives the yield curve slope first.
	steps = append(steps, Step{
		Name:      "yc_slope",
		Transform: transform.NewSpread(cfg.SlopeLongColumn, cfg.SlopeShortColumn, cfg.SlopeColumn),
	})

	switch name {
	case BaselineZ:
		steps = append(steps, zscoreSteps(cfg)...)
	case ZPlusMomentum:
		steps = append(steps, momentumSteps(cfg)...)
		steps = append(steps, zscoreSteps(cfg)...)
	case ChangesOnly:
		steps = append(steps, momentumSteps(cfg)...)
	case LevelsOnly:
		steps = append(steps, zscoreSteps(cfg)...)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownRecipe, name, Available)
	}

	// Structural suffix: prune rows left incomplete by warm-up windows.
	steps = append(steps, Step{Name: "drop_na", Transform: transform.NewDropNA()})

	return &Pipeline{recipe: name, steps: steps}, nil
}

// zscoreSteps standardizes level columns and normalizes polarity.
func zscoreSteps(cfg config.Config) []Step {
	return []Step{
		{
			Name:      "zscore",
			Transform: transform.NewRollingZScore(cfg.ZScoreColumns, cfg.ZScoreWindow, cfg.ZScoreMinPeriods),
		},
		{
			Name:      "sign_flip",
			Transform: transform.NewSignFlip(cfg.SignFlipColumns),
		},
	}
}

// momentumSteps synthesizes a cumulative return level, derives the equity
// drawdown from it, and adds diff columns. Ordering matters: the drawdown
// step reads the column the cumulative-sum step produces.
func momentumSteps(cfg config.Config) []Step {
	return []Step{
		{
			Name:      "cum_ret",
			Transform: transform.NewCumulativeSum(cfg.ReturnColumn, cfg.CumReturnColumn),
		},
		{
			Name:      "drawdown",
			Transform: transform.NewCumulativeDrawdown(cfg.CumReturnColumn, cfg.DrawdownWindow, cfg.DrawdownColumn),
		},
		{
			Name:      "diff",
			Transform: transform.NewDiff(cfg.DiffColumns, cfg.DiffPeriods),
		},
	}
}
