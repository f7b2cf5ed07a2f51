package ingest

import (
	"fmt"
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/config"
	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// Clean prepares a raw frame for the feature pipeline:
//  1. rename raw headers to canonical column names,
//  2. drop rows after the as-of date, when one is configured,
//  3. forward-fill short gaps (at most FfillMaxGap consecutive missing rows),
//  4. drop leading rows where any required column is still missing.
func Clean(f *domain.Frame, cfg config.Config) *domain.Frame {
	out := f.Rename(cfg.ColumnRename)

	if cfg.AsOf != nil {
		keep := make([]bool, out.Len())
		for i := range keep {
			keep[i] = !out.Date(i).After(*cfg.AsOf)
		}
		out = out.FilterRows(keep)
	}

	if cfg.FfillMaxGap > 0 {
		out = forwardFill(out, cfg.FfillMaxGap)
	}

	if cfg.DropInitialNA {
		out = dropInitialIncomplete(out, cfg.RequiredColumns)
	}

	return out
}

// forwardFill fills missing values with the last observed value, but only
// for the first maxGap rows of each gap. Longer gaps stay missing and are
// caught by validation or the trailing prune.
func forwardFill(f *domain.Frame, maxGap int) *domain.Frame {
	out := f.Clone()
	for _, name := range out.Columns() {
		x, _ := out.Column(name)
		values := make([]float64, len(x))
		copy(values, x)

		last := math.NaN()
		run := 0
		for i := range values {
			if !math.IsNaN(values[i]) {
				last = values[i]
				run = 0
				continue
			}
			run++
			if run <= maxGap && !math.IsNaN(last) {
				values[i] = last
			}
		}
		out.SetColumn(name, values)
	}
	return out
}

// dropInitialIncomplete removes leading rows until every required column
// present in the frame has a value.
func dropInitialIncomplete(f *domain.Frame, required []string) *domain.Frame {
	first := 0
	for ; first < f.Len(); first++ {
		complete := true
		for _, name := range required {
			x, ok := f.Column(name)
			if !ok {
				continue
			}
			if math.IsNaN(x[first]) {
				complete = false
				break
			}
		}
		if complete {
			break
		}
	}

	if first == 0 {
		return f.Clone()
	}
	keep := make([]bool, f.Len())
	for i := first; i < f.Len(); i++ {
		keep[i] = true
	}
	return f.FilterRows(keep)
}

// Validate checks the cleaned frame against the configuration: every
// required column must be present and the date index strictly increasing.
func Validate(f *domain.Frame, cfg config.Config) error {
	for _, name := range cfg.RequiredColumns {
		if !f.HasColumn(name) {
			return fmt.Errorf("required column missing from input: %s", name)
		}
	}
	for i := 1; i < f.Len(); i++ {
		if !f.Date(i).After(f.Date(i - 1)) {
			return fmt.Errorf("date index not strictly increasing at row %d (%s)", i, f.Date(i).Format(dateLayout))
		}
	}
	return nil
}

// CheckMonthlyCadence returns a warning per consecutive date pair whose
// spacing is far from one month. The pipeline does not enforce cadence;
// these are advisory only.
func CheckMonthlyCadence(f *domain.Frame) []string {
	var warnings []string
	for i := 1; i < f.Len(); i++ {
		days := f.Date(i).Sub(f.Date(i-1)).Hours() / 24
		if days < 25 || days > 45 {
			warnings = append(warnings, fmt.Sprintf(
				"gap of %.0f days between %s and %s (expected monthly cadence)",
				days, f.Date(i-1).Format(dateLayout), f.Date(i).Format(dateLayout)))
		}
	}
	return warnings
}
