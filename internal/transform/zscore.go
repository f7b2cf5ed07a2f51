package transform

import (
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// RollingZScore standardizes columns against a trailing window of strictly
// past values: z[t] = (x[t] - mean(x[t-W..t-1])) / std(x[t-W..t-1]).
//
// The window statistics are computed on the one-step-lagged series, so the
// observation at t never contributes to its own reference mean or std.
// Columns listed but absent from the frame are skipped: recipes may list a
// superset of the columns present in a given configuration.
type RollingZScore struct {
	columns    []string
	window     int
	minPeriods int
	suffix     string
}

// NewRollingZScore creates a rolling z-score step. Output columns are named
// <column>_Z.
func NewRollingZScore(columns []string, window, minPeriods int) *RollingZScore {
	return &RollingZScore{
		columns:    columns,
		window:     window,
		minPeriods: minPeriods,
		suffix:     "_Z",
	}
}

// Apply appends one standardized column per present source column.
func (z *RollingZScore) Apply(f *domain.Frame) (*domain.Frame, error) {
	out := f.Clone()

	for _, col := range z.columns {
		x, ok := out.Column(col)
		if !ok {
			continue
		}

		means, stds := rollingMeanStd(lag1(x), z.window, z.minPeriods)

		scores := make([]float64, len(x))
		for t := range x {
			if math.IsNaN(x[t]) || math.IsNaN(means[t]) || math.IsNaN(stds[t]) {
				scores[t] = math.NaN()
				continue
			}
			// IEEE division on purpose: a zero-std window with a diverging
			// current value is a genuine extreme (+/-Inf), while 0/0 is NaN.
			scores[t] = (x[t] - means[t]) / stds[t]
		}

		if err := out.SetColumn(col+z.suffix, scores); err != nil {
			return nil, err
		}
	}

	return out, nil
}
