package transform

import (
	"fmt"
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// CumulativeSum appends a running sum of a return column. The cumulative sum
// of log returns is the log of the cumulative price ratio, which synthesizes
// a price-level proxy when only returns are available.
//
// NaN inputs stay NaN in the output and do not contribute to the running sum.
// A missing source column is fatal: the step only appears in recipes that
// require the return series.
type CumulativeSum struct {
	source string
	output string
}

// NewCumulativeSum creates a cumulative-sum step.
func NewCumulativeSum(source, output string) *CumulativeSum {
	return &CumulativeSum{source: source, output: output}
}

// Apply appends the cumulative column.
func (c *CumulativeSum) Apply(f *domain.Frame) (*domain.Frame, error) {
	x, ok := f.Column(c.source)
	if !ok {
		return nil, fmt.Errorf("cumulative sum %s: %w: %s", c.output, ErrColumnMissing, c.source)
	}

	values := make([]float64, len(x))
	sum := 0.0
	for i := range x {
		if math.IsNaN(x[i]) {
			values[i] = math.NaN()
			continue
		}
		sum += x[i]
		values[i] = sum
	}

	out := f.Clone()
	if err := out.SetColumn(c.output, values); err != nil {
		return nil, err
	}
	return out, nil
}
