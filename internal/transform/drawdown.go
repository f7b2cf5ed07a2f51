package transform

import (
	"fmt"
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// Drawdown computes the decline of a level series from its trailing peak:
// x[t] / max(x[t-W..t-1]) - 1. The rolling max is taken over the
// one-step-lagged series, so the value at t never forms its own peak and the
// first row is always NaN. A single past value is enough to form a peak
// (min periods 1).
type Drawdown struct {
	source string
	window int
	output string
}

// NewDrawdown creates a level drawdown step. If output is empty the column
// is named <source>_DD_<window>M.
func NewDrawdown(source string, window int, output string) *Drawdown {
	if output == "" {
		output = fmt.Sprintf("%s_DD_%dM", source, window)
	}
	return &Drawdown{source: source, window: window, output: output}
}

// Apply appends the drawdown column.
func (d *Drawdown) Apply(f *domain.Frame) (*domain.Frame, error) {
	x, ok := f.Column(d.source)
	if !ok {
		return nil, fmt.Errorf("drawdown %s: %w: %s", d.output, ErrColumnMissing, d.source)
	}

	peaks := rollingMax(lag1(x), d.window, 1)

	values := make([]float64, len(x))
	for t := range x {
		if math.IsNaN(x[t]) || math.IsNaN(peaks[t]) {
			values[t] = math.NaN()
			continue
		}
		values[t] = x[t]/peaks[t] - 1
	}

	out := f.Clone()
	if err := out.SetColumn(d.output, values); err != nil {
		return nil, err
	}
	return out, nil
}

// CumulativeDrawdown computes drawdown in log space from a cumulative log
// return series: cum[t] - max(cum[t-W..t-1]). Same lag-before-window rule as
// Drawdown; subtraction replaces the ratio because the input is already a
// log level.
type CumulativeDrawdown struct {
	source string
	window int
	output string
}

// NewCumulativeDrawdown creates a log-space drawdown step.
func NewCumulativeDrawdown(source string, window int, output string) *CumulativeDrawdown {
	if output == "" {
		output = fmt.Sprintf("%s_DD_%dM", source, window)
	}
	return &CumulativeDrawdown{source: source, window: window, output: output}
}

// Apply appends the drawdown column.
func (d *CumulativeDrawdown) Apply(f *domain.Frame) (*domain.Frame, error) {
	x, ok := f.Column(d.source)
	if !ok {
		return nil, fmt.Errorf("drawdown %s: %w: %s", d.output, ErrColumnMissing, d.source)
	}

	peaks := rollingMax(lag1(x), d.window, 1)

	values := make([]float64, len(x))
	for t := range x {
		if math.IsNaN(x[t]) || math.IsNaN(peaks[t]) {
			values[t] = math.NaN()
			continue
		}
		values[t] = x[t] - peaks[t]
	}

	out := f.Clone()
	if err := out.SetColumn(d.output, values); err != nil {
		return nil, err
	}
	return out, nil
}
