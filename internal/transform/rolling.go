package transform

import "math"

// The rolling helpers implement the leakage-safe statistic used by the
// z-score and drawdown primitives. The contract, in two parts:
//
//  1. lag1 shifts the series one step so that index t holds the value
//     observed at t-1.
//  2. The trailing-window aggregate at t is then computed over the lagged
//     series, i.e. over observations at indices t-window .. t-1 of the
//     original series. The observation at t itself is never visible to
//     the window.
//
// Callers combine the UNLAGGED current value with the lagged window
// statistic. That asymmetry is deliberate: the reference statistic is
// "what was knowable before t", the numerator is the observation at t.
// Do not lag the numerator or unlag the window.

// lag1 returns the series shifted forward by one step.
// out[t] = x[t-1]; out[0] is NaN.
func lag1(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	out[0] = math.NaN()
	copy(out[1:], x[:len(x)-1])
	return out
}

// rollingMeanStd computes trailing-window mean and sample standard deviation.
// At each index the window covers the last `window` slots ending at that
// index. A window with fewer than minPeriods defined values yields NaN for
// both; a window with fewer than two defined values yields NaN for std.
func rollingMeanStd(x []float64, window, minPeriods int) (means, stds []float64) {
	n := len(x)
	means = make([]float64, n)
	stds = make([]float64, n)

	for t := 0; t < n; t++ {
		start := t - window + 1
		if start < 0 {
			start = 0
		}

		sum := 0.0
		count := 0
		for i := start; i <= t; i++ {
			if !math.IsNaN(x[i]) {
				sum += x[i]
				count++
			}
		}

		if count < minPeriods || count == 0 {
			means[t] = math.NaN()
			stds[t] = math.NaN()
			continue
		}

		mean := sum / float64(count)
		means[t] = mean

		if count < 2 {
			stds[t] = math.NaN()
			continue
		}

		sumSq := 0.0
		for i := start; i <= t; i++ {
			if !math.IsNaN(x[i]) {
				d := x[i] - mean
				sumSq += d * d
			}
		}
		stds[t] = math.Sqrt(sumSq / float64(count-1))
	}

	return means, stds
}

// rollingMax computes the trailing-window maximum. A window with fewer than
// minPeriods defined values yields NaN.
func rollingMax(x []float64, window, minPeriods int) []float64 {
	n := len(x)
	out := make([]float64, n)

	for t := 0; t < n; t++ {
		start := t - window + 1
		if start < 0 {
			start = 0
		}

		max := math.Inf(-1)
		count := 0
		for i := start; i <= t; i++ {
			if !math.IsNaN(x[i]) {
				count++
				if x[i] > max {
					max = x[i]
				}
			}
		}

		if count < minPeriods || count == 0 {
			out[t] = math.NaN()
		} else {
			out[t] = max
		}
	}

	return out
}
