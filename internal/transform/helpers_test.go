package transform

import (
	"math"
	"testing"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// monthlyDates returns n consecutive month-start dates from January 2020.
func monthlyDates(n int) []time.Time {
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = time.Date(2020, time.Month(1+i), 1, 0, 0, 0, 0, time.UTC)
	}
	return dates
}

// newTestFrame builds a frame with the given columns, all of equal length.
func newTestFrame(t *testing.T, cols map[string][]float64) *domain.Frame {
	t.Helper()
	n := 0
	for _, v := range cols {
		n = len(v)
		break
	}
	f := domain.NewFrame(monthlyDates(n))
	for name, values := range cols {
		if err := f.SetColumn(name, values); err != nil {
			t.Fatalf("SetColumn %s: %v", name, err)
		}
	}
	return f
}

// column fetches a column or fails the test.
func column(t *testing.T, f *domain.Frame, name string) []float64 {
	t.Helper()
	x, ok := f.Column(name)
	if !ok {
		t.Fatalf("column %s not found; have %v", name, f.Columns())
	}
	return x
}

// almostEqual compares floats with a small tolerance; two NaNs are equal.
func almostEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) < 1e-9
}
