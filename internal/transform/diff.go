package transform

import (
	"fmt"
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// Diff computes momentum columns: for each (source, period) pair it appends
// <column>_D<p>M = x[t] - x[t-p]. Rows where t-p precedes the series start
// are NaN. Absent source columns are skipped.
type Diff struct {
	columns []string
	periods []int
}

// NewDiff creates a diff step over the given columns and lag periods.
func NewDiff(columns []string, periods []int) *Diff {
	return &Diff{columns: columns, periods: periods}
}

// Apply appends one momentum column per (present source, period) pair.
func (d *Diff) Apply(f *domain.Frame) (*domain.Frame, error) {
	out := f.Clone()

	for _, col := range d.columns {
		x, ok := out.Column(col)
		if !ok {
			continue
		}
		for _, p := range d.periods {
			values := make([]float64, len(x))
			for t := range x {
				if t-p < 0 || math.IsNaN(x[t]) || math.IsNaN(x[t-p]) {
					values[t] = math.NaN()
					continue
				}
				values[t] = x[t] - x[t-p]
			}
			name := fmt.Sprintf("%s_D%dM", col, p)
			if err := out.SetColumn(name, values); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
