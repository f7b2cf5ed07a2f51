package transform

import (
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// SignFlip negates named columns in place (overwrites, does not append).
// Used for indicators where a larger value is economically worse, so that
// every standardized feature shares the same polarity: larger = more stress.
// Absent columns are skipped.
type SignFlip struct {
	columns []string
}

// NewSignFlip creates a sign-flip step.
func NewSignFlip(columns []string) *SignFlip {
	return &SignFlip{columns: columns}
}

// Apply overwrites each present column with its negation.
func (s *SignFlip) Apply(f *domain.Frame) (*domain.Frame, error) {
	out := f.Clone()

	for _, col := range s.columns {
		x, ok := out.Column(col)
		if !ok {
			continue
		}
		values := make([]float64, len(x))
		for i := range x {
			if math.IsNaN(x[i]) {
				values[i] = math.NaN()
				continue
			}
			values[i] = -x[i]
		}
		if err := out.SetColumn(col, values); err != nil {
			return nil, err
		}
	}

	return out, nil
}
