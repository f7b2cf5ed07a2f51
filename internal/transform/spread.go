package transform

import (
	"fmt"
	"math"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// Spread computes a same-row difference between two columns, e.g. the yield
// curve slope US10Y - US2Y. There is no windowing and no leakage concern.
//
// Unlike the soft-skip primitives, a missing input column here is fatal:
// the spread inputs are structural to every recipe.
type Spread struct {
	left   string
	right  string
	output string
}

// NewSpread creates a spread step computing output = left - right.
func NewSpread(left, right, output string) *Spread {
	return &Spread{left: left, right: right, output: output}
}

// Apply appends the spread column.
func (s *Spread) Apply(f *domain.Frame) (*domain.Frame, error) {
	a, ok := f.Column(s.left)
	if !ok {
		return nil, fmt.Errorf("spread %s: %w: %s", s.output, ErrColumnMissing, s.left)
	}
	b, ok := f.Column(s.right)
	if !ok {
		return nil, fmt.Errorf("spread %s: %w: %s", s.output, ErrColumnMissing, s.right)
	}

	values := make([]float64, len(a))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			values[i] = math.NaN()
			continue
		}
		values[i] = a[i] - b[i]
	}

	out := f.Clone()
	if err := out.SetColumn(s.output, values); err != nil {
		return nil, err
	}
	return out, nil
}
