package transform

import (
	"math"
	"regexp"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// Rename renames columns via a mapping. Names absent from the frame are
// ignored.
type Rename struct {
	mapping map[string]string
}

// NewRename creates a rename step.
func NewRename(mapping map[string]string) *Rename {
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &Rename{mapping: m}
}

// Apply returns the frame with columns renamed.
func (r *Rename) Apply(f *domain.Frame) (*domain.Frame, error) {
	return f.Rename(r.mapping), nil
}

// Select subsets columns by explicit list or by name pattern. With a list,
// names absent from the frame are skipped. With a pattern, columns whose name
// matches are kept in their current order. A zero Select keeps everything.
type Select struct {
	columns []string
	pattern *regexp.Regexp
}

// NewSelect creates a list-based column selection step.
func NewSelect(columns []string) *Select {
	return &Select{columns: columns}
}

// NewSelectPattern creates a pattern-based column selection step.
func NewSelectPattern(pattern *regexp.Regexp) *Select {
	return &Select{pattern: pattern}
}

// Apply returns the subsetted frame.
func (s *Select) Apply(f *domain.Frame) (*domain.Frame, error) {
	if len(s.columns) > 0 {
		return f.Select(s.columns), nil
	}
	if s.pattern != nil {
		return f.SelectPattern(s.pattern), nil
	}
	return f.Clone(), nil
}

// DropNA removes rows holding a NaN in any column, or in the named subset.
// Recipes append this step last to prune warm-up rows left undefined by the
// rolling primitives.
type DropNA struct {
	subset []string
}

// NewDropNA creates a row-pruning step considering all columns.
func NewDropNA() *DropNA {
	return &DropNA{}
}

// NewDropNASubset creates a row-pruning step considering only the named
// columns. Names absent from the frame are ignored.
func NewDropNASubset(subset []string) *DropNA {
	return &DropNA{subset: subset}
}

// Apply returns the frame with incomplete rows removed.
func (d *DropNA) Apply(f *domain.Frame) (*domain.Frame, error) {
	names := d.subset
	if len(names) == 0 {
		names = f.Columns()
	}

	keep := make([]bool, f.Len())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range names {
		x, ok := f.Column(name)
		if !ok {
			continue
		}
		for i := range x {
			if math.IsNaN(x[i]) {
				keep[i] = false
			}
		}
	}

	return f.FilterRows(keep), nil
}
