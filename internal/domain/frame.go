package domain

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"
)

// Frame is an ordered time-series table: rows keyed by strictly increasing
// timestamps, columns holding float64 values aligned to the row index.
// Missing values are represented as NaN.
//
// Frames are value-like: transformation code clones a frame before writing,
// so a frame handed to a pipeline is never mutated.
type Frame struct {
	dates []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame over the given date index.
func NewFrame(dates []time.Time) *Frame {
	d := make([]time.Time, len(dates))
	copy(d, dates)
	return &Frame{
		dates: d,
		cols:  make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.dates)
}

// Dates returns a copy of the date index.
func (f *Frame) Dates() []time.Time {
	d := make([]time.Time, len(f.dates))
	copy(d, f.dates)
	return d
}

// Date returns the timestamp of row i.
func (f *Frame) Date(i int) time.Time {
	return f.dates[i]
}

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string {
	c := make([]string, len(f.order))
	copy(c, f.order)
	return c
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the values of the named column and whether it exists.
// The returned slice is the frame's backing storage and must not be modified;
// use SetColumn to write.
func (f *Frame) Column(name string) ([]float64, bool) {
	v, ok := f.cols[name]
	return v, ok
}

// SetColumn sets the named column, appending it to the column order if new.
// The values slice is copied. Length must match the row count.
func (f *Frame) SetColumn(name string, values []float64) error {
	if len(values) != len(f.dates) {
		return fmt.Errorf("column %s: length %d does not match row count %d", name, len(values), len(f.dates))
	}
	v := make([]float64, len(values))
	copy(v, values)
	if _, exists := f.cols[name]; !exists {
		f.order = append(f.order, name)
	}
	f.cols[name] = v
	return nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.dates)
	c.order = make([]string, len(f.order))
	copy(c.order, f.order)
	for name, values := range f.cols {
		v := make([]float64, len(values))
		copy(v, values)
		c.cols[name] = v
	}
	return c
}

// Rename returns a copy with columns renamed per the mapping.
// Names absent from the frame are ignored. Column order is preserved.
func (f *Frame) Rename(mapping map[string]string) *Frame {
	c := NewFrame(f.dates)
	for _, name := range f.order {
		newName := name
		if mapped, ok := mapping[name]; ok {
			newName = mapped
		}
		values := f.cols[name]
		v := make([]float64, len(values))
		copy(v, values)
		c.order = append(c.order, newName)
		c.cols[newName] = v
	}
	return c
}

// Select returns a copy containing only the named columns, in the given order.
// Names absent from the frame are skipped.
func (f *Frame) Select(names []string) *Frame {
	c := NewFrame(f.dates)
	for _, name := range names {
		values, ok := f.cols[name]
		if !ok {
			continue
		}
		v := make([]float64, len(values))
		copy(v, values)
		c.order = append(c.order, name)
		c.cols[name] = v
	}
	return c
}

// SelectPattern returns a copy containing only columns whose name matches re,
// preserving column order.
func (f *Frame) SelectPattern(re *regexp.Regexp) *Frame {
	var names []string
	for _, name := range f.order {
		if re.MatchString(name) {
			names = append(names, name)
		}
	}
	return f.Select(names)
}

// FilterRows returns a copy containing only rows where keep[i] is true.
// keep must have one entry per row.
func (f *Frame) FilterRows(keep []bool) *Frame {
	var dates []time.Time
	for i, k := range keep {
		if k {
			dates = append(dates, f.dates[i])
		}
	}
	c := NewFrame(dates)
	for _, name := range f.order {
		src := f.cols[name]
		v := make([]float64, 0, len(dates))
		for i, k := range keep {
			if k {
				v = append(v, src[i])
			}
		}
		c.order = append(c.order, name)
		c.cols[name] = v
	}
	return c
}

// FrameFromObservations pivots long-form observation points into a frame.
// Rows are the sorted distinct observation dates, columns the sorted distinct
// series names. Combinations with no observation are NaN.
func FrameFromObservations(points []*ObservationPoint) *Frame {
	dateSet := make(map[time.Time]struct{})
	seriesSet := make(map[string]struct{})
	for _, p := range points {
		dateSet[p.ObservedAt] = struct{}{}
		seriesSet[p.Series] = struct{}{}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make([]string, 0, len(seriesSet))
	for s := range seriesSet {
		series = append(series, s)
	}
	sort.Strings(series)

	rowIdx := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowIdx[d] = i
	}

	f := NewFrame(dates)
	for _, s := range series {
		v := make([]float64, len(dates))
		for i := range v {
			v[i] = math.NaN()
		}
		f.order = append(f.order, s)
		f.cols[s] = v
	}
	for _, p := range points {
		f.cols[p.Series][rowIdx[p.ObservedAt]] = p.Value
	}
	return f
}

// ObservationPoints flattens the frame into long-form observation points.
// NaN cells are omitted.
func (f *Frame) ObservationPoints() []*ObservationPoint {
	var points []*ObservationPoint
	for _, name := range f.order {
		values := f.cols[name]
		for i, v := range values {
			if math.IsNaN(v) {
				continue
			}
			points = append(points, &ObservationPoint{
				Series:     name,
				ObservedAt: f.dates[i],
				Value:      v,
			})
		}
	}
	return points
}

// FeaturePoints flattens the frame into long-form feature points tagged with
// the given recipe name. NaN cells are omitted.
func (f *Frame) FeaturePoints(recipe string) []*FeaturePoint {
	var points []*FeaturePoint
	for _, name := range f.order {
		values := f.cols[name]
		for i, v := range values {
			if math.IsNaN(v) {
				continue
			}
			points = append(points, &FeaturePoint{
				Recipe:     recipe,
				ObservedAt: f.dates[i],
				Column:     name,
				Value:      v,
			})
		}
	}
	return points
}
