// Package reporting builds data-quality reports and renders feature frames
// for export.
package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

// QualityReport summarizes a produced feature frame.
type QualityReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Recipe      string         `json:"recipe"`
	Rows        int            `json:"rows"`
	Columns     int            `json:"columns"`
	DateStart   time.Time      `json:"date_start"`
	DateEnd     time.Time      `json:"date_end"`
	ColumnNames []string       `json:"column_names"`
	NaNCounts   map[string]int `json:"nan_counts"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// BuildQualityReport computes a quality report for a frame.
// generatedAt is injected for deterministic output.
func BuildQualityReport(f *domain.Frame, recipe string, generatedAt time.Time) *QualityReport {
	r := &QualityReport{
		GeneratedAt: generatedAt,
		Recipe:      recipe,
		Rows:        f.Len(),
		Columns:     len(f.Columns()),
		ColumnNames: f.Columns(),
		NaNCounts:   make(map[string]int),
	}

	if f.Len() > 0 {
		r.DateStart = f.Date(0)
		r.DateEnd = f.Date(f.Len() - 1)
	}

	for _, name := range f.Columns() {
		x, _ := f.Column(name)
		count := 0
		for _, v := range x {
			if math.IsNaN(v) {
				count++
			}
		}
		r.NaNCounts[name] = count
	}

	return r
}

// TotalNaN returns the sum of NaN counts across all columns.
func (r *QualityReport) TotalNaN() int {
	total := 0
	for _, c := range r.NaNCounts {
		total += c
	}
	return total
}

// WriteJSON writes the report as indented JSON, creating parent directories
// as needed.
func (r *QualityReport) WriteJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quality report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write quality report: %w", err)
	}
	return nil
}
