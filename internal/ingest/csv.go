// Package ingest loads and cleans raw macro tables before they reach the
// feature pipeline: schema-level renaming, bounded forward-filling, as-of
// filtering. The pipeline itself assumes a clean, time-ordered frame.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

const dateLayout = "2006-01-02"

// LoadCSV reads a raw macro table from a CSV file. The first column must be
// the date column (header "Date", values YYYY-MM-DD); remaining columns are
// numeric series. Empty cells parse as NaN.
func LoadCSV(path string) (*domain.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw data: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses a raw macro table from a reader. See LoadCSV for the format.
func ReadCSV(r io.Reader) (*domain.Frame, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header has %d columns, need a date column and at least one series", len(header))
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "Date") {
		return nil, fmt.Errorf("first column must be Date, got %q", header[0])
	}

	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
	}

	var dates []time.Time
	values := make([][]float64, len(names))

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		date, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date %q: %w", line, record[0], err)
		}
		dates = append(dates, date)

		for i := range names {
			cell := strings.TrimSpace(record[i+1])
			if cell == "" {
				values[i] = append(values[i], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: parse value %q: %w", line, names[i], cell, err)
			}
			values[i] = append(values[i], v)
		}
	}

	f := domain.NewFrame(dates)
	for i, name := range names {
		if err := f.SetColumn(name, values[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}
