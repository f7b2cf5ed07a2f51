package ingest

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestReadCSV_Basic(t *testing.T) {
	in := strings.Join([]string{
		"Date,CPI,PMI",
		"2020-01-01,100.5,52",
		"2020-02-01,101.0,51",
	}, "\n")

	f, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
	if !reflect.DeepEqual(f.Columns(), []string{"CPI", "PMI"}) {
		t.Errorf("Columns() = %v, want [CPI PMI]", f.Columns())
	}
	if !f.Date(0).Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date(0) = %v", f.Date(0))
	}
	cpi, _ := f.Column("CPI")
	if cpi[0] != 100.5 || cpi[1] != 101.0 {
		t.Errorf("CPI = %v", cpi)
	}
}

func TestReadCSV_EmptyCellIsNaN(t *testing.T) {
	in := "Date,CPI\n2020-01-01,\n2020-02-01,101\n"

	f, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	cpi, _ := f.Column("CPI")
	if !math.IsNaN(cpi[0]) {
		t.Errorf("cpi[0] = %v, want NaN", cpi[0])
	}
	if cpi[1] != 101 {
		t.Errorf("cpi[1] = %v, want 101", cpi[1])
	}
}

func TestReadCSV_RejectsBadHeader(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("Timestamp,CPI\n")); err == nil {
		t.Error("expected error for non-Date first column")
	}
	if _, err := ReadCSV(strings.NewReader("Date\n")); err == nil {
		t.Error("expected error for header without series columns")
	}
}

func TestReadCSV_RejectsBadValues(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("Date,CPI\n01/02/2020,100\n")); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := ReadCSV(strings.NewReader("Date,CPI\n2020-01-01,abc\n")); err == nil {
		t.Error("expected error for non-numeric value")
	}
}
