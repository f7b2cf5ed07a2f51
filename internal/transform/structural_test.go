package transform

import (
	"math"
	"reflect"
	"regexp"
	"testing"

	"github.com/etiennechatreaux/macro-dynamics/internal/domain"
)

func TestRename_MapsKnownNames(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"S&P500": {0.1, 0.2},
		"CPI":    {100, 101},
	})

	out, err := NewRename(map[string]string{
		"S&P500": "SPX_RET_1M",
		"Ghost":  "Missing",
	}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !out.HasColumn("SPX_RET_1M") || out.HasColumn("S&P500") {
		t.Error("S&P500 should be renamed to SPX_RET_1M")
	}
	if !out.HasColumn("CPI") {
		t.Error("unmapped columns should survive")
	}
	if out.HasColumn("Missing") {
		t.Error("mapping for absent column should be ignored")
	}
}

func TestSelect_ListSkipsAbsent(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"CPI": {100},
		"PMI": {52},
		"VIX": {18},
	})

	out, err := NewSelect([]string{"VIX", "CPI", "Ghost"}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := []string{"VIX", "CPI"}
	if !reflect.DeepEqual(out.Columns(), want) {
		t.Errorf("columns = %v, want %v", out.Columns(), want)
	}
}

func TestSelect_Pattern(t *testing.T) {
	f := domain.NewFrame(monthlyDates(1))
	for _, name := range []string{"CPI_Z", "CPI", "PMI_Z", "SPX_CUM"} {
		if err := f.SetColumn(name, []float64{1}); err != nil {
			t.Fatalf("SetColumn %s: %v", name, err)
		}
	}

	out, err := NewSelectPattern(regexp.MustCompile(`_Z$`)).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := []string{"CPI_Z", "PMI_Z"}
	if !reflect.DeepEqual(out.Columns(), want) {
		t.Errorf("columns = %v, want %v", out.Columns(), want)
	}
}

func TestDropNA_RemovesIncompleteRows(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"a": {math.NaN(), 2, 3, 4},
		"b": {1, 2, math.NaN(), 4},
	})

	out, err := NewDropNA().Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("Len = %d, want 2", out.Len())
	}
	a := column(t, out, "a")
	if !almostEqual(a[0], 2) || !almostEqual(a[1], 4) {
		t.Errorf("a = %v, want [2 4]", a)
	}
}

func TestDropNA_Subset(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"a": {math.NaN(), 2},
		"b": {1, math.NaN()},
	})

	out, err := NewDropNASubset([]string{"b"}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.Len() != 1 {
		t.Fatalf("Len = %d, want 1", out.Len())
	}
	a := column(t, out, "a")
	if !math.IsNaN(a[0]) {
		t.Errorf("a[0] = %v, want NaN", a[0])
	}
}

func TestDropNA_KeepsDatesAligned(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"a": {math.NaN(), 2, 3},
	})
	dates := f.Dates()

	out, err := NewDropNA().Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("Len = %d, want 2", out.Len())
	}
	if !out.Date(0).Equal(dates[1]) || !out.Date(1).Equal(dates[2]) {
		t.Error("surviving rows should keep their original dates")
	}
}
