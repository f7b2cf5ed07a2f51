package transform

import (
	"math"
	"testing"
)

func TestDiff_SinglePeriod(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"CPI": {100, 102, 105, 104},
	})

	out, err := NewDiff([]string{"CPI"}, []int{1}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	d := column(t, out, "CPI_D1M")

	want := []float64{math.NaN(), 2, 3, -1}
	for i := range want {
		if !almostEqual(d[i], want[i]) {
			t.Errorf("d[%d] = %v, want %v", i, d[i], want[i])
		}
	}
}

func TestDiff_MultiplePeriods(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"CPI": {100, 101, 103, 106, 110, 115, 121, 128},
	})

	out, err := NewDiff([]string{"CPI"}, []int{1, 6}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	d6 := column(t, out, "CPI_D6M")

	for i := 0; i < 6; i++ {
		if !math.IsNaN(d6[i]) {
			t.Errorf("d6[%d] should be NaN, got %v", i, d6[i])
		}
	}
	if !almostEqual(d6[6], 21) {
		t.Errorf("d6[6] = %v, want 21", d6[6])
	}
	if !almostEqual(d6[7], 27) {
		t.Errorf("d6[7] = %v, want 27", d6[7])
	}
}

func TestDiff_NaNPropagates(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"CPI": {100, math.NaN(), 105},
	})

	out, err := NewDiff([]string{"CPI"}, []int{1}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	d := column(t, out, "CPI_D1M")

	if !math.IsNaN(d[1]) || !math.IsNaN(d[2]) {
		t.Errorf("NaN in either operand should yield NaN, got %v, %v", d[1], d[2])
	}
}

func TestDiff_SkipsMissingColumns(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"CPI": {100, 102},
	})

	out, err := NewDiff([]string{"CPI", "PMI"}, []int{1}).Apply(f)
	if err != nil {
		t.Fatalf("missing column should be skipped, got %v", err)
	}
	if !out.HasColumn("CPI_D1M") {
		t.Error("CPI_D1M should exist")
	}
	if out.HasColumn("PMI_D1M") {
		t.Error("PMI_D1M should not exist")
	}
}
