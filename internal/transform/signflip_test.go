package transform

import (
	"math"
	"testing"
)

func TestSignFlip_NegatesInPlace(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"Unemployment_Z": {1.5, -0.5, math.NaN(), 0},
	})

	out, err := NewSignFlip([]string{"Unemployment_Z"}).Apply(f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	z := column(t, out, "Unemployment_Z")

	want := []float64{-1.5, 0.5, math.NaN(), 0}
	for i := range want {
		if !almostEqual(z[i], want[i]) {
			t.Errorf("z[%d] = %v, want %v", i, z[i], want[i])
		}
	}
}

func TestSignFlip_SkipsMissingColumns(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"CPI_Z": {1, 2},
	})

	out, err := NewSignFlip([]string{"Unemployment_Z"}).Apply(f)
	if err != nil {
		t.Fatalf("missing column should be skipped, got %v", err)
	}
	z := column(t, out, "CPI_Z")
	if !almostEqual(z[0], 1) || !almostEqual(z[1], 2) {
		t.Error("untouched column should be unchanged")
	}
}

func TestSignFlip_DoesNotMutateInput(t *testing.T) {
	f := newTestFrame(t, map[string][]float64{
		"Unemployment_Z": {1, 2},
	})

	if _, err := NewSignFlip([]string{"Unemployment_Z"}).Apply(f); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	z := column(t, f, "Unemployment_Z")
	if !almostEqual(z[0], 1) || !almostEqual(z[1], 2) {
		t.Error("input frame should not be mutated")
	}
}
