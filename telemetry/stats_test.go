package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	// Unsorted on purpose.
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	d := ComputeDistribution(values)

	if math.Abs(d.Mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", d.Mean)
	}
	// Sample standard deviation of 1..10.
	if math.Abs(d.Std-3.02765) > 1e-4 {
		t.Errorf("std = %v, want ~3.02765", d.Std)
	}
	if math.Abs(d.P10-1.9) > 1e-9 || math.Abs(d.P90-9.1) > 1e-9 {
		t.Errorf("p10/p90 = %v/%v, want 1.9/9.1", d.P10, d.P90)
	}
	if d.Max != 10 {
		t.Errorf("max = %v, want 10", d.Max)
	}
	if values[0] != 10 {
		t.Error("ComputeDistribution must not reorder its input")
	}
}

func TestComputeDistributionEdgeCases(t *testing.T) {
	if d := ComputeDistribution(nil); d != (Distribution{}) {
		t.Errorf("empty = %+v, want zero", d)
	}
	d := ComputeDistribution([]float64{4})
	if d.Mean != 4 || d.Std != 0 || d.P50 != 4 || d.Max != 4 {
		t.Errorf("single = %+v", d)
	}
}
