package analysis

import (
	"math"
	"testing"
)

func sine(cycles int, samplesPerCycle int, amplitude float64) []float64 {
	n := cycles * samplesPerCycle
	series := make([]float64, n)
	for i := range series {
		series[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(samplesPerCycle))
	}
	return series
}

func TestCountOscillationsSine(t *testing.T) {
	series := sine(5, 100, 1.0)

	got := CountOscillations(series, 0.9)
	if got != 5 {
		t.Errorf("expected 5 oscillations, got %d", got)
	}
}

func TestCountOscillationsIgnoresJitter(t *testing.T) {
	// Small wiggles inside the band must not count.
	series := sine(50, 20, 0.3)

	if got := CountOscillations(series, 0.9); got != 0 {
		t.Errorf("expected 0 oscillations, got %d", got)
	}
}

func TestCountOscillationsStartsHigh(t *testing.T) {
	// Starting above threshold: first rise is not counted, the next is.
	series := []float64{1.5, 0.5, -1.5, 0.5, 1.5, -1.5, 1.5}

	if got := CountOscillations(series, 0.9); got != 2 {
		t.Errorf("expected 2 oscillations, got %d", got)
	}
}

func TestCountOscillationsEmpty(t *testing.T) {
	if got := CountOscillations(nil, 0.9); got != 0 {
		t.Errorf("expected 0 for empty series, got %d", got)
	}
}

func TestSignChanges(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   int
	}{
		{"flat", []float64{1, 1, 1}, 0},
		{"one flip", []float64{-1, -1, 1}, 1},
		{"alternating", []float64{1, -1, 1, -1}, 3},
		{"zero is not a flip", []float64{1, 0, 1}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignChanges(tt.series); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestColumn(t *testing.T) {
	snapshots := [][]float64{{1, 2}, {3, 4}, {5, 6}}

	got := Column(snapshots, 1)
	want := []float64{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column[%d]: expected %f, got %f", i, want[i], got[i])
		}
	}
}
