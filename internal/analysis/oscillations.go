// Package analysis provides post-run trajectory analysis for oscillator
// dynamics: oscillation counting and flip statistics over recorded runs.
package analysis

// Column extracts one oscillator's series from a sequence of state
// snapshots.
func Column(snapshots [][]float64, index int) []float64 {
	series := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		series[i] = snap[index]
	}
	return series
}

// CountOscillations counts full oscillations of a series with a hysteretic
// two-level trigger: an oscillation is registered each time the series
// reaches +threshold after having been at or below -threshold. Jitter
// inside the band is ignored.
func CountOscillations(series []float64, threshold float64) int {
	if len(series) == 0 {
		return 0
	}

	high := series[0] > threshold
	count := 0

	for _, v := range series {
		if v >= threshold && !high {
			high = true
			count++
		} else if v <= -threshold && high {
			high = false
		}
	}

	return count
}

// SignChanges counts strict sign flips between consecutive values.
func SignChanges(series []float64) int {
	count := 0
	for i := 1; i < len(series); i++ {
		if series[i]*series[i-1] < 0 {
			count++
		}
	}
	return count
}
