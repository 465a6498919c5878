package hysteresis

import "math"

// AllocateEnsembles groups oscillator indices by chained state proximity.
// The rule is deliberately first-fit, not nearest-fit: oscillator 0 seeds
// the first group; each following index joins the first group containing a
// member within tolerance (groups scanned in creation order, members in
// insertion order) or starts a new singleton. A member is therefore only
// guaranteed to be within tolerance of the member that admitted it, not of
// the whole group. Groups are disjoint and cover every index.
func AllocateEnsembles(states []float64, tolerance float64) ([][]int, error) {
	if tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if len(states) == 0 {
		return nil, nil
	}

	ensembles := [][]int{{0}}

	for i := 1; i < len(states); i++ {
		allocated := false

		for g := range ensembles {
			for _, m := range ensembles[g] {
				if math.Abs(states[i]-states[m]) < tolerance {
					ensembles[g] = append(ensembles[g], i)
					allocated = true
					break
				}
			}
			if allocated {
				break
			}
		}

		if !allocated {
			ensembles = append(ensembles, []int{i})
		}
	}

	return ensembles, nil
}

// AllocateSyncEnsembles groups this network's oscillators from the current
// state snapshot. Oscillators in the same group are considered synchronized
// and map to one cluster.
func (n *Network) AllocateSyncEnsembles(tolerance float64) ([][]int, error) {
	return AllocateEnsembles(n.states, tolerance)
}
