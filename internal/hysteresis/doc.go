// Package hysteresis implements a network of coupled bistable oscillators
// whose synchronization pattern is used for clustering.
//
// Each oscillator holds a continuous state and a two-valued latched output.
// The state relaxes toward a coupling impact built from the latched outputs
// of the oscillator itself and its connected neighbors; the output flips
// only when the state crosses the +1 or -1 threshold, holding its previous
// value inside the dead band:
//
//	dx/dt = -x + w[i][i]*out[i] + sum_j w[i][j]*out[j]
//
// A macro step integrates every oscillator over a frozen snapshot of the
// output vector and publishes all output flips at once, so the result does
// not depend on the order oscillators are processed in. After a run,
// oscillators whose final states settled close together form a synchronous
// ensemble:
//
//	net, _ := hysteresis.NewNetwork(5, -4, -1, topology.ConnAllToAll, topology.RepresentMatrix)
//	dyn, _ := net.Simulate(hysteresis.DefaultSimConfig())
//	clusters, _ := net.AllocateSyncEnsembles(hysteresis.DefaultTolerance)
//
// # Thread Safety
//
// Network instances are NOT thread-safe: overlapping Simulate calls on one
// instance must be serialized by the caller. Distinct instances may be
// simulated concurrently, and a single macro step may fan its per-oscillator
// integrations out over workers (see SimConfig.Workers).
package hysteresis
