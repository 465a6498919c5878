package hysteresis

import (
	"fmt"

	"github.com/chagge/hysnet/internal/solver"
)

// subSteps is the number of fine integration sub-steps per macro step.
const subSteps = 10

// SimConfig configures one simulation run.
type SimConfig struct {
	// Steps is the number of macro steps.
	Steps int
	// Time is the simulation horizon; the macro step is Time/Steps.
	Time float64
	// Method selects the integration method. Only solver.MethodRK4 is
	// supported; the others are rejected before any work begins.
	Method solver.Method
	// CollectDynamic records the whole trajectory instead of only the
	// final snapshot.
	CollectDynamic bool
	// Workers fans per-oscillator integration within one macro step out
	// over goroutines. Zero or one means serial. Macro steps themselves
	// are always sequential.
	Workers int
}

func DefaultSimConfig() SimConfig {
	return SimConfig{
		Steps:          1000,
		Time:           10.0,
		Method:         solver.MethodRK4,
		CollectDynamic: true,
	}
}

// Dynamic is the recorded output of a run: either the whole trajectory
// (Steps+1 snapshots including t=0) or only the final snapshot.
type Dynamic struct {
	Times   []float64
	States  [][]float64
	Outputs [][]float64
}

func (d *Dynamic) Len() int { return len(d.Times) }

// Final returns the last recorded time and state vector.
func (d *Dynamic) Final() (float64, []float64) {
	last := len(d.Times) - 1
	return d.Times[last], d.States[last]
}

// run holds the mutable simulation state for one Simulate call. The
// network's own fields are written back only after the run completes, so a
// rejected configuration leaves the network untouched and distinct networks
// can simulate concurrently.
type run struct {
	net     *Network
	states  []float64
	outputs []float64
	buffer  []float64
}

func newRun(n *Network) *run {
	return &run{
		net:     n,
		states:  clone(n.states),
		outputs: clone(n.outputs),
		buffer:  clone(n.buffer),
	}
}

// derivative computes dx/dt for the oscillator at index given its current
// scalar state x. The impact term reads the frozen pre-step outputs, never
// the buffer. Threshold crossings latch into the buffer only; they become
// visible when the macro step publishes.
func (r *run) derivative(x, _ float64, index int) float64 {
	impact := r.net.weights[index][index] * r.outputs[index]
	for _, j := range r.net.topo.Neighbors(index) {
		impact += r.net.weights[index][j] * r.outputs[j]
	}

	if x > 1 {
		r.buffer[index] = 1
	}
	if x < -1 {
		r.buffer[index] = -1
	}

	return -x + impact
}

// integrate advances one oscillator over the macro interval [t-dt, t]
// sampled at dt/10.
func (r *run) integrate(index int, t, dt float64) {
	grid := solver.Grid(t-dt, t, subSteps)
	values := solver.Integrate(r.derivative, r.states[index], grid, index)
	r.states[index] = values[len(values)-1]
}

// step advances every oscillator by one macro step and publishes the
// buffered outputs. All integrations read the same outputs snapshot and
// buffer writes are disjoint per index, so the per-oscillator loop may run
// in any order or in parallel.
func (r *run) step(t, dt float64, workers int) {
	parallelFor(len(r.states), workers, func(start, end int) {
		for i := start; i < end; i++ {
			r.integrate(i, t, dt)
		}
	})
	copy(r.outputs, r.buffer)
}

// Simulate runs cfg.Steps sequential macro steps over the horizon cfg.Time
// and returns the recorded dynamic. The network's states and outputs are
// updated to the final snapshot. Configuration errors are returned before
// any state mutation.
func (n *Network) Simulate(cfg SimConfig) (*Dynamic, error) {
	if err := validateSimConfig(cfg); err != nil {
		return nil, err
	}

	r := newRun(n)
	dt := cfg.Time / float64(cfg.Steps)

	dyn := &Dynamic{}
	if cfg.CollectDynamic {
		dyn.record(0, r.states, r.outputs)
	}

	for s := 1; s <= cfg.Steps; s++ {
		t := float64(s) * dt
		if s == cfg.Steps {
			// dt*Steps can land an ulp away from the horizon; the last
			// snapshot must carry the exact requested time either way the
			// trajectory is recorded.
			t = cfg.Time
		}
		r.step(t, dt, cfg.Workers)
		if cfg.CollectDynamic {
			dyn.record(t, r.states, r.outputs)
		}
	}

	if !cfg.CollectDynamic {
		dyn.record(cfg.Time, r.states, r.outputs)
	}

	copy(n.states, r.states)
	copy(n.outputs, r.outputs)
	copy(n.buffer, r.buffer)

	return dyn, nil
}

// SimulateDynamic is the horizon-less variant driven by a stop condition.
// The hysteresis model defines no stop criterion, so it always fails before
// doing any work.
func (n *Network) SimulateDynamic() (*Dynamic, error) {
	return nil, ErrNoStopCondition
}

func validateSimConfig(cfg SimConfig) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("hysteresis: steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Time <= 0 {
		return fmt.Errorf("hysteresis: time must be positive, got %f", cfg.Time)
	}
	if err := cfg.Method.Validate(); err != nil {
		return err
	}
	return nil
}

func (d *Dynamic) record(t float64, states, outputs []float64) {
	d.Times = append(d.Times, t)
	d.States = append(d.States, clone(states))
	d.Outputs = append(d.Outputs, clone(outputs))
}
