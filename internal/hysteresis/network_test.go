package hysteresis

import (
	"testing"

	"github.com/chagge/hysnet/internal/topology"
)

func newTestNetwork(t *testing.T, size int, own, neigh float64) *Network {
	t.Helper()
	net, err := NewNetwork(size, own, neigh, topology.ConnAllToAll, topology.RepresentMatrix)
	if err != nil {
		t.Fatalf("new network failed: %v", err)
	}
	return net
}

func TestNewNetworkDefaults(t *testing.T) {
	net := newTestNetwork(t, 3, DefaultOwnWeight, DefaultNeighWeight)

	if net.Size() != 3 {
		t.Errorf("expected size 3, got %d", net.Size())
	}
	for _, s := range net.States() {
		if s != 0 {
			t.Errorf("expected zero initial state, got %f", s)
		}
	}
	for _, o := range net.Outputs() {
		if o != -1 {
			t.Errorf("expected initial output -1, got %f", o)
		}
	}
}

func TestNewNetworkInvalidSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		if _, err := NewNetwork(size, -4, -1, topology.ConnAllToAll, topology.RepresentMatrix); err == nil {
			t.Errorf("expected error for size %d", size)
		}
	}
}

func TestWeightMatrix(t *testing.T) {
	net := newTestNetwork(t, 3, -4, -1)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := -1.0
			if i == j {
				want = -4.0
			}
			if got := net.Weight(i, j); got != want {
				t.Errorf("weight[%d][%d]: expected %f, got %f", i, j, want, got)
			}
		}
	}
}

func TestSetStatesLengthCheck(t *testing.T) {
	net := newTestNetwork(t, 3, -4, -1)

	if err := net.SetStates([]float64{1, 2}); err == nil {
		t.Error("expected length mismatch error")
	}
	if err := net.SetStates([]float64{1, 2, 3}); err != nil {
		t.Errorf("set states failed: %v", err)
	}
	if got := net.States(); got[1] != 2 {
		t.Errorf("expected state 2, got %f", got[1])
	}
}

func TestSetOutputsResetsBuffer(t *testing.T) {
	net := newTestNetwork(t, 3, -4, -1)

	if err := net.SetOutputs([]float64{1, -1, 1}); err != nil {
		t.Fatalf("set outputs failed: %v", err)
	}

	for i := range net.outputs {
		if net.buffer[i] != net.outputs[i] {
			t.Errorf("buffer[%d] = %f, outputs[%d] = %f: buffer must mirror outputs after assignment",
				i, net.buffer[i], i, net.outputs[i])
		}
	}

	if err := net.SetOutputs([]float64{1, 1}); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestStatesReturnsCopy(t *testing.T) {
	net := newTestNetwork(t, 2, -4, -1)

	s := net.States()
	s[0] = 42
	if net.States()[0] == 42 {
		t.Error("States must return a copy")
	}

	o := net.Outputs()
	o[0] = 42
	if net.Outputs()[0] == 42 {
		t.Error("Outputs must return a copy")
	}
}

func TestDerivativeImpact(t *testing.T) {
	// Two all-to-all oscillators, own -4, neigh -1, outputs [+1, -1]:
	// impact for 0 is -4*1 + -1*-1 = -3, so dx/dt at x=0.5 is -0.5 - 3.
	net := newTestNetwork(t, 2, -4, -1)
	if err := net.SetOutputs([]float64{1, -1}); err != nil {
		t.Fatal(err)
	}

	r := newRun(net)
	got := r.derivative(0.5, 0, 0)
	want := -0.5 + (-4*1 + -1*-1)
	if got != want {
		t.Errorf("expected derivative %f, got %f", want, got)
	}
}

func TestDerivativeIgnoresUnconnected(t *testing.T) {
	net, err := NewNetwork(2, -2, -1, topology.ConnNone, topology.RepresentMatrix)
	if err != nil {
		t.Fatal(err)
	}
	if err := net.SetOutputs([]float64{1, 1}); err != nil {
		t.Fatal(err)
	}

	r := newRun(net)
	// No neighbors: impact is the self term only.
	got := r.derivative(0, 0, 0)
	if got != -2 {
		t.Errorf("expected derivative -2, got %f", got)
	}
}

func TestDerivativeReadsSnapshotNotBuffer(t *testing.T) {
	net := newTestNetwork(t, 2, -4, -1)
	if err := net.SetOutputs([]float64{1, 1}); err != nil {
		t.Fatal(err)
	}

	r := newRun(net)
	// Latch oscillator 1 into the buffer; the impact on oscillator 0 must
	// still see the pre-step output +1.
	r.derivative(-2, 0, 1)
	if r.buffer[1] != -1 {
		t.Fatalf("expected buffer latch to -1, got %f", r.buffer[1])
	}

	got := r.derivative(0, 0, 0)
	want := -4.0*1 + -1.0*1
	if got != want {
		t.Errorf("expected derivative %f from snapshot outputs, got %f", want, got)
	}
	if r.outputs[1] != 1 {
		t.Errorf("outputs must stay frozen during a step, got %f", r.outputs[1])
	}
}

func TestHysteresisDeadBand(t *testing.T) {
	// Zero weights: dx/dt = -x, so a state starting inside (-1, 1) stays
	// there and the output must never change.
	net, err := NewNetwork(1, 0, 0, topology.ConnNone, topology.RepresentMatrix)
	if err != nil {
		t.Fatal(err)
	}
	if err := net.SetStates([]float64{0.9}); err != nil {
		t.Fatal(err)
	}

	dyn, err := net.Simulate(SimConfig{Steps: 50, Time: 5, CollectDynamic: true})
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	for i, outs := range dyn.Outputs {
		if outs[0] != -1 {
			t.Fatalf("output changed inside dead band at snapshot %d: %f", i, outs[0])
		}
	}
}

func TestThresholdLatch(t *testing.T) {
	net, err := NewNetwork(1, 0, 0, topology.ConnNone, topology.RepresentMatrix)
	if err != nil {
		t.Fatal(err)
	}

	// State above +1 must latch the output to +1 by the end of the step.
	if err := net.SetStates([]float64{2}); err != nil {
		t.Fatal(err)
	}
	if _, err := net.Simulate(SimConfig{Steps: 1, Time: 0.1}); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if got := net.Outputs()[0]; got != 1 {
		t.Errorf("expected output +1 after upward crossing, got %f", got)
	}

	// And symmetrically below -1.
	if err := net.SetStates([]float64{-2}); err != nil {
		t.Fatal(err)
	}
	if _, err := net.Simulate(SimConfig{Steps: 1, Time: 0.1}); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if got := net.Outputs()[0]; got != -1 {
		t.Errorf("expected output -1 after downward crossing, got %f", got)
	}
}
