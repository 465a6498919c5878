package hysteresis

import (
	"errors"
	"fmt"

	"github.com/chagge/hysnet/internal/topology"
)

const (
	DefaultOwnWeight   = -4.0
	DefaultNeighWeight = -1.0
	DefaultTolerance   = 0.1
)

var (
	// ErrLengthMismatch indicates an initialization vector whose length
	// does not match the oscillator count.
	ErrLengthMismatch = errors.New("hysteresis: vector length does not match oscillator count")

	// ErrNoStopCondition indicates a request for horizon-less simulation,
	// which the model cannot satisfy.
	ErrNoStopCondition = errors.New("hysteresis: dynamic simulation is not supported: the model has no stop condition")

	// ErrNegativeTolerance indicates an invalid ensemble tolerance.
	ErrNegativeTolerance = errors.New("hysteresis: tolerance must be non-negative")
)

// Network is a hysteresis oscillatory network. The weight matrix is indexed
// (target, source): the diagonal carries the self-feedback weight, every
// other entry the shared neighbor weight. Weights and topology are constant
// after construction; states and outputs mutate only through the setters
// and Simulate.
type Network struct {
	topo    *topology.Topology
	weights [][]float64
	states  []float64
	outputs []float64
	buffer  []float64
}

// New builds a network over an existing topology. States start at zero,
// outputs (and the pending buffer) at -1.
func New(topo *topology.Topology, ownWeight, neighWeight float64) *Network {
	size := topo.Size()

	weights := make([][]float64, size)
	for i := range weights {
		weights[i] = make([]float64, size)
		for j := range weights[i] {
			weights[i][j] = neighWeight
		}
		weights[i][i] = ownWeight
	}

	n := &Network{
		topo:    topo,
		weights: weights,
		states:  make([]float64, size),
		outputs: make([]float64, size),
		buffer:  make([]float64, size),
	}
	for i := 0; i < size; i++ {
		n.outputs[i] = -1
		n.buffer[i] = -1
	}
	return n
}

// NewNetwork builds a network and its topology in one call.
func NewNetwork(size int, ownWeight, neighWeight float64, conn topology.Conn, rep topology.Represent) (*Network, error) {
	topo, err := topology.New(size, conn, rep)
	if err != nil {
		return nil, err
	}
	return New(topo, ownWeight, neighWeight), nil
}

func (n *Network) Size() int                    { return n.topo.Size() }
func (n *Network) Topology() *topology.Topology { return n.topo }

// States returns a copy of the continuous state vector.
func (n *Network) States() []float64 {
	return clone(n.states)
}

// SetStates replaces the continuous state vector.
func (n *Network) SetStates(values []float64) error {
	if len(values) != n.Size() {
		return fmt.Errorf("%w: want %d, got %d", ErrLengthMismatch, n.Size(), len(values))
	}
	copy(n.states, values)
	return nil
}

// Outputs returns a copy of the latched output vector.
func (n *Network) Outputs() []float64 {
	return clone(n.outputs)
}

// SetOutputs replaces the latched output vector. The pending buffer is
// reset to the same values, so buffer == outputs holds until the next
// macro step.
func (n *Network) SetOutputs(values []float64) error {
	if len(values) != n.Size() {
		return fmt.Errorf("%w: want %d, got %d", ErrLengthMismatch, n.Size(), len(values))
	}
	copy(n.outputs, values)
	copy(n.buffer, values)
	return nil
}

// Weight returns the connection weight from source j to target i.
func (n *Network) Weight(i, j int) float64 {
	return n.weights[i][j]
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
