package topology

import (
	"fmt"
	"math"
)

// Conn selects the connection structure between oscillators.
type Conn int

const (
	ConnAllToAll Conn = iota
	ConnGridFour
	ConnGridEight
	ConnListBidir
	ConnNone
	ConnCustom
)

func (c Conn) String() string {
	switch c {
	case ConnAllToAll:
		return "all-to-all"
	case ConnGridFour:
		return "grid-four"
	case ConnGridEight:
		return "grid-eight"
	case ConnListBidir:
		return "list-bidir"
	case ConnNone:
		return "none"
	case ConnCustom:
		return "custom"
	default:
		return "unknown"
	}
}

func ParseConn(s string) (Conn, error) {
	switch s {
	case "all-to-all":
		return ConnAllToAll, nil
	case "grid-four":
		return ConnGridFour, nil
	case "grid-eight":
		return ConnGridEight, nil
	case "list-bidir":
		return ConnListBidir, nil
	case "none":
		return ConnNone, nil
	case "custom":
		return ConnCustom, nil
	default:
		return 0, fmt.Errorf("unknown connection type: %s", s)
	}
}

// Represent selects the internal connection storage: a dense bool matrix or
// adjacency lists. It affects storage and query cost only, never which pairs
// are connected.
type Represent int

const (
	RepresentMatrix Represent = iota
	RepresentList
)

func (r Represent) String() string {
	if r == RepresentList {
		return "list"
	}
	return "matrix"
}

func ParseRepresent(s string) (Represent, error) {
	switch s {
	case "matrix":
		return RepresentMatrix, nil
	case "list":
		return RepresentList, nil
	default:
		return 0, fmt.Errorf("unknown connection representation: %s", s)
	}
}

// Topology stores the pairwise connection structure of an oscillator
// network. Connections are fixed at construction; queries never mutate.
// Neighbor lists are precomputed once so hot loops do not pay a per-pair
// query on dense topologies.
type Topology struct {
	size      int
	conn      Conn
	rep       Represent
	matrix    [][]bool
	neighbors [][]int
}

func New(size int, conn Conn, rep Represent) (*Topology, error) {
	if size <= 0 {
		return nil, fmt.Errorf("topology: size must be positive, got %d", size)
	}
	if conn == ConnCustom {
		return nil, fmt.Errorf("topology: custom connections require NewCustom")
	}

	t := &Topology{size: size, conn: conn, rep: rep}

	switch conn {
	case ConnAllToAll:
		t.build(func(i, j int) bool { return i != j })
	case ConnGridFour, ConnGridEight:
		side := int(math.Round(math.Sqrt(float64(size))))
		if side*side != size {
			return nil, fmt.Errorf("topology: grid connections require a square oscillator count, got %d", size)
		}
		diag := conn == ConnGridEight
		t.build(func(i, j int) bool { return gridConnected(i, j, side, diag) })
	case ConnListBidir:
		t.build(func(i, j int) bool { return i-j == 1 || j-i == 1 })
	case ConnNone:
		t.build(func(i, j int) bool { return false })
	default:
		return nil, fmt.Errorf("topology: unknown connection type %d", conn)
	}

	return t, nil
}

// NewCustom builds an externally supplied topology from symmetric index
// pairs. Self pairs are rejected; duplicates are tolerated.
func NewCustom(size int, pairs [][2]int, rep Represent) (*Topology, error) {
	if size <= 0 {
		return nil, fmt.Errorf("topology: size must be positive, got %d", size)
	}

	matrix := make([][]bool, size)
	for i := range matrix {
		matrix[i] = make([]bool, size)
	}
	for _, p := range pairs {
		i, j := p[0], p[1]
		if i < 0 || i >= size || j < 0 || j >= size {
			return nil, fmt.Errorf("topology: connection pair (%d, %d) out of range for size %d", i, j, size)
		}
		if i == j {
			return nil, fmt.Errorf("topology: self connection (%d, %d) is not allowed", i, j)
		}
		matrix[i][j] = true
		matrix[j][i] = true
	}

	t := &Topology{size: size, conn: ConnCustom, rep: rep}
	t.build(func(i, j int) bool { return matrix[i][j] })
	return t, nil
}

func gridConnected(i, j, side int, diagonal bool) bool {
	if i == j {
		return false
	}
	ri, ci := i/side, i%side
	rj, cj := j/side, j%side
	dr, dc := ri-rj, ci-cj
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	if diagonal {
		return dr <= 1 && dc <= 1
	}
	return dr+dc == 1
}

func (t *Topology) build(connected func(i, j int) bool) {
	t.neighbors = make([][]int, t.size)
	for i := 0; i < t.size; i++ {
		t.neighbors[i] = make([]int, 0)
		for j := 0; j < t.size; j++ {
			if connected(i, j) {
				t.neighbors[i] = append(t.neighbors[i], j)
			}
		}
	}

	if t.rep == RepresentMatrix {
		t.matrix = make([][]bool, t.size)
		for i := 0; i < t.size; i++ {
			t.matrix[i] = make([]bool, t.size)
			for _, j := range t.neighbors[i] {
				t.matrix[i][j] = true
			}
		}
	}
}

func (t *Topology) Size() int      { return t.size }
func (t *Topology) Conn() Conn     { return t.conn }
func (t *Topology) Rep() Represent { return t.rep }

// HasConnection reports whether oscillators i and j are connected. All
// connection structures here are symmetric.
func (t *Topology) HasConnection(i, j int) bool {
	if i < 0 || j < 0 || i >= t.size || j >= t.size {
		return false
	}
	if t.rep == RepresentMatrix {
		return t.matrix[i][j]
	}
	for _, n := range t.neighbors[i] {
		if n == j {
			return true
		}
	}
	return false
}

// Neighbors returns the cached ascending neighbor list of oscillator i.
// Callers must not mutate the returned slice.
func (t *Topology) Neighbors(i int) []int {
	return t.neighbors[i]
}
