package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chagge/hysnet/internal/hysteresis"
	"github.com/chagge/hysnet/internal/solver"
	"github.com/chagge/hysnet/internal/topology"
)

const (
	DefaultSize      = 5
	DefaultSteps     = 1000
	DefaultTime      = 10.0
	DefaultTolerance = hysteresis.DefaultTolerance
)

type Config struct {
	Size           int       `yaml:"size"`
	OwnWeight      float64   `yaml:"own_weight"`
	NeighWeight    float64   `yaml:"neigh_weight"`
	Connection     string    `yaml:"connection"`
	Represent      string    `yaml:"represent"`
	Pairs          [][2]int  `yaml:"pairs,omitempty"`
	Steps          int       `yaml:"steps"`
	Time           float64   `yaml:"time"`
	Method         string    `yaml:"method"`
	CollectDynamic bool      `yaml:"collect_dynamic"`
	Workers        int       `yaml:"workers"`
	Tolerance      float64   `yaml:"tolerance"`
	InitStates     []float64 `yaml:"init_states,omitempty"`
	InitOutputs    []float64 `yaml:"init_outputs,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:           DefaultSize,
		OwnWeight:      hysteresis.DefaultOwnWeight,
		NeighWeight:    hysteresis.DefaultNeighWeight,
		Connection:     topology.ConnAllToAll.String(),
		Represent:      topology.RepresentMatrix.String(),
		Steps:          DefaultSteps,
		Time:           DefaultTime,
		Method:         solver.MethodRK4.String(),
		CollectDynamic: true,
		Tolerance:      DefaultTolerance,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildNetwork constructs the configured network and applies the initial
// state and output vectors.
func (c *Config) BuildNetwork() (*hysteresis.Network, error) {
	conn, err := topology.ParseConn(c.Connection)
	if err != nil {
		return nil, err
	}
	rep, err := topology.ParseRepresent(c.Represent)
	if err != nil {
		return nil, err
	}

	var topo *topology.Topology
	if conn == topology.ConnCustom {
		topo, err = topology.NewCustom(c.Size, c.Pairs, rep)
	} else {
		topo, err = topology.New(c.Size, conn, rep)
	}
	if err != nil {
		return nil, err
	}

	net := hysteresis.New(topo, c.OwnWeight, c.NeighWeight)

	if c.InitStates != nil {
		if err := net.SetStates(c.InitStates); err != nil {
			return nil, fmt.Errorf("init_states: %w", err)
		}
	}
	if c.InitOutputs != nil {
		if err := net.SetOutputs(c.InitOutputs); err != nil {
			return nil, fmt.Errorf("init_outputs: %w", err)
		}
	}

	return net, nil
}

// SimConfig translates the run parameters. The method gate itself runs
// inside Simulate.
func (c *Config) SimConfig() (hysteresis.SimConfig, error) {
	method, err := solver.ParseMethod(c.Method)
	if err != nil {
		return hysteresis.SimConfig{}, err
	}
	return hysteresis.SimConfig{
		Steps:          c.Steps,
		Time:           c.Time,
		Method:         method,
		CollectDynamic: c.CollectDynamic,
		Workers:        c.Workers,
	}, nil
}
