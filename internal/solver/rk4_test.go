package solver

import (
	"errors"
	"math"
	"testing"
)

func TestIntegrateExponentialDecay(t *testing.T) {
	f := func(x, _ float64, _ int) float64 { return -x }

	values := Integrate(f, 1.0, Grid(0, 1, 100), 0)

	if len(values) != 101 {
		t.Fatalf("expected 101 values, got %d", len(values))
	}
	if values[0] != 1.0 {
		t.Errorf("expected first value to equal x0, got %f", values[0])
	}

	expected := math.Exp(-1.0)
	if math.Abs(values[100]-expected) > 1e-8 {
		t.Errorf("expected final value ~%.8f, got %.8f", expected, values[100])
	}
}

func TestIntegrateForcedRelaxation(t *testing.T) {
	// dx/dt = -x + 2 relaxes toward 2.
	f := func(x, _ float64, _ int) float64 { return -x + 2 }

	values := Integrate(f, 0.0, Grid(0, 5, 500), 0)

	expected := 2 * (1 - math.Exp(-5.0))
	final := values[len(values)-1]
	if math.Abs(final-expected) > 1e-8 {
		t.Errorf("expected final value ~%.8f, got %.8f", expected, final)
	}
}

func TestIntegratePassesIndexThrough(t *testing.T) {
	seen := -1
	f := func(x, _ float64, index int) float64 {
		seen = index
		return 0
	}

	Integrate(f, 0.0, Grid(0, 1, 2), 7)

	if seen != 7 {
		t.Errorf("expected index 7 passed through, got %d", seen)
	}
}

func TestGrid(t *testing.T) {
	g := Grid(1.0, 2.0, 10)

	if len(g) != 11 {
		t.Fatalf("expected 11 points, got %d", len(g))
	}
	if g[0] != 1.0 {
		t.Errorf("expected first point 1.0, got %f", g[0])
	}
	if g[10] != 2.0 {
		t.Errorf("expected last point exactly 2.0, got %f", g[10])
	}
	for i := 1; i < len(g); i++ {
		if math.Abs(g[i]-g[i-1]-0.1) > 1e-12 {
			t.Errorf("uneven grid spacing at %d", i)
		}
	}
}

func TestMethodValidate(t *testing.T) {
	if err := MethodRK4.Validate(); err != nil {
		t.Errorf("rk4 should be supported: %v", err)
	}

	for _, m := range []Method{MethodFast, MethodRKF45} {
		err := m.Validate()
		if !errors.Is(err, ErrUnsupportedMethod) {
			t.Errorf("%v: expected ErrUnsupportedMethod, got %v", m, err)
		}
	}

	if err := Method(99).Validate(); err == nil {
		t.Error("out-of-range method should be rejected")
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name string
		want Method
	}{
		{"rk4", MethodRK4},
		{"fast", MethodFast},
		{"rkf45", MethodRKF45},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.name)
		if err != nil {
			t.Errorf("parse %s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("parse %s: got %v", tt.name, got)
		}
	}

	if _, err := ParseMethod("leapfrog"); err == nil {
		t.Error("expected error for unknown method")
	}
}
