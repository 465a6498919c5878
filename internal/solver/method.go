package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMethod indicates a known method that is rejected for
	// this model.
	ErrUnsupportedMethod = errors.New("solver: method not supported")

	// ErrUnknownMethod indicates a method name outside the enumeration.
	ErrUnknownMethod = errors.New("solver: unknown method")
)

// Method enumerates the integration method selectors. Only MethodRK4 is
// wired to an actual integration; the other two are gated with a
// configuration error before any simulation work begins. No numeric branch
// exists for them.
type Method int

const (
	MethodRK4 Method = iota
	MethodFast
	MethodRKF45
)

func (m Method) String() string {
	switch m {
	case MethodRK4:
		return "rk4"
	case MethodFast:
		return "fast"
	case MethodRKF45:
		return "rkf45"
	default:
		return "unknown"
	}
}

// Validate returns nil only for the supported method.
func (m Method) Validate() error {
	switch m {
	case MethodRK4:
		return nil
	case MethodFast:
		return fmt.Errorf("%w: fast solver accuracy is too low for hysteresis dynamics", ErrUnsupportedMethod)
	case MethodRKF45:
		return fmt.Errorf("%w: adaptive rkf45 is not implemented for this model", ErrUnsupportedMethod)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMethod, m)
	}
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "rk4":
		return MethodRK4, nil
	case "fast":
		return MethodFast, nil
	case "rkf45":
		return MethodRKF45, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownMethod, s)
	}
}
