package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for the layers around the cloth core. The core itself never
// returns errors; see package cloth.
var (
	// ErrInvalidState indicates a position buffer containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrNoData indicates a stored run without samples.
	ErrNoData = errors.New("dynamo: no data")
)

// SimulationError wraps an error with the frame it happened on.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// BoundsError reports which parameter failed validation. It matches
// ErrParameterBounds with errors.Is.
func BoundsError(name string, value any, want string) error {
	return fmt.Errorf("%w: %s=%v (want %s)", ErrParameterBounds, name, value, want)
}
