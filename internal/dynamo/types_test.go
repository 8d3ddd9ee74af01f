package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-2, 0.5, 4)

	if got := a.Add(b); got != V3(-1, 2.5, 7) {
		t.Errorf("add: got %v", got)
	}
	if got := a.Sub(b); got != V3(3, 1.5, -1) {
		t.Errorf("sub: got %v", got)
	}
	if got := a.Dot(b); got != 11 {
		t.Errorf("dot: expected 11, got %v", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("cross: got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", n.Length())
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("expected zero vector unchanged, got %v", z)
	}
}

func TestFinite(t *testing.T) {
	if !Finite([]float64{0, 1, -2}) {
		t.Error("expected finite buffer")
	}
	if Finite([]float64{0, math.NaN()}) || Finite([]float64{math.Inf(1)}) {
		t.Error("expected non-finite buffer to be reported")
	}
	if V3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("expected Inf component to be reported")
	}
}

func TestArrayRoundTrip(t *testing.T) {
	v := V3(1, -2, 3.5)
	if FromArray(v.Array()) != v {
		t.Errorf("expected %v, got %v", v, FromArray(v.Array()))
	}
}

func TestErrorsWrap(t *testing.T) {
	err := BoundsError("nx", 1, ">= 2")
	if !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	simErr := &SimulationError{Frame: 3, Time: 0.1, Wrapped: ErrInvalidState}
	if !errors.Is(simErr, ErrInvalidState) {
		t.Error("expected SimulationError to unwrap to ErrInvalidState")
	}
}
