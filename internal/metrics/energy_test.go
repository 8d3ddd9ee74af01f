package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
)

func testCloth() *cloth.Cloth {
	return cloth.New(cloth.Options{
		NX:             5,
		NY:             5,
		Spacing:        0.5,
		Gravity:        dynamo.V3(0, -9.8, 0),
		Damping:        0.99,
		Iterations:     4,
		UseShear:       true,
		PinEdge:        cloth.PinTop,
		MaxSubstep:     0.01,
		MaxAccumulated: 0.25,
	})
}

func TestKineticEnergyAtRest(t *testing.T) {
	c := testCloth()
	m := NewKineticEnergy()
	m.Observe(c, 0)
	if m.Current() != 0 || m.Value() != 0 {
		t.Errorf("expected zero energy at rest, got %f / %f", m.Current(), m.Value())
	}
}

func TestKineticEnergyFreeFall(t *testing.T) {
	c := testCloth()
	c.Step(0.01)
	m := NewKineticEnergy()
	m.Observe(c, 0.01)
	if m.Current() <= 0 {
		t.Error("expected positive energy after a substep")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestSagGrows(t *testing.T) {
	c := testCloth()
	s := NewSag()
	s.Observe(c, 0)
	if s.Current() != 0 {
		t.Errorf("expected no sag at rest, got %f", s.Current())
	}
	for i := 0; i < 30; i++ {
		c.Step(0.01)
	}
	s.Observe(c, 0.3)
	if s.Current() <= 0 || s.Value() != s.Current() {
		t.Errorf("expected positive sag tracked as peak, got %f / %f", s.Current(), s.Value())
	}
}

func TestStrainRestSheet(t *testing.T) {
	c := testCloth()
	if s := Strain(c.Grid()); s > 1e-12 {
		t.Errorf("expected zero strain at rest, got %g", s)
	}

	m := NewMaxStretch()
	for i := 0; i < 20; i++ {
		c.Step(0.01)
		m.Observe(c, float64(i)*0.01)
	}
	if m.Value() < m.Current() {
		t.Errorf("peak %f below current %f", m.Value(), m.Current())
	}
}

func TestStability(t *testing.T) {
	c := testCloth()
	s := NewStability(100)
	s.Observe(c, 0)
	if s.Value() != 1 {
		t.Errorf("expected stable, got %f", s.Value())
	}

	tight := NewStability(0.1)
	tight.Observe(c, 0)
	if tight.Value() != 0 || tight.Current() != 0 {
		t.Errorf("expected violation with tight bound, got %f", tight.Value())
	}
}

func TestSubsteps(t *testing.T) {
	c := testCloth()
	s := NewSubsteps()
	s.Observe(c, 0)
	c.Step(0.025)
	s.Observe(c, 0.025)
	if s.Current() != 2 {
		t.Errorf("expected 2 substeps, got %f", s.Current())
	}
	if math.Abs(s.Value()-2) > 1e-12 {
		t.Errorf("expected mean 2, got %f", s.Value())
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 5 || names[0] != "sag" {
		t.Errorf("unexpected metric names %v", names)
	}
}
