package cloth

import (
	"math"
	"testing"
)

func TestSchedulerBacklogCeiling(t *testing.T) {
	s := NewScheduler(1.0/120.0, 0.25)
	calls := 0
	n := s.Advance(10, func(dt float64) {
		if dt != 1.0/120.0 {
			t.Fatalf("expected fixed dt, got %v", dt)
		}
		calls++
	})

	if n != 30 || calls != 30 {
		t.Errorf("expected 30 substeps, got %d (calls %d)", n, calls)
	}
	if s.Accumulated() > 1e-9 {
		t.Errorf("expected discarded backlog, %.12f still queued", s.Accumulated())
	}
}

func TestSchedulerInvalidDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"zero", 0},
		{"negative", -0.5},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(0.01, 0.25)
			n := s.Advance(tt.delta, func(float64) { t.Fatal("substep ran") })
			if n != 0 || s.Accumulated() != 0 {
				t.Errorf("expected no-op, got %d substeps and %.4f accumulated", n, s.Accumulated())
			}
		})
	}
}

func TestSchedulerCarriesRemainder(t *testing.T) {
	s := NewScheduler(0.01, 0.25)
	noop := func(float64) {}

	if n := s.Advance(0.004, noop); n != 0 {
		t.Errorf("expected 0 substeps, got %d", n)
	}
	if n := s.Advance(0.004, noop); n != 0 {
		t.Errorf("expected 0 substeps, got %d", n)
	}
	if n := s.Advance(0.004, noop); n != 1 {
		t.Errorf("expected 1 substep, got %d", n)
	}
	if math.Abs(s.Accumulated()-0.002) > 1e-12 {
		t.Errorf("expected 0.002 carried, got %.12f", s.Accumulated())
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler(0.01, 0.25)
	s.Advance(0.005, func(float64) {})
	s.Reset()
	if s.Accumulated() != 0 {
		t.Errorf("expected empty accumulator, got %v", s.Accumulated())
	}
}
