package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/forcing"
)

// Simulator feeds frame deltas to one cloth, applying wind gusts before each
// step and sampling metrics after it.
type Simulator struct {
	cloth     *cloth.Cloth
	gust      *forcing.Gust
	metrics   []Metric
	observers []Observer
	t         float64
}

// New wraps c. gust may be nil for a constant wind.
func New(c *cloth.Cloth, gust *forcing.Gust) *Simulator {
	return &Simulator{
		cloth:     c,
		gust:      gust,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Cloth() *cloth.Cloth { return s.cloth }
func (s *Simulator) Gust() *forcing.Gust { return s.gust }
func (s *Simulator) Metrics() []Metric   { return s.metrics }
func (s *Simulator) Time() float64       { return s.t }

// Advance runs one frame of delta seconds and returns the substeps it took.
// Viewers call this from their render loop.
func (s *Simulator) Advance(delta float64) int {
	if s.gust != nil {
		s.gust.Apply(s.cloth)
	}
	n := s.cloth.Step(delta)
	if delta > 0 && !math.IsInf(delta, 1) {
		s.t += delta
	}
	s.observe()
	return n
}

func (s *Simulator) observe() {
	for _, m := range s.metrics {
		m.Observe(s.cloth, s.t)
	}
	for _, o := range s.observers {
		o.OnFrame(s.cloth, s.t)
	}
}

// Reset zeroes the clock and every metric. The cloth itself is untouched.
func (s *Simulator) Reset() {
	s.t = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Run drives the cloth for cfg.Duration. On cancellation the partial result is
// returned with an error matching both dynamo.ErrContextCanceled and
// ctx.Err(). A non-finite position stops the run and is recorded in
// Result.Errors.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(cfg.Duration*cfg.FrameRate + 0.5)
	dt := 1 / cfg.FrameRate
	log := dynamo.Logger()

	result := &Result{
		Times:   make([]float64, 0, frames+1),
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
		Errors:  make([]error, 0),
	}

	s.Reset()
	startSubsteps := s.cloth.Substeps()
	s.observe()
	s.record(result)

	log.Info("run started", slog.Int("frames", frames), slog.Float64("dt", dt))

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, startSubsteps)
			log.Info("run canceled", slog.Int("frame", i))
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		s.Advance(dt)
		result.Frames++
		s.record(result)

		if !dynamo.Finite(s.cloth.Positions()) {
			err := &dynamo.SimulationError{Frame: i, Time: s.t, Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			log.Warn("run diverged", slog.Int("frame", i), slog.Float64("t", s.t))
			break
		}
	}

	s.finish(result, startSubsteps)
	log.Info("run finished", slog.Int("frames", result.Frames), slog.Int("substeps", result.Substeps))
	return result, nil
}

func (s *Simulator) record(r *Result) {
	r.Times = append(r.Times, s.t)
	for _, m := range s.metrics {
		r.Series[m.Name()] = append(r.Series[m.Name()], m.Current())
	}
}

func (s *Simulator) finish(r *Result, startSubsteps int) {
	r.Substeps = s.cloth.Substeps() - startSubsteps
	r.Final = slices.Clone(s.cloth.Positions())
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if !(cfg.FrameRate > 0) {
		return dynamo.BoundsError("frame_rate", cfg.FrameRate, "> 0")
	}
	if !(cfg.Duration > 0) {
		return dynamo.BoundsError("duration", cfg.Duration, "> 0")
	}
	return nil
}
