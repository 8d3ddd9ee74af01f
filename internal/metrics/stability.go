package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
)

// Stability is the fraction of observed frames whose positions were all
// finite and within Threshold of the origin.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
	current    float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		current:   1,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(c *cloth.Cloth, t float64) {
	s.samples++
	s.current = 1
	pos := c.Positions()
	if !dynamo.Finite(pos) {
		s.violations++
		s.current = 0
		return
	}
	for _, v := range pos {
		if v > s.threshold || v < -s.threshold {
			s.violations++
			s.current = 0
			return
		}
	}
}

func (s *Stability) Current() float64 { return s.current }

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.current = 1
}
