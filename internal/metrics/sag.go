package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Sag measures how far the lowest particle hangs below the sheet's rest
// height (the origin's y).
type Sag struct {
	name    string
	current float64
	peak    float64
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(c *cloth.Cloth, t float64) {
	g := c.Grid()
	rest := g.Origin().Y
	pos := g.Positions()

	lowest := math.Inf(1)
	for p := 1; p < len(pos); p += 3 {
		lowest = math.Min(lowest, pos[p])
	}
	s.current = rest - lowest
	s.peak = math.Max(s.peak, s.current)
}

func (s *Sag) Current() float64 { return s.current }

// Value is the deepest sag seen since the last Reset.
func (s *Sag) Value() float64 { return s.peak }

func (s *Sag) Reset() {
	s.current = 0
	s.peak = 0
}
