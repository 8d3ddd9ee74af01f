package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// Substeps counts fixed substeps per observed frame. The first observation
// after a reset only records the baseline.
type Substeps struct {
	last    int
	current float64
	frames  int
	total   int
}

func NewSubsteps() *Substeps { return &Substeps{last: -1} }

func (s *Substeps) Name() string { return "substeps" }

func (s *Substeps) Observe(c *cloth.Cloth, t float64) {
	n := c.Substeps()
	if s.last < 0 {
		s.last = n
		s.current = 0
		return
	}
	s.current = float64(n - s.last)
	s.total += n - s.last
	s.last = n
	s.frames++
}

func (s *Substeps) Current() float64 { return s.current }

// Value is the mean number of substeps per frame.
func (s *Substeps) Value() float64 {
	if s.frames == 0 {
		return 0
	}
	return float64(s.total) / float64(s.frames)
}

func (s *Substeps) Reset() {
	s.last, s.current, s.frames, s.total = -1, 0, 0, 0
}
