package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// MaxStretch tracks the worst structural strain |d - L| / L over all
// axis-adjacent pairs. It shows how far the fixed-iteration solver is from
// inextensibility.
type MaxStretch struct {
	name    string
	current float64
	peak    float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(c *cloth.Cloth, t float64) {
	m.current = Strain(c.Grid())
	m.peak = math.Max(m.peak, m.current)
}

func (m *MaxStretch) Current() float64 { return m.current }

// Value is the peak strain seen since the last Reset.
func (m *MaxStretch) Value() float64 { return m.peak }

func (m *MaxStretch) Reset() {
	m.current = 0
	m.peak = 0
}

// Strain returns the maximum structural strain of g.
func Strain(g *cloth.Grid) float64 {
	nx, ny := g.ColumnCount(), g.RowCount()
	rest := g.Spacing()
	pos := g.Positions()

	worst := 0.0
	measure := func(a, b int) {
		ia, ib := a*3, b*3
		dx := pos[ib] - pos[ia]
		dy := pos[ib+1] - pos[ia+1]
		dz := pos[ib+2] - pos[ia+2]
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if s := math.Abs(d-rest) / rest; s > worst {
			worst = s
		}
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := j*nx + i
			if i+1 < nx {
				measure(k, k+1)
			}
			if j+1 < ny {
				measure(k, k+nx)
			}
		}
	}
	return worst
}
