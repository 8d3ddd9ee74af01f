package metrics

import "github.com/san-kum/clothsim/internal/cloth"

// KineticEnergy estimates the kinetic energy of the free particles from the
// Verlet position history, assuming unit mass: sum |x - prev|² / (2 dt²).
type KineticEnergy struct {
	name    string
	current float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(c *cloth.Cloth, t float64) {
	g := c.Grid()
	dt := c.Options().MaxSubstep
	pos, prev := g.Positions(), g.Previous()

	sum := 0.0
	for k := 0; k < g.ParticleCount(); k++ {
		if g.IsPinned(k) {
			continue
		}
		p := k * 3
		dx := pos[p] - prev[p]
		dy := pos[p+1] - prev[p+1]
		dz := pos[p+2] - prev[p+2]
		sum += dx*dx + dy*dy + dz*dz
	}

	e.current = sum / (2 * dt * dt)
	e.total += e.current
	e.samples++
}

func (e *KineticEnergy) Current() float64 { return e.current }

// Value is the mean over all observed frames.
func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.total = 0
	e.samples = 0
}
