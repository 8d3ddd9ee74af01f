package cloth

import (
	"math"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// NoGrab is the grab index when nothing is held.
const NoGrab = -1

// Hit is the result of a successful ray pick.
type Hit struct {
	Index    int
	T        float64 // ray parameter of the particle's projection
	Distance float64 // perpendicular distance from the ray
}

// Picker holds the pointer ray and the grab lock. While the pointer is active
// and a particle is grabbed, Apply forces that particle onto the ray at the
// parameter recorded when it was picked.
type Picker struct {
	Origin    dynamo.Vec3
	Direction dynamo.Vec3
	Active    bool
	Threshold float64

	grabIndex int
	grabT     float64
}

func NewPicker(threshold float64) *Picker {
	return &Picker{
		Direction: dynamo.V3(0, 0, -1),
		Threshold: threshold,
		grabIndex: NoGrab,
	}
}

// SetRay stores the pointer ray with a normalised direction. Becoming active
// drops any previous grab so the next substep searches afresh; becoming
// inactive releases the grab.
func (p *Picker) SetRay(origin, dir dynamo.Vec3, active bool) {
	wasActive := p.Active
	p.Origin = origin
	p.Direction = dir.Normalize()
	p.Active = active
	if !active || !wasActive {
		p.grabIndex = NoGrab
	}
}

// Grabbed returns the held particle and its ray parameter, or NoGrab.
func (p *Picker) Grabbed() (int, float64) {
	return p.grabIndex, p.grabT
}

// Release drops the grab without changing the ray.
func (p *Picker) Release() {
	p.grabIndex = NoGrab
}

// Apply is run once per substep after the constraint solve.
func (p *Picker) Apply(g *Grid) {
	if !p.Active {
		p.grabIndex = NoGrab
		return
	}
	if p.grabIndex == NoGrab {
		hit, ok := Pick(g, p.Origin, p.Direction, p.Threshold)
		if !ok {
			return
		}
		p.grabIndex = hit.Index
		p.grabT = hit.T
	}
	g.setPosition(p.grabIndex, p.Origin.Add(p.Direction.Scale(p.grabT)))
}

// Pick finds the free particle closest to the ray, within threshold and not
// behind the ray origin. Equal distances resolve to the lowest flat index.
// Pick does not modify g.
func Pick(g *Grid, origin, dir dynamo.Vec3, threshold float64) (Hit, bool) {
	d := dir.Normalize()
	pos := g.pos

	best := Hit{Index: NoGrab, Distance: threshold}
	for k, i := 0, 0; k < len(g.invMass); k, i = k+1, i+3 {
		if g.invMass[k] == 0 {
			continue
		}

		px := pos[i] - origin.X
		py := pos[i+1] - origin.Y
		pz := pos[i+2] - origin.Z
		t := px*d.X + py*d.Y + pz*d.Z
		if t < 0 {
			continue
		}

		ex := px - d.X*t
		ey := py - d.Y*t
		ez := pz - d.Z*t
		dist := math.Sqrt(ex*ex + ey*ey + ez*ez)
		if dist < best.Distance {
			best = Hit{Index: k, T: t, Distance: dist}
		}
	}

	if best.Index == NoGrab {
		return Hit{Index: NoGrab}, false
	}
	return best, true
}
