package cloth

import "github.com/san-kum/clothsim/internal/dynamo"

// Integrator advances free particles with damped position Verlet:
//
//	v    = (x - prev) * damping
//	prev = x
//	x    = x + v + a*dt²
//
// Pinned particles are skipped.
type Integrator struct {
	Damping float64
}

func NewIntegrator(damping float64) *Integrator {
	return &Integrator{Damping: damping}
}

func (in *Integrator) Step(g *Grid, acc dynamo.Vec3, dt float64) {
	dt2 := dt * dt
	ax, ay, az := acc.X*dt2, acc.Y*dt2, acc.Z*dt2
	damping := in.Damping
	pos, prev := g.pos, g.prev

	for k, p := 0, 0; k < len(g.invMass); k, p = k+1, p+3 {
		if g.invMass[k] == 0 {
			continue
		}

		x, y, z := pos[p], pos[p+1], pos[p+2]

		vx := (x - prev[p]) * damping
		vy := (y - prev[p+1]) * damping
		vz := (z - prev[p+2]) * damping

		prev[p], prev[p+1], prev[p+2] = x, y, z

		pos[p] = x + vx + ax
		pos[p+1] = y + vy + ay
		pos[p+2] = z + vz + az
	}
}
