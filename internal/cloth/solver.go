package cloth

import (
	"math"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// Solver projects distance constraints for a fixed number of sweeps per
// substep. Each sweep visits structural pairs (right, then down neighbours)
// and, when the grid has shear enabled, both diagonals of every quad. The
// result converges toward inextensibility as Iterations grows but is never
// exact.
type Solver struct {
	Iterations int
	Workers    int
}

func NewSolver(iterations, workers int) *Solver {
	return &Solver{Iterations: iterations, Workers: workers}
}

func (s *Solver) Solve(g *Grid) {
	if s.Workers > 1 {
		for it := 0; it < s.Iterations; it++ {
			s.sweepColoured(g)
		}
		return
	}
	for it := 0; it < s.Iterations; it++ {
		satisfyStructural(g)
		if g.shear {
			satisfyShear(g)
		}
	}
}

func satisfyStructural(g *Grid) {
	nx, ny, rest := g.nx, g.ny, g.spacing

	for j := 0; j < ny; j++ {
		base := j * nx
		for i := 0; i < nx-1; i++ {
			solveDistance(g.pos, g.invMass, base+i, base+i+1, rest)
		}
	}

	for j := 0; j < ny-1; j++ {
		base := j * nx
		for i := 0; i < nx; i++ {
			solveDistance(g.pos, g.invMass, base+i, base+i+nx, rest)
		}
	}
}

func satisfyShear(g *Grid) {
	nx, ny := g.nx, g.ny
	rest := math.Sqrt2 * g.spacing

	for j := 0; j < ny-1; j++ {
		base := j * nx
		for i := 0; i < nx-1; i++ {
			solveDistance(g.pos, g.invMass, base+i, base+i+nx+1, rest)
		}
	}

	for j := 0; j < ny-1; j++ {
		base := j * nx
		for i := 1; i < nx; i++ {
			solveDistance(g.pos, g.invMass, base+i, base+i+nx-1, rest)
		}
	}
}

// solveDistance moves a and b along their separation toward rest length,
// splitting the correction by inverse mass. Coincident or doubly pinned
// pairs are left alone.
func solveDistance(pos, invMass []float64, a, b int, rest float64) {
	ia, ib := a*3, b*3

	dx := pos[ib] - pos[ia]
	dy := pos[ib+1] - pos[ia+1]
	dz := pos[ib+2] - pos[ia+2]
	d2 := dx*dx + dy*dy + dz*dz
	if d2 == 0 {
		return
	}

	wA, wB := invMass[a], invMass[b]
	wSum := wA + wB
	if wSum == 0 {
		return
	}

	d := math.Sqrt(d2)
	diff := (d - rest) / d
	dx, dy, dz = dx*diff, dy*diff, dz*diff

	if wA != 0 {
		sA := wA / wSum
		pos[ia] += dx * sA
		pos[ia+1] += dy * sA
		pos[ia+2] += dz * sA
	}
	if wB != 0 {
		sB := wB / wSum
		pos[ib] -= dx * sB
		pos[ib+1] -= dy * sB
		pos[ib+2] -= dz * sB
	}
}

// family describes one constraint direction as a neighbour offset (di, dj)
// plus the first column it starts from.
type family struct {
	di, dj int
	iStart int
	iEnd   int // exclusive, relative to nx
	shear  bool
}

var families = [...]family{
	{di: 1, dj: 0, iStart: 0, iEnd: -1},
	{di: 0, dj: 1, iStart: 0, iEnd: 0},
	{di: 1, dj: 1, iStart: 0, iEnd: -1, shear: true},
	{di: -1, dj: 1, iStart: 1, iEnd: 0, shear: true},
}

// sweepColoured runs one sweep with every family split into four colour
// classes by (i mod 2, j mod 2). Within a class no two pairs share a
// particle, so rows of a class are solved concurrently.
func (s *Solver) sweepColoured(g *Grid) {
	nx, ny := g.nx, g.ny
	for _, f := range families {
		if f.shear && !g.shear {
			continue
		}
		rest := g.spacing
		if f.shear {
			rest *= math.Sqrt2
		}
		rows := ny - f.dj
		for cj := 0; cj < 2; cj++ {
			for ci := 0; ci < 2; ci++ {
				classRows := (rows - cj + 1) / 2
				dynamo.ParallelFor(classRows, s.Workers, 8, func(start, end int) {
					for r := start; r < end; r++ {
						j := cj + 2*r
						base := j * nx
						for i := f.iStart; i < nx+f.iEnd; i++ {
							if i&1 != ci {
								continue
							}
							a := base + i
							b := a + f.dj*nx + f.di
							solveDistance(g.pos, g.invMass, a, b, rest)
						}
					}
				})
			}
		}
	}
}
