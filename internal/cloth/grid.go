package cloth

import "github.com/san-kum/clothsim/internal/dynamo"

// Grid holds the particle state of an nx*ny sheet as flat parallel buffers.
// Particle (i, j) lives at index j*nx+i; its position occupies
// pos[3k:3k+3].
type Grid struct {
	nx, ny  int
	spacing float64
	origin  dynamo.Vec3
	shear   bool

	pos     []float64
	prev    []float64
	invMass []float64 // 0 = pinned, 1 = free

	triangles []uint32
	lines     []uint32
}

// NewGrid lays out a horizontal sheet in the x/z plane at height origin.Y,
// every particle free. nx and ny are clamped to MinGridSize.
func NewGrid(nx, ny int, spacing float64, origin dynamo.Vec3, shear bool) *Grid {
	if nx < MinGridSize {
		nx = MinGridSize
	}
	if ny < MinGridSize {
		ny = MinGridSize
	}

	n := nx * ny
	g := &Grid{
		nx:      nx,
		ny:      ny,
		spacing: spacing,
		origin:  origin,
		shear:   shear,
		pos:     make([]float64, n*3),
		prev:    make([]float64, n*3),
		invMass: make([]float64, n),
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := j*nx + i
			p := k * 3
			g.pos[p] = origin.X + float64(i)*spacing
			g.pos[p+1] = origin.Y
			g.pos[p+2] = origin.Z + float64(j)*spacing
			g.invMass[k] = 1
		}
	}
	copy(g.prev, g.pos)

	g.triangles = buildTriangles(nx, ny)
	g.lines = buildLines(nx, ny, shear)
	return g
}

// buildTriangles emits two triangles per quad, a-c-b and b-c-d.
func buildTriangles(nx, ny int) []uint32 {
	idx := make([]uint32, 0, (nx-1)*(ny-1)*6)
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			a := uint32(j*nx + i)
			b := a + 1
			c := a + uint32(nx)
			d := c + 1
			idx = append(idx, a, c, b, b, c, d)
		}
	}
	return idx
}

// buildLines emits wireframe edges: right and down neighbours, plus both
// diagonals when shear is on. Edges are not deduplicated.
func buildLines(nx, ny int, shear bool) []uint32 {
	var edges []uint32
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a := uint32(j*nx + i)
			if i+1 < nx {
				edges = append(edges, a, a+1)
			}
			if j+1 < ny {
				edges = append(edges, a, a+uint32(nx))
			}
			if shear {
				if i+1 < nx && j+1 < ny {
					edges = append(edges, a, a+uint32(nx)+1)
				}
				if i-1 >= 0 && j+1 < ny {
					edges = append(edges, a, a+uint32(nx)-1)
				}
			}
		}
	}
	return edges
}

// PinRow pins every particle of row j and displaces it by offset. Rows
// outside [0, ny) are ignored; negative j counts from the last row.
func (g *Grid) PinRow(j int, offset dynamo.Vec3) {
	if j < 0 {
		j += g.ny
	}
	if j < 0 || j >= g.ny {
		return
	}
	for i := 0; i < g.nx; i++ {
		g.pin(j*g.nx+i, offset)
	}
}

// PinColumn pins every particle of column i and displaces it by offset.
func (g *Grid) PinColumn(i int, offset dynamo.Vec3) {
	if i < 0 {
		i += g.nx
	}
	if i < 0 || i >= g.nx {
		return
	}
	for j := 0; j < g.ny; j++ {
		g.pin(j*g.nx+i, offset)
	}
}

func (g *Grid) pin(k int, offset dynamo.Vec3) {
	g.invMass[k] = 0
	p := k * 3
	g.pos[p] += offset.X
	g.pos[p+1] += offset.Y
	g.pos[p+2] += offset.Z
	g.prev[p] = g.pos[p]
	g.prev[p+1] = g.pos[p+1]
	g.prev[p+2] = g.pos[p+2]
}

func (g *Grid) pinEdge(edge PinEdge) {
	switch edge {
	case PinTop:
		g.PinRow(0, dynamo.Vec3{})
	case PinBottom:
		g.PinRow(g.ny-1, dynamo.Vec3{})
	case PinLeft:
		g.PinColumn(0, dynamo.Vec3{})
	case PinRight:
		g.PinColumn(g.nx-1, dynamo.Vec3{})
	}
}

func (g *Grid) RowCount() int         { return g.ny }
func (g *Grid) ColumnCount() int      { return g.nx }
func (g *Grid) ParticleCount() int    { return g.nx * g.ny }
func (g *Grid) Spacing() float64      { return g.spacing }
func (g *Grid) Origin() dynamo.Vec3   { return g.origin }
func (g *Grid) Shear() bool           { return g.shear }
func (g *Grid) ExtentX() float64      { return g.spacing * float64(g.nx-1) }
func (g *Grid) ExtentZ() float64      { return g.spacing * float64(g.ny-1) }
func (g *Grid) Index(i, j int) int    { return j*g.nx + i }
func (g *Grid) IsPinned(k int) bool   { return g.invMass[k] == 0 }
func (g *Grid) InvMass(k int) float64 { return g.invMass[k] }

// Positions is the live xyz buffer. Callers must treat it as read-only.
func (g *Grid) Positions() []float64 { return g.pos }

// Previous is the live previous-position buffer. Read-only.
func (g *Grid) Previous() []float64 { return g.prev }

// Triangles is the triangle index buffer, 6*(nx-1)*(ny-1) entries.
func (g *Grid) Triangles() []uint32 { return g.triangles }

// Lines is the wireframe index buffer, two entries per edge.
func (g *Grid) Lines() []uint32 { return g.lines }

// Position returns particle k's current position.
func (g *Grid) Position(k int) dynamo.Vec3 {
	p := k * 3
	return dynamo.Vec3{X: g.pos[p], Y: g.pos[p+1], Z: g.pos[p+2]}
}

// PreviousPosition returns particle k's position before the last substep.
func (g *Grid) PreviousPosition(k int) dynamo.Vec3 {
	p := k * 3
	return dynamo.Vec3{X: g.prev[p], Y: g.prev[p+1], Z: g.prev[p+2]}
}

// setPosition overrides both current and previous position, zeroing the
// implicit velocity.
func (g *Grid) setPosition(k int, v dynamo.Vec3) {
	p := k * 3
	g.pos[p], g.pos[p+1], g.pos[p+2] = v.X, v.Y, v.Z
	g.prev[p], g.prev[p+1], g.prev[p+2] = v.X, v.Y, v.Z
}
