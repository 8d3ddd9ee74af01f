package viz

import (
	"math"
	"sort"

	"github.com/san-kum/clothsim/internal/dynamo"
)

const (
	maxPitch    = 1.45
	minDistance = 0.05
	zoomFactor  = 1.2
)

var worldUp = dynamo.V3(0, 1, 0)

// Camera orbits Target at Distance. Yaw turns about the world y axis and
// Pitch lifts the eye above the horizontal plane.
type Camera struct {
	Target     dynamo.Vec3
	Yaw, Pitch float64
	Distance   float64
	FOV        float64
	Near       float64
}

func NewCamera(target dynamo.Vec3, distance float64) *Camera {
	return &Camera{
		Target:   target,
		Yaw:      0.6,
		Pitch:    0.35,
		Distance: math.Max(distance, minDistance),
		FOV:      math.Pi / 4,
		Near:     1e-3,
	}
}

// Orbit turns the camera, clamping pitch short of the poles.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

func (c *Camera) ZoomIn()  { c.Distance = math.Max(minDistance, c.Distance/zoomFactor) }
func (c *Camera) ZoomOut() { c.Distance *= zoomFactor }

func (c *Camera) Eye() dynamo.Vec3 {
	cp := math.Cos(c.Pitch)
	dir := dynamo.V3(cp*math.Sin(c.Yaw), math.Sin(c.Pitch), cp*math.Cos(c.Yaw))
	return c.Target.Add(dir.Scale(c.Distance))
}

// basis returns the camera's forward, right and up unit vectors.
func (c *Camera) basis() (f, r, u dynamo.Vec3) {
	f = c.Target.Sub(c.Eye()).Normalize()
	r = f.Cross(worldUp).Normalize()
	u = r.Cross(f)
	return f, r, u
}

func (c *Camera) focal(w, h int) float64 {
	return float64(min(w, h)) / 2 / math.Tan(c.FOV/2)
}

// ProjectF maps a world point to sub-pixel screen coordinates on a w x h
// surface. ok is false for points at or behind the near plane.
func (c *Camera) ProjectF(p dynamo.Vec3, w, h int) (x, y, depth float64, ok bool) {
	f, r, u := c.basis()
	q := p.Sub(c.Eye())
	depth = q.Dot(f)
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	k := c.focal(w, h) / depth
	return float64(w)/2 + q.Dot(r)*k, float64(h)/2 - q.Dot(u)*k, depth, true
}

// Project is ProjectF rounded to whole sub-pixels.
func (c *Camera) Project(p dynamo.Vec3, w, h int) (int, int, float64, bool) {
	x, y, d, ok := c.ProjectF(p, w, h)
	return int(math.Round(x)), int(math.Round(y)), d, ok
}

// ScreenRay is the inverse of ProjectF: the eye and the unit direction
// through sub-pixel (x, y).
func (c *Camera) ScreenRay(x, y float64, w, h int) (dynamo.Vec3, dynamo.Vec3) {
	f, r, u := c.basis()
	k := c.focal(w, h)
	dir := f.Add(r.Scale((x - float64(w)/2) / k)).Add(u.Scale((float64(h)/2 - y) / k))
	return c.Eye(), dir.Normalize()
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// DrawWireframe projects every index pair of lines and draws the visible
// ones far to near.
func DrawWireframe(cv *Canvas, cam *Camera, positions []float64, lines []uint32) {
	if cv == nil || cam == nil {
		return
	}
	w, h := cv.PixelWidth(), cv.PixelHeight()
	n := uint32(len(positions) / 3)

	edges := make([]projectedEdge, 0, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		if a >= n || b >= n {
			continue
		}
		x1, y1, d1, ok1 := cam.Project(vertex(positions, a), w, h)
		x2, y2, d2, ok2 := cam.Project(vertex(positions, b), w, h)
		if !ok1 || !ok2 {
			continue
		}
		edges = append(edges, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].depth > edges[j].depth })
	for _, e := range edges {
		cv.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// DrawMarker draws a small cross centred on a world point.
func DrawMarker(cv *Canvas, cam *Camera, p dynamo.Vec3) {
	x, y, _, ok := cam.Project(p, cv.PixelWidth(), cv.PixelHeight())
	if !ok {
		return
	}
	cv.DrawLine(x-2, y, x+2, y)
	cv.DrawLine(x, y-2, x, y+2)
}

func vertex(positions []float64, k uint32) dynamo.Vec3 {
	return dynamo.V3(positions[k*3], positions[k*3+1], positions[k*3+2])
}
