package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
)

func TestCameraProjectsTargetToCentre(t *testing.T) {
	cam := NewCamera(dynamo.V3(1, 2, 3), 5)
	x, y, depth, ok := cam.ProjectF(cam.Target, 100, 60)
	if !ok {
		t.Fatal("expected target visible")
	}
	if math.Abs(x-50) > 1e-9 || math.Abs(y-30) > 1e-9 {
		t.Errorf("expected centre (50,30), got (%v,%v)", x, y)
	}
	if math.Abs(depth-5) > 1e-9 {
		t.Errorf("expected depth 5, got %v", depth)
	}
}

func TestCameraBehindIsHidden(t *testing.T) {
	cam := NewCamera(dynamo.Vec3{}, 5)
	behind := cam.Eye().Add(cam.Eye().Sub(cam.Target))
	if _, _, _, ok := cam.Project(behind, 100, 100); ok {
		t.Error("expected point behind the eye to be hidden")
	}
}

func TestScreenRayInvertsProject(t *testing.T) {
	cam := NewCamera(dynamo.V3(0, -1, 0), 4)
	cam.Orbit(0.7, -0.2)

	for _, p := range []dynamo.Vec3{
		dynamo.V3(0.3, -0.5, 0.1),
		dynamo.V3(-1, -2, 0.5),
		dynamo.V3(0.8, 0.2, -0.9),
	} {
		x, y, depth, ok := cam.ProjectF(p, 160, 96)
		if !ok {
			t.Fatalf("expected %v visible", p)
		}
		origin, dir := cam.ScreenRay(x, y, 160, 96)
		if math.Abs(dir.Length()-1) > 1e-12 {
			t.Errorf("expected unit direction, got %v", dir.Length())
		}

		// Closest approach of the ray to p must be ~0.
		s := p.Sub(origin).Dot(dir)
		miss := origin.Add(dir.Scale(s)).Sub(p).Length()
		if miss > 1e-9 {
			t.Errorf("ray misses %v by %g", p, miss)
		}
		if s < depth-1e-9 {
			t.Errorf("ray distance %v shorter than depth %v", s, depth)
		}
	}
}

func TestCameraOrbitAndZoom(t *testing.T) {
	cam := NewCamera(dynamo.Vec3{}, 2)
	cam.Orbit(0, 10)
	if cam.Pitch != maxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", maxPitch, cam.Pitch)
	}
	cam.Orbit(0, -20)
	if cam.Pitch != -maxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", -maxPitch, cam.Pitch)
	}

	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Distance != minDistance {
		t.Errorf("expected distance floor %v, got %v", minDistance, cam.Distance)
	}
	cam.ZoomOut()
	if cam.Distance <= minDistance {
		t.Error("expected zoom out to increase distance")
	}

	if math.Abs(cam.Eye().Sub(cam.Target).Length()-cam.Distance) > 1e-12 {
		t.Error("eye should sit Distance from target")
	}
}

func TestScreenRayPicksCloth(t *testing.T) {
	opts := cloth.DefaultOptions()
	opts.NX, opts.NY = 5, 5
	opts.Spacing = 1
	opts.Origin = dynamo.V3(-2, 0, -2)
	c := cloth.New(opts)

	cam := NewCamera(dynamo.Vec3{}, 10)
	cam.Pitch = 1.2

	k := c.Grid().Index(3, 3)
	p := c.Grid().Position(k)
	x, y, _, ok := cam.ProjectF(p, 200, 120)
	if !ok {
		t.Fatal("expected particle visible")
	}
	origin, dir := cam.ScreenRay(x, y, 200, 120)
	hit, ok := c.HitTestRay(origin, dir)
	if !ok || hit.Index != k {
		t.Errorf("expected hit on %d, got %+v ok=%v", k, hit, ok)
	}
}

func TestDrawWireframe(t *testing.T) {
	positions := []float64{
		-1, 0, 0,
		1, 0, 0,
	}
	cam := NewCamera(dynamo.Vec3{}, 5)
	cam.Yaw, cam.Pitch = 0, 0

	cv := NewCanvas(40, 20)
	DrawWireframe(cv, cam, positions, []uint32{0, 1, 0, 9})

	cx, cy := cv.PixelWidth()/2, cv.PixelHeight()/2
	if !cv.IsSet(cx, cy) {
		t.Error("expected the segment to cross the canvas centre")
	}

	svg := WireframeToSVG(cam, positions, []uint32{0, 1}, 200, 100, "#fff")
	if strings.Count(svg, "M") != 1 || !strings.Contains(svg, "L") {
		t.Errorf("expected one segment in svg, got %s", svg)
	}
}
