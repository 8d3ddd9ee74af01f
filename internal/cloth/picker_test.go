package cloth

import (
	"testing"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// unitSheet is a 4x4 grid of unit spacing at the origin with row 0 pinned.
func unitSheet() *Grid {
	g := NewGrid(4, 4, 1, dynamo.Vec3{}, true)
	g.PinRow(0, dynamo.Vec3{})
	return g
}

var down = dynamo.V3(0, -1, 0)

func TestPickThroughFreeParticle(t *testing.T) {
	g := unitSheet()
	want := g.Index(1, 2)

	hit, ok := Pick(g, dynamo.V3(1, 5, 2), down, 2)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != want {
		t.Errorf("expected index %d, got %d", want, hit.Index)
	}
	if hit.Distance > 1e-12 {
		t.Errorf("expected near-zero distance, got %g", hit.Distance)
	}
	if hit.T != 5 {
		t.Errorf("expected t=5, got %v", hit.T)
	}
}

func TestPickIgnoresPinned(t *testing.T) {
	g := unitSheet()
	if hit, ok := Pick(g, dynamo.V3(1, 5, 0), down, 0.5); ok {
		t.Errorf("expected no hit through pinned particle, got %+v", hit)
	}
}

func TestPickBehindOrigin(t *testing.T) {
	g := unitSheet()
	if _, ok := Pick(g, dynamo.V3(1, -5, 2), down, 2); ok {
		t.Error("expected no hit for particles behind the ray origin")
	}
}

func TestPickTieResolvesToLowestIndex(t *testing.T) {
	g := unitSheet()
	hit, ok := Pick(g, dynamo.V3(1.5, 5, 2), down, 2)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != g.Index(1, 2) {
		t.Errorf("expected tie to resolve to %d, got %d", g.Index(1, 2), hit.Index)
	}
}

func TestPickNormalisesDirection(t *testing.T) {
	g := unitSheet()
	hit, ok := Pick(g, dynamo.V3(2, 4, 3), dynamo.V3(0, -10, 0), 2)
	if !ok || hit.Index != g.Index(2, 3) || hit.T != 4 {
		t.Errorf("expected index %d at t=4, got %+v (ok=%v)", g.Index(2, 3), hit, ok)
	}
}

func TestPickDoesNotMutate(t *testing.T) {
	g := unitSheet()
	before := append([]float64(nil), g.pos...)
	Pick(g, dynamo.V3(1, 5, 2), down, 2)
	for i := range before {
		if g.pos[i] != before[i] {
			t.Fatalf("position %d changed", i)
		}
	}
}

func TestPickerGrabLifecycle(t *testing.T) {
	g := unitSheet()
	p := NewPicker(2)

	p.SetRay(dynamo.V3(1, 5, 2), down, true)
	p.Apply(g)
	k, tParam := p.Grabbed()
	if k != g.Index(1, 2) || tParam != 5 {
		t.Fatalf("expected grab of %d at t=5, got %d at %v", g.Index(1, 2), k, tParam)
	}

	shifted := dynamo.V3(1.4, 5, 2.3)
	p.SetRay(shifted, down, true)
	p.Apply(g)
	want := shifted.Add(down.Scale(5))
	if g.Position(k) != want || g.PreviousPosition(k) != want {
		t.Errorf("expected grabbed particle at %v, got %v / %v", want, g.Position(k), g.PreviousPosition(k))
	}

	p.SetRay(shifted, down, false)
	if k, _ := p.Grabbed(); k != NoGrab {
		t.Errorf("expected release, still holding %d", k)
	}
}

func TestPickerReactivationSearchesAgain(t *testing.T) {
	g := unitSheet()
	p := NewPicker(2)

	p.SetRay(dynamo.V3(1, 5, 2), down, true)
	p.Apply(g)

	p.SetRay(dynamo.V3(3, 5, 3), down, false)
	p.SetRay(dynamo.V3(3, 5, 3), down, true)
	if k, _ := p.Grabbed(); k != NoGrab {
		t.Fatalf("expected grab cleared on activation, got %d", k)
	}
	p.Apply(g)
	if k, _ := p.Grabbed(); k != g.Index(3, 3) {
		t.Errorf("expected fresh grab of %d, got %d", g.Index(3, 3), k)
	}
}

func TestPickerMissLeavesGridAlone(t *testing.T) {
	g := unitSheet()
	p := NewPicker(2)
	p.SetRay(dynamo.V3(50, 5, 50), down, true)

	before := append([]float64(nil), g.pos...)
	p.Apply(g)
	if k, _ := p.Grabbed(); k != NoGrab {
		t.Errorf("expected no grab, got %d", k)
	}
	for i := range before {
		if g.pos[i] != before[i] {
			t.Fatalf("position %d changed on miss", i)
		}
	}
}
