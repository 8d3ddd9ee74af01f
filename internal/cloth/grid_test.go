package cloth

import (
	"testing"

	"github.com/san-kum/clothsim/internal/dynamo"
)

func TestGridTriangleCount(t *testing.T) {
	tests := []struct {
		nx, ny int
	}{
		{2, 2},
		{3, 5},
		{16, 16},
		{7, 2},
	}

	for _, tt := range tests {
		g := NewGrid(tt.nx, tt.ny, 1, dynamo.Vec3{}, true)
		expected := 6 * (tt.nx - 1) * (tt.ny - 1)
		if len(g.Triangles()) != expected {
			t.Errorf("%dx%d: expected %d triangle indices, got %d", tt.nx, tt.ny, expected, len(g.Triangles()))
		}
	}
}

func TestGridTriangleWinding(t *testing.T) {
	g := NewGrid(3, 2, 1, dynamo.Vec3{}, false)
	want := []uint32{0, 3, 1, 1, 3, 4, 1, 4, 2, 2, 4, 5}
	got := g.Triangles()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestGridLineCount(t *testing.T) {
	tests := []struct {
		name   string
		nx, ny int
		shear  bool
	}{
		{"structural only", 4, 3, false},
		{"with shear", 4, 3, true},
		{"minimal", 2, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.nx, tt.ny, 1, dynamo.Vec3{}, tt.shear)
			edges := (tt.nx-1)*tt.ny + tt.nx*(tt.ny-1)
			if tt.shear {
				edges += 2 * (tt.nx - 1) * (tt.ny - 1)
			}
			if len(g.Lines()) != 2*edges {
				t.Errorf("expected %d line indices, got %d", 2*edges, len(g.Lines()))
			}
		})
	}
}

func TestGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -3, 1, dynamo.Vec3{}, true)
	if g.ColumnCount() != MinGridSize || g.RowCount() != MinGridSize {
		t.Errorf("expected %dx%d, got %dx%d", MinGridSize, MinGridSize, g.ColumnCount(), g.RowCount())
	}
	if len(g.Positions()) != 3*MinGridSize*MinGridSize {
		t.Errorf("expected %d position values, got %d", 3*MinGridSize*MinGridSize, len(g.Positions()))
	}
}

func TestGridLayout(t *testing.T) {
	origin := dynamo.V3(-1, 0.5, 2)
	g := NewGrid(3, 4, 0.25, origin, true)

	p := g.Position(g.Index(2, 3))
	want := dynamo.V3(-1+2*0.25, 0.5, 2+3*0.25)
	if p != want {
		t.Errorf("expected %v, got %v", want, p)
	}

	for k := 0; k < g.ParticleCount(); k++ {
		if g.IsPinned(k) {
			t.Fatalf("particle %d pinned on construction", k)
		}
		if g.Position(k) != g.PreviousPosition(k) {
			t.Fatalf("particle %d has non-zero initial velocity", k)
		}
	}

	if g.ExtentX() != 0.5 || g.ExtentZ() != 0.75 {
		t.Errorf("expected extents 0.5 x 0.75, got %v x %v", g.ExtentX(), g.ExtentZ())
	}
}

func TestGridPinRowOffset(t *testing.T) {
	g := NewGrid(3, 3, 1, dynamo.Vec3{}, true)
	offset := dynamo.V3(0, 0, 0.5)
	g.PinRow(-1, offset)

	for i := 0; i < 3; i++ {
		k := g.Index(i, 2)
		if !g.IsPinned(k) {
			t.Errorf("particle %d not pinned", k)
		}
		want := dynamo.V3(float64(i), 0, 2.5)
		if g.Position(k) != want || g.PreviousPosition(k) != want {
			t.Errorf("particle %d: expected %v, got %v / %v", k, want, g.Position(k), g.PreviousPosition(k))
		}
	}
	if g.IsPinned(g.Index(0, 1)) {
		t.Error("row 1 should stay free")
	}
}

func TestGridPinOutOfRange(t *testing.T) {
	g := NewGrid(3, 3, 1, dynamo.Vec3{}, true)
	g.PinRow(3, dynamo.Vec3{})
	g.PinColumn(-4, dynamo.Vec3{})

	for k := 0; k < g.ParticleCount(); k++ {
		if g.IsPinned(k) {
			t.Errorf("particle %d pinned by out-of-range call", k)
		}
	}
}

func TestGridPinColumn(t *testing.T) {
	g := NewGrid(4, 3, 1, dynamo.Vec3{}, true)
	g.PinColumn(3, dynamo.Vec3{})
	for j := 0; j < 3; j++ {
		if !g.IsPinned(g.Index(3, j)) {
			t.Errorf("expected (3,%d) pinned", j)
		}
		if g.IsPinned(g.Index(2, j)) {
			t.Errorf("expected (2,%d) free", j)
		}
	}
}
