package forcing

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
)

func near(a, b dynamo.Vec3) bool {
	return a.Sub(b).Length() < 1e-12
}

func TestDragWind(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		yaw    float64
		want   dynamo.Vec3
	}{
		{"right facing -z", 10, 0, 0, dynamo.V3(1, 0, 0)},
		{"up facing -z", 0, -10, 0, dynamo.V3(0, 0, -1)},
		{"right after quarter turn", 10, 0, math.Pi / 2, dynamo.V3(0, 0, -1)},
		{"none", 0, 0, 1.3, dynamo.Vec3{}},
	}

	for _, tt := range tests {
		if got := DragWind(tt.dx, tt.dy, tt.yaw, 0.1); !near(got, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestDragWindIsHorizontal(t *testing.T) {
	for yaw := 0.0; yaw < 2*math.Pi; yaw += 0.4 {
		if w := DragWind(3, -7, yaw, 1); w.Y != 0 {
			t.Fatalf("yaw %.1f: expected horizontal wind, got %v", yaw, w)
		}
	}
}

func TestSteerReplacesBase(t *testing.T) {
	opts := cloth.DefaultOptions()
	opts.NX, opts.NY = 4, 4
	c := cloth.New(opts)
	c.SetWindEnabled(false)

	g := NewGust(dynamo.V3(-20, 0, 0), 0, 1)
	for i := 0; i < 5; i++ {
		g.Steer(c, 5, 0, 0, 0.1)
	}

	want := dynamo.V3(0.5, 0, 0)
	if !near(g.Base, want) {
		t.Errorf("expected base %v after repeated drags, got %v", want, g.Base)
	}
	if !near(c.Wind(), want) {
		t.Errorf("expected cloth wind %v, got %v", want, c.Wind())
	}
	if !c.WindEnabled() {
		t.Error("expected steering to enable wind")
	}
}
