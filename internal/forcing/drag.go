package forcing

import (
	"math"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// DragWind maps a screen drag of (dx, dy) pixels to a horizontal wind for a
// camera orbiting at yaw. Dragging right blows toward screen right and
// dragging up blows away from the viewer.
func DragWind(dx, dy, yaw, gain float64) dynamo.Vec3 {
	right := dynamo.V3(math.Cos(yaw), 0, -math.Sin(yaw))
	forward := dynamo.V3(-math.Sin(yaw), 0, -math.Cos(yaw))
	return right.Scale(dx * gain).Add(forward.Scale(-dy * gain))
}

// WindDriver is satisfied by *cloth.Cloth.
type WindDriver interface {
	SetWind(dynamo.Vec3)
}

// Steer replaces the gust base with the wind for the latest drag delta and
// pushes it into w, which re-enables a disabled wind.
func (g *Gust) Steer(w WindDriver, dx, dy, yaw, gain float64) {
	v := DragWind(dx, dy, yaw, gain)
	g.SetBase(v)
	w.SetWind(v)
}
