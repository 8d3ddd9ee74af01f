package cloth

import "github.com/san-kum/clothsim/internal/dynamo"

// Forces combines constant gravity with a toggleable wind acceleration.
// Both are accelerations; particle mass is uniform.
type Forces struct {
	Gravity     dynamo.Vec3
	Wind        dynamo.Vec3
	WindEnabled bool
}

// Acceleration is the per-substep acceleration applied to every free particle.
func (f *Forces) Acceleration() dynamo.Vec3 {
	if !f.WindEnabled {
		return f.Gravity
	}
	return f.Gravity.Add(f.Wind)
}
