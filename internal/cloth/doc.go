// Package cloth implements a grid-based cloth simulated with Verlet
// integration and iterative distance-constraint projection.
//
// A [Cloth] owns every piece of simulation state:
//
//   - [Grid]: particle buffers (position, previous position, inverse mass)
//     and the immutable triangle/line index buffers
//   - [Forces]: gravity plus an optional wind acceleration
//   - [Integrator]: damped position Verlet over free particles
//   - [Solver]: structural and shear distance constraints, fixed sweeps
//   - [Picker]: ray hit-testing and the grab lock of one particle
//   - [Scheduler]: fixed-substep accumulator driven by wall-clock deltas
//
// # Example
//
//	c := cloth.New(cloth.DefaultOptions())
//	c.SetWind(dynamo.V3(-20, 0, 0))
//	for frame := range frames {
//	    c.Step(frame.Delta)
//	    upload(c.Positions(), c.Triangles())
//	}
//
// # Errors
//
// Nothing in this package returns an error. Invalid step deltas are ignored,
// degenerate constraints are skipped, a failed pick is reported as "no hit"
// and out-of-range construction parameters are clamped.
//
// # Thread Safety
//
// A Cloth is single-owner and not safe for concurrent use. Step must not be
// called re-entrantly. Index buffers are read-only after New returns and may
// be shared with renderers.
package cloth
