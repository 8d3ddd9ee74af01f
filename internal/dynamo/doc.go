// Package dynamo provides the shared primitives used by the cloth simulator.
//
//   - [Vec3]: small value-type 3D vector used for forces, rays and offsets
//   - sentinel errors for the outer layers (config, runner, storage)
//   - [ParallelFor]: row-chunked fan-out used by the parallel constraint solver
//   - [SetLogger] / [Logger]: package-wide structured logger, silent by default
//
// # Example
//
//	d := dynamo.Vec3{X: 0, Y: -1, Z: 0}
//	hit := origin.Add(d.Normalize().Scale(t))
//
// # Thread Safety
//
// Vec3 is an immutable value type. The logger is stored atomically and may be
// swapped from any goroutine.
package dynamo
