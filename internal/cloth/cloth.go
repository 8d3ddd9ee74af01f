package cloth

import (
	"log/slog"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// Cloth is one independent simulated sheet.
type Cloth struct {
	grid       *Grid
	forces     Forces
	integrator *Integrator
	solver     *Solver
	picker     *Picker
	scheduler  *Scheduler

	opts     Options
	substeps int
	simTime  float64
}

// New builds a cloth from opts, clamping out-of-range values. Wind starts
// enabled with a zero vector.
func New(opts Options) *Cloth {
	opts, clamped := opts.normalize()
	log := dynamo.Logger()
	if len(clamped) > 0 {
		log.Warn("cloth options clamped", slog.Any("fields", clamped))
	}

	g := NewGrid(opts.NX, opts.NY, opts.Spacing, opts.Origin, opts.UseShear)
	g.pinEdge(opts.PinEdge)
	for _, p := range opts.Pins {
		switch p.Line {
		case Row:
			g.PinRow(p.Index, p.Offset)
		case Column:
			g.PinColumn(p.Index, p.Offset)
		}
	}

	c := &Cloth{
		grid:       g,
		forces:     Forces{Gravity: opts.Gravity, WindEnabled: true},
		integrator: NewIntegrator(opts.Damping),
		solver:     NewSolver(opts.Iterations, opts.Workers),
		picker:     NewPicker(2 * opts.Spacing),
		scheduler:  NewScheduler(opts.MaxSubstep, opts.MaxAccumulated),
		opts:       opts,
	}

	log.Debug("cloth constructed",
		slog.Int("nx", opts.NX),
		slog.Int("ny", opts.NY),
		slog.Float64("spacing", opts.Spacing),
		slog.Int("triangles", len(g.triangles)/3),
		slog.Int("lines", len(g.lines)/2),
	)
	return c
}

// Step advances simulated time by delta seconds in fixed substeps and returns
// how many substeps ran. Non-finite or non-positive deltas are a no-op.
func (c *Cloth) Step(delta float64) int {
	return c.scheduler.Advance(delta, c.substep)
}

func (c *Cloth) substep(dt float64) {
	c.integrator.Step(c.grid, c.forces.Acceleration(), dt)
	c.solver.Solve(c.grid)
	c.picker.Apply(c.grid)
	c.substeps++
	c.simTime += dt
}

// SetWind replaces the wind vector and enables wind.
func (c *Cloth) SetWind(v dynamo.Vec3) {
	c.forces.Wind = v
	c.forces.WindEnabled = true
}

// SetWindVector replaces the wind vector and leaves the enabled flag alone,
// so gust modulation never turns a disabled wind back on.
func (c *Cloth) SetWindVector(v dynamo.Vec3) { c.forces.Wind = v }

// SetWindEnabled toggles the wind contribution, keeping the stored vector.
func (c *Cloth) SetWindEnabled(on bool) { c.forces.WindEnabled = on }

func (c *Cloth) Wind() dynamo.Vec3        { return c.forces.Wind }
func (c *Cloth) WindEnabled() bool        { return c.forces.WindEnabled }
func (c *Cloth) Gravity() dynamo.Vec3     { return c.forces.Gravity }
func (c *Cloth) SetGravity(g dynamo.Vec3) { c.forces.Gravity = g }

// SetPointerRay updates the interaction ray. See Picker.SetRay.
func (c *Cloth) SetPointerRay(origin, dir dynamo.Vec3, active bool) {
	c.picker.SetRay(origin, dir, active)
}

// PointerActive reports whether the pointer ray is currently active.
func (c *Cloth) PointerActive() bool { return c.picker.Active }

// Grabbed returns the held particle index and its ray parameter, or NoGrab.
func (c *Cloth) Grabbed() (int, float64) { return c.picker.Grabbed() }

// HitTestRay picks against the default threshold of twice the spacing.
func (c *Cloth) HitTestRay(origin, dir dynamo.Vec3) (Hit, bool) {
	return Pick(c.grid, origin, dir, c.picker.Threshold)
}

// HitTestRayWithin picks against an explicit threshold.
func (c *Cloth) HitTestRayWithin(origin, dir dynamo.Vec3, threshold float64) (Hit, bool) {
	return Pick(c.grid, origin, dir, threshold)
}

// PinRow pins row j, displacing it by offset. A grab on a newly pinned
// particle is released.
func (c *Cloth) PinRow(j int, offset dynamo.Vec3) {
	c.grid.PinRow(j, offset)
	c.releaseIfPinned()
}

// PinColumn pins column i, displacing it by offset.
func (c *Cloth) PinColumn(i int, offset dynamo.Vec3) {
	c.grid.PinColumn(i, offset)
	c.releaseIfPinned()
}

func (c *Cloth) releaseIfPinned() {
	if k, _ := c.picker.Grabbed(); k != NoGrab && c.grid.IsPinned(k) {
		c.picker.Release()
	}
}

// SetIterations changes the constraint sweep count (minimum 1).
func (c *Cloth) SetIterations(n int) {
	if n < 1 {
		n = 1
	}
	c.solver.Iterations = n
	c.opts.Iterations = n
}

// SetStepLimits changes the substep duration and backlog ceiling with the
// same clamping New applies. Pending backlog is trimmed to the new ceiling.
func (c *Cloth) SetStepLimits(maxSubstep, maxAccumulated float64) {
	o := c.opts
	o.MaxSubstep, o.MaxAccumulated = maxSubstep, maxAccumulated
	o, _ = o.normalize()
	c.opts = o
	c.scheduler.MaxSubstep = o.MaxSubstep
	c.scheduler.MaxAccumulated = o.MaxAccumulated
	if c.scheduler.accumulator > o.MaxAccumulated {
		c.scheduler.accumulator = o.MaxAccumulated
	}
}

// Grid exposes the particle state for read-only consumers.
func (c *Cloth) Grid() *Grid { return c.grid }

// Options returns the clamped options the cloth was built with, updated by
// the live setters.
func (c *Cloth) Options() Options {
	o := c.opts
	o.Gravity = c.forces.Gravity
	return o
}

func (c *Cloth) Positions() []float64 { return c.grid.Positions() }
func (c *Cloth) Triangles() []uint32  { return c.grid.Triangles() }
func (c *Cloth) Lines() []uint32      { return c.grid.Lines() }
func (c *Cloth) RowCount() int        { return c.grid.RowCount() }
func (c *Cloth) ColumnCount() int     { return c.grid.ColumnCount() }
func (c *Cloth) ExtentX() float64     { return c.grid.ExtentX() }
func (c *Cloth) ExtentZ() float64     { return c.grid.ExtentZ() }

// Substeps is the total number of fixed substeps executed.
func (c *Cloth) Substeps() int { return c.substeps }

// SimTime is the simulated time consumed by executed substeps.
func (c *Cloth) SimTime() float64 { return c.simTime }

// Accumulated is the simulated time carried to the next Step call.
func (c *Cloth) Accumulated() float64 { return c.scheduler.Accumulated() }
