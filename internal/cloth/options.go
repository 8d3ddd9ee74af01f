package cloth

import (
	"math"

	"github.com/san-kum/clothsim/internal/dynamo"
)

const (
	DefaultNX             = 256
	DefaultNY             = 256
	DefaultSpacing        = 0.01
	DefaultDamping        = 0.995
	DefaultIterations     = 6
	DefaultMaxSubstep     = 1.0 / 120.0
	DefaultMaxAccumulated = 0.25

	// MaxDamping is the ceiling damping is clamped to; damping lies in [0, 1).
	MaxDamping = 0.9999

	// MinGridSize is the smallest row/column count a grid is clamped to.
	MinGridSize = 2
	// MinSubstep is the floor applied to the substep duration.
	MinSubstep = 1e-4
)

// PinEdge selects which border of the sheet is pinned at construction.
type PinEdge string

const (
	PinTop    PinEdge = "top"
	PinBottom PinEdge = "bottom"
	PinLeft   PinEdge = "left"
	PinRight  PinEdge = "right"
	PinNone   PinEdge = "none"
)

// Line selects a grid row or column for explicit pinning.
type Line string

const (
	Row    Line = "row"
	Column Line = "column"
)

// Pin is an explicit pin applied after the edge pin. A negative Index counts
// from the far side (-1 is the last row or column). Offset displaces the pinned
// particles' rest position, which pre-tensions the sheet when two opposite
// lines are pinned apart.
type Pin struct {
	Line   Line
	Index  int
	Offset dynamo.Vec3
}

// Options configures a Cloth. Values outside their valid range are clamped
// by New rather than rejected.
type Options struct {
	NX, NY         int
	Spacing        float64
	Origin         dynamo.Vec3
	Gravity        dynamo.Vec3
	Damping        float64
	Iterations     int
	UseShear       bool
	PinEdge        PinEdge
	Pins           []Pin
	MaxSubstep     float64
	MaxAccumulated float64

	// Workers > 1 runs constraint sweeps over checkerboard colour classes in
	// parallel. The default of 1 keeps the sequential row-major order.
	Workers int
}

// DefaultOptions returns a 256x256 sheet of 1 cm spacing roughly centred on
// the origin with its top edge pinned.
func DefaultOptions() Options {
	return Options{
		NX:             DefaultNX,
		NY:             DefaultNY,
		Spacing:        DefaultSpacing,
		Origin:         dynamo.V3(-1.28, 0, -1.28),
		Gravity:        dynamo.V3(0, -9.8, 0),
		Damping:        DefaultDamping,
		Iterations:     DefaultIterations,
		UseShear:       true,
		PinEdge:        PinTop,
		MaxSubstep:     DefaultMaxSubstep,
		MaxAccumulated: DefaultMaxAccumulated,
		Workers:        1,
	}
}

// normalize clamps every field into its valid range and reports the names of
// fields that had to change.
func (o Options) normalize() (Options, []string) {
	var clamped []string
	if o.NX < MinGridSize {
		o.NX = MinGridSize
		clamped = append(clamped, "nx")
	}
	if o.NY < MinGridSize {
		o.NY = MinGridSize
		clamped = append(clamped, "ny")
	}
	if !(o.Spacing > 0) || math.IsInf(o.Spacing, 0) {
		o.Spacing = DefaultSpacing
		clamped = append(clamped, "spacing")
	}
	if math.IsNaN(o.Damping) || o.Damping < 0 {
		o.Damping = 0
		clamped = append(clamped, "damping")
	} else if o.Damping >= 1 {
		o.Damping = MaxDamping
		clamped = append(clamped, "damping")
	}
	if o.Iterations < 1 {
		o.Iterations = 1
		clamped = append(clamped, "iterations")
	}
	if math.IsNaN(o.MaxSubstep) || o.MaxSubstep < MinSubstep {
		o.MaxSubstep = MinSubstep
		clamped = append(clamped, "max_substep")
	}
	if math.IsNaN(o.MaxAccumulated) || o.MaxAccumulated < o.MaxSubstep {
		o.MaxAccumulated = o.MaxSubstep
		clamped = append(clamped, "max_accumulated")
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.PinEdge == "" {
		o.PinEdge = PinTop
	}
	return o, clamped
}
