package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/forcing"
)

const (
	DefaultGridSize      = 16
	DefaultSize          = 20.0
	DefaultHeight        = 0.7
	DefaultIterations    = 6
	DefaultGravity       = 9.8
	DefaultWindX         = -20.0
	DefaultWindVariation = 0.5
	DefaultFrameRate     = 60.0
	DefaultDuration      = 10.0
)

type Config struct {
	NX              int         `yaml:"nx"`
	NY              int         `yaml:"ny"`
	Size            float64     `yaml:"size,omitempty"`
	Spacing         float64     `yaml:"spacing,omitempty"`
	Origin          *[3]float64 `yaml:"origin,omitempty"`
	Gravity         [3]float64  `yaml:"gravity,flow"`
	Damping         float64     `yaml:"damping"`
	ConstraintIters int         `yaml:"constraint_iters"`
	UseShear        bool        `yaml:"use_shear"`
	PinEdge         string      `yaml:"pin_edge"`
	Pins            []PinConfig `yaml:"pins,omitempty"`
	MaxSubstep      float64     `yaml:"max_substep"`
	MaxAccumulated  float64     `yaml:"max_accumulated"`
	Wind            [3]float64  `yaml:"wind,flow"`
	WindEnabled     bool        `yaml:"wind_enabled"`
	WindVariation   float64     `yaml:"wind_variation"`
	Workers         int         `yaml:"workers,omitempty"`
	Seed            int64       `yaml:"seed"`
	FrameRate       float64     `yaml:"frame_rate"`
	Duration        float64     `yaml:"duration"`
}

// PinConfig pins an extra row or column after the edge pin.
type PinConfig struct {
	Line   string     `yaml:"line"`
	Index  int        `yaml:"index"`
	Offset [3]float64 `yaml:"offset,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		NX:              DefaultGridSize,
		NY:              DefaultGridSize,
		Size:            DefaultSize,
		Gravity:         [3]float64{0, -DefaultGravity, 0},
		Damping:         cloth.DefaultDamping,
		ConstraintIters: DefaultIterations,
		UseShear:        true,
		PinEdge:         string(cloth.PinTop),
		MaxSubstep:      cloth.DefaultMaxSubstep,
		MaxAccumulated:  cloth.DefaultMaxAccumulated,
		Wind:            [3]float64{DefaultWindX, 0, 0},
		WindEnabled:     true,
		WindVariation:   DefaultWindVariation,
		Workers:         1,
		FrameRate:       DefaultFrameRate,
		Duration:        DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Origin != nil {
		o := *c.Origin
		out.Origin = &o
	}
	out.Pins = append([]PinConfig(nil), c.Pins...)
	return &out
}

// Validate reports the first out-of-range field. Cloth construction clamps
// instead, so this is only for callers that prefer an error.
func (c *Config) Validate() error {
	switch {
	case c.NX < cloth.MinGridSize:
		return dynamo.BoundsError("nx", c.NX, ">= 2")
	case c.NY < cloth.MinGridSize:
		return dynamo.BoundsError("ny", c.NY, ">= 2")
	case c.Spacing < 0 || math.IsNaN(c.Spacing) || math.IsInf(c.Spacing, 0):
		return dynamo.BoundsError("spacing", c.Spacing, "finite and >= 0")
	case c.Size < 0 || math.IsNaN(c.Size) || math.IsInf(c.Size, 0):
		return dynamo.BoundsError("size", c.Size, "finite and >= 0")
	case !(c.Damping >= 0 && c.Damping < 1):
		return dynamo.BoundsError("damping", c.Damping, "in [0, 1)")
	case c.ConstraintIters < 1:
		return dynamo.BoundsError("constraint_iters", c.ConstraintIters, ">= 1")
	case !(c.MaxSubstep >= cloth.MinSubstep):
		return dynamo.BoundsError("max_substep", c.MaxSubstep, fmt.Sprintf(">= %g", cloth.MinSubstep))
	case !(c.MaxAccumulated >= c.MaxSubstep):
		return dynamo.BoundsError("max_accumulated", c.MaxAccumulated, ">= max_substep")
	case !(c.WindVariation >= 0 && c.WindVariation <= 1):
		return dynamo.BoundsError("wind_variation", c.WindVariation, "in [0, 1]")
	case c.Workers < 0:
		return dynamo.BoundsError("workers", c.Workers, ">= 0")
	case !(c.FrameRate > 0):
		return dynamo.BoundsError("frame_rate", c.FrameRate, "> 0")
	case !(c.Duration > 0):
		return dynamo.BoundsError("duration", c.Duration, "> 0")
	}

	switch cloth.PinEdge(c.PinEdge) {
	case cloth.PinTop, cloth.PinBottom, cloth.PinLeft, cloth.PinRight, cloth.PinNone, "":
	default:
		return dynamo.BoundsError("pin_edge", c.PinEdge, "top, bottom, left, right or none")
	}
	for i, p := range c.Pins {
		switch cloth.Line(p.Line) {
		case cloth.Row, cloth.Column:
		default:
			return dynamo.BoundsError(fmt.Sprintf("pins[%d].line", i), p.Line, "row or column")
		}
	}
	return nil
}

// ResolvedSpacing is Spacing when set, otherwise Size spread over the longer
// side of the grid.
func (c *Config) ResolvedSpacing() float64 {
	if c.Spacing > 0 {
		return c.Spacing
	}
	longest := max(c.NX, c.NY)
	if c.Size > 0 && longest > 1 {
		return c.Size / float64(longest-1)
	}
	return cloth.DefaultSpacing
}

// ResolvedOrigin is Origin when set, otherwise the corner that centres the
// sheet horizontally at DefaultHeight.
func (c *Config) ResolvedOrigin() dynamo.Vec3 {
	if c.Origin != nil {
		return dynamo.FromArray(*c.Origin)
	}
	s := c.ResolvedSpacing()
	extentX := float64(max(c.NX-1, 0)) * s
	extentZ := float64(max(c.NY-1, 0)) * s
	return dynamo.V3(-extentX/2, DefaultHeight, -extentZ/2)
}

func (c *Config) WindVector() dynamo.Vec3 { return dynamo.FromArray(c.Wind) }

func (c *Config) ToOptions() cloth.Options {
	pins := make([]cloth.Pin, len(c.Pins))
	for i, p := range c.Pins {
		pins[i] = cloth.Pin{
			Line:   cloth.Line(p.Line),
			Index:  p.Index,
			Offset: dynamo.FromArray(p.Offset),
		}
	}
	return cloth.Options{
		NX:             c.NX,
		NY:             c.NY,
		Spacing:        c.ResolvedSpacing(),
		Origin:         c.ResolvedOrigin(),
		Gravity:        dynamo.FromArray(c.Gravity),
		Damping:        c.Damping,
		Iterations:     c.ConstraintIters,
		UseShear:       c.UseShear,
		PinEdge:        cloth.PinEdge(c.PinEdge),
		Pins:           pins,
		MaxSubstep:     c.MaxSubstep,
		MaxAccumulated: c.MaxAccumulated,
		Workers:        c.Workers,
	}
}

// Build constructs a cloth with the configured wind applied.
func (c *Config) Build() *cloth.Cloth {
	cl := cloth.New(c.ToOptions())
	cl.SetWind(c.WindVector())
	cl.SetWindEnabled(c.WindEnabled)
	return cl
}

// NeedsRebuild reports whether moving from a to b changes the sheet's
// topology or rest geometry, which a live cloth cannot absorb.
func NeedsRebuild(a, b *Config) bool {
	if a.NX != b.NX || a.NY != b.NY {
		return true
	}
	if a.ResolvedSpacing() != b.ResolvedSpacing() || a.ResolvedOrigin() != b.ResolvedOrigin() {
		return true
	}
	if a.PinEdge != b.PinEdge || a.UseShear != b.UseShear || a.Workers != b.Workers || a.Damping != b.Damping {
		return true
	}
	if len(a.Pins) != len(b.Pins) {
		return true
	}
	for i := range a.Pins {
		if a.Pins[i] != b.Pins[i] {
			return true
		}
	}
	return false
}

// ApplyLive pushes the settings that do not affect topology into an existing
// cloth and the gust driving it. Damping is fixed at construction and needs a
// rebuild to change. gust may be nil.
func (c *Config) ApplyLive(cl *cloth.Cloth, gust *forcing.Gust) {
	cl.SetIterations(c.ConstraintIters)
	cl.SetStepLimits(c.MaxSubstep, c.MaxAccumulated)
	cl.SetGravity(dynamo.FromArray(c.Gravity))
	cl.SetWind(c.WindVector())
	cl.SetWindEnabled(c.WindEnabled)
	if gust != nil {
		gust.SetBase(c.WindVector())
		gust.SetVariation(c.WindVariation)
	}
}

// StabilityBound is the coordinate magnitude past which a sheet is
// considered to have blown up: ten sheet lengths beyond its origin.
func (c *Config) StabilityBound() float64 {
	o := c.ResolvedOrigin()
	extent := c.ResolvedSpacing() * float64(max(c.NX, c.NY))
	return 10*extent + max(math.Abs(o.X), math.Abs(o.Y), math.Abs(o.Z))
}
