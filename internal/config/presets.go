package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/clothsim/internal/dynamo"
)

// Presets are partial configurations layered over DefaultConfig.
var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Wind = [3]float64{0, 0, 0}
		c.WindEnabled = false
		c.WindVariation = 0
	},
	"breeze": func(c *Config) {
		c.Wind = [3]float64{-6, 0, -2}
		c.WindVariation = 0.3
	},
	"gale": func(c *Config) {
		c.Wind = [3]float64{-45, 0, -10}
		c.WindVariation = 0.8
		c.ConstraintIters = 10
	},
	"curtain": func(c *Config) {
		c.NX, c.NY = 24, 32
		c.PinEdge = "left"
		c.Wind = [3]float64{0, 0, -8}
		c.WindVariation = 0.6
	},
	"hammock": func(c *Config) {
		c.PinEdge = "none"
		c.Pins = []PinConfig{
			{Line: "row", Index: 0, Offset: [3]float64{0, 0, -1}},
			{Line: "row", Index: -1, Offset: [3]float64{0, 0, 1}},
		}
		c.WindEnabled = false
		c.ConstraintIters = 12
	},
	"stiff": func(c *Config) {
		c.ConstraintIters = 30
		c.Damping = 0.99
	},
}

// GetPreset returns DefaultConfig with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
