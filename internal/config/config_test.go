package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/forcing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NX != 16 || cfg.NY != 16 {
		t.Errorf("expected 16x16, got %dx%d", cfg.NX, cfg.NY)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestResolvedSpacing(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ResolvedSpacing(); math.Abs(got-20.0/15.0) > 1e-12 {
		t.Errorf("expected spacing 20/15, got %v", got)
	}

	cfg.NY = 21
	if got := cfg.ResolvedSpacing(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected spacing from longer side 1.0, got %v", got)
	}

	cfg.Spacing = 0.25
	if got := cfg.ResolvedSpacing(); got != 0.25 {
		t.Errorf("explicit spacing should win, got %v", got)
	}
}

func TestResolvedOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spacing = 1
	cfg.NX, cfg.NY = 11, 5

	want := dynamo.V3(-5, DefaultHeight, -2)
	if got := cfg.ResolvedOrigin(); got != want {
		t.Errorf("expected centred origin %v, got %v", want, got)
	}

	cfg.Origin = &[3]float64{1, 2, 3}
	if got := cfg.ResolvedOrigin(); got != dynamo.V3(1, 2, 3) {
		t.Errorf("explicit origin should win, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nx", func(c *Config) { c.NX = 1 }},
		{"ny", func(c *Config) { c.NY = 0 }},
		{"spacing", func(c *Config) { c.Spacing = math.NaN() }},
		{"damping", func(c *Config) { c.Damping = 1.5 }},
		{"damping_one", func(c *Config) { c.Damping = 1 }},
		{"iters", func(c *Config) { c.ConstraintIters = 0 }},
		{"substep", func(c *Config) { c.MaxSubstep = 0 }},
		{"accumulated", func(c *Config) { c.MaxAccumulated = c.MaxSubstep / 2 }},
		{"variation", func(c *Config) { c.WindVariation = -0.1 }},
		{"frame_rate", func(c *Config) { c.FrameRate = 0 }},
		{"duration", func(c *Config) { c.Duration = -1 }},
		{"pin_edge", func(c *Config) { c.PinEdge = "middle" }},
		{"pin_line", func(c *Config) { c.Pins = []PinConfig{{Line: "diagonal"}} }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("%s: expected ErrParameterBounds, got %v", tt.name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")

	cfg := DefaultConfig()
	cfg.NX = 9
	cfg.Wind = [3]float64{1, 2, 3}
	cfg.Origin = &[3]float64{0, 1, 0}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.NX != 9 || loaded.Wind != cfg.Wind || *loaded.Origin != *cfg.Origin {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := saveRaw(path, "nx: 4\nny: 3\n"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.NX != 4 || cfg.NY != 3 {
		t.Errorf("expected 4x3, got %dx%d", cfg.NX, cfg.NY)
	}
	if cfg.ConstraintIters != DefaultIterations {
		t.Errorf("expected default iterations, got %d", cfg.ConstraintIters)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToOptions(t *testing.T) {
	cfg, err := GetPreset("hammock")
	if err != nil {
		t.Fatal(err)
	}
	opts := cfg.ToOptions()

	if opts.PinEdge != cloth.PinNone {
		t.Errorf("expected no edge pin, got %q", opts.PinEdge)
	}
	if len(opts.Pins) != 2 || opts.Pins[1].Index != -1 || opts.Pins[1].Line != cloth.Row {
		t.Errorf("unexpected pins %+v", opts.Pins)
	}
	if opts.Iterations != 12 {
		t.Errorf("expected 12 iterations, got %d", opts.Iterations)
	}
}

func TestBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindEnabled = false
	c := cfg.Build()

	if c.RowCount() != 16 || c.ColumnCount() != 16 {
		t.Errorf("expected 16x16 cloth, got %dx%d", c.ColumnCount(), c.RowCount())
	}
	if c.WindEnabled() {
		t.Error("wind should be disabled")
	}
	if c.Wind() != cfg.WindVector() {
		t.Errorf("expected wind %v, got %v", cfg.WindVector(), c.Wind())
	}
}

func TestNeedsRebuild(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   bool
	}{
		{"unchanged", func(c *Config) {}, false},
		{"iterations", func(c *Config) { c.ConstraintIters = 20 }, false},
		{"wind", func(c *Config) { c.Wind = [3]float64{5, 0, 0} }, false},
		{"gravity", func(c *Config) { c.Gravity = [3]float64{0, -1, 0} }, false},
		{"substep", func(c *Config) { c.MaxSubstep = 0.002 }, false},
		{"nx", func(c *Config) { c.NX = 20 }, true},
		{"size", func(c *Config) { c.Size = 5 }, true},
		{"shear", func(c *Config) { c.UseShear = false }, true},
		{"pin", func(c *Config) { c.PinEdge = "left" }, true},
		{"pins", func(c *Config) { c.Pins = []PinConfig{{Line: "row", Index: 3}} }, true},
		{"damping", func(c *Config) { c.Damping = 0.9 }, true},
	}

	for _, tt := range tests {
		next := base.Clone()
		tt.mutate(next)
		if got := NeedsRebuild(base, next); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestApplyLive(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Build()

	next := cfg.Clone()
	next.ConstraintIters = 20
	next.Gravity = [3]float64{0, -1, 0}
	next.Wind = [3]float64{3, 0, 0}
	next.WindEnabled = false
	next.MaxSubstep = 0.002
	next.WindVariation = 0.2
	gust := forcing.NewGust(cfg.WindVector(), cfg.WindVariation, 1)
	next.ApplyLive(c, gust)

	opts := c.Options()
	if opts.Iterations != 20 {
		t.Errorf("expected 20 iterations, got %d", opts.Iterations)
	}
	if opts.MaxSubstep != 0.002 {
		t.Errorf("expected substep 0.002, got %v", opts.MaxSubstep)
	}
	if c.Gravity() != dynamo.V3(0, -1, 0) {
		t.Errorf("expected gravity applied, got %v", c.Gravity())
	}
	if c.Wind() != dynamo.V3(3, 0, 0) || c.WindEnabled() {
		t.Errorf("expected wind (3,0,0) disabled, got %v enabled=%v", c.Wind(), c.WindEnabled())
	}
	if c.RowCount() != 16 {
		t.Error("topology should be untouched")
	}
	if gust.Base != dynamo.V3(3, 0, 0) || gust.Variation != 0.2 {
		t.Errorf("expected gust base (3,0,0) variation 0.2, got %v %v", gust.Base, gust.Variation)
	}

	gust.Apply(c)
	if c.WindEnabled() {
		t.Error("gust should not re-enable wind after a live apply")
	}
	if c.Wind().X <= 0 {
		t.Errorf("expected gust to follow the new base, got %v", c.Wind())
	}
}

func TestApplyLiveNilGust(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Build()
	next := cfg.Clone()
	next.ConstraintIters = 3
	next.ApplyLive(c, nil)
	if c.Options().Iterations != 3 {
		t.Errorf("expected 3 iterations, got %d", c.Options().Iterations)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("curtain")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.PinEdge != "left" {
		t.Errorf("expected left pin, got %s", cfg.PinEdge)
	}

	for _, name := range ListPresets() {
		cfg, err := GetPreset(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("nonexistent"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"breeze", "calm", "curtain", "gale", "hammock", "stiff"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestStabilityBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spacing = 1
	cfg.NX, cfg.NY = 4, 2
	cfg.Origin = &[3]float64{-3, 1, 2}
	if got := cfg.StabilityBound(); got != 43 {
		t.Errorf("expected 43, got %v", got)
	}
}
