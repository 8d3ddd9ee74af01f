package sim

import "github.com/san-kum/clothsim/internal/cloth"

// Metric observes a cloth once per frame.
type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, t float64)
	Current() float64
	Value() float64
	Reset()
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(c *cloth.Cloth, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(c *cloth.Cloth, t float64)

func (f ObserverFunc) OnFrame(c *cloth.Cloth, t float64) { f(c, t) }

// Config drives a headless run: Duration seconds of frames delivered at
// FrameRate, each frame handing 1/FrameRate seconds to Cloth.Step.
type Config struct {
	FrameRate float64
	Duration  float64
	Seed      int64
}

func DefaultConfig() Config {
	return Config{
		FrameRate: 60,
		Duration:  10,
	}
}

// Result holds the per-frame samples of a run.
type Result struct {
	Times    []float64
	Series   map[string][]float64
	Metrics  map[string]float64
	Frames   int
	Substeps int
	Final    []float64
	Errors   []error
}
