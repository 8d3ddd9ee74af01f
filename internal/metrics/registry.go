package metrics

import "github.com/san-kum/clothsim/internal/sim"

// Default returns a fresh set of the standard cloth metrics. Positions
// beyond bound count as unstable.
func Default(bound float64) []sim.Metric {
	return []sim.Metric{
		NewSag(),
		NewMaxStretch(),
		NewKineticEnergy(),
		NewStability(bound),
		NewSubsteps(),
	}
}

// Names lists the metric names Default produces, in order.
func Names() []string {
	ms := Default(1)
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}
