package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/clothsim/internal/sim"
)

// SweepPoint is the settled range of one metric at one parameter value.
type SweepPoint struct {
	Param    float64
	Min, Max float64
	Final    float64
}

// Builder constructs a fresh simulator for a parameter value.
type Builder func(param float64) (*sim.Simulator, error)

// Sweep runs one simulation per parameter value and records the range of
// metric over the samples after transient seconds.
func Sweep(ctx context.Context, build Builder, params []float64, cfg sim.Config, metric string, transient float64) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(params))

	for _, p := range params {
		s, err := build(p)
		if err != nil {
			return points, fmt.Errorf("sweep %s=%g: %w", metric, p, err)
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return points, fmt.Errorf("sweep %s=%g: %w", metric, p, err)
		}

		series, ok := result.Series[metric]
		if !ok {
			return points, fmt.Errorf("sweep: unknown metric %q", metric)
		}

		pt := SweepPoint{Param: p, Min: math.Inf(1), Max: math.Inf(-1), Final: result.Metrics[metric]}
		for i, v := range series {
			if result.Times[i] < transient {
				continue
			}
			pt.Min = math.Min(pt.Min, v)
			pt.Max = math.Max(pt.Max, v)
		}
		if math.IsInf(pt.Min, 1) {
			pt.Min, pt.Max = pt.Final, pt.Final
		}
		points = append(points, pt)
	}

	return points, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// SweepToASCII draws each point's [Min, Max] range as a vertical bar.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := data[0].Min, data[0].Max
	for _, p := range data {
		minVal = math.Min(minVal, p.Min)
		maxVal = math.Max(maxVal, p.Max)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	rowOf := func(v float64) int {
		return height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for row := rowOf(p.Max); row <= rowOf(p.Min); row++ {
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
