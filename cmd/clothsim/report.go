package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
)

const (
	plotWidth  = 72
	plotHeight = 15
)

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(series))
	if metricName != "" {
		if _, ok := series[metricName]; !ok {
			return fmt.Errorf("run %s has no metric %q", args[0], metricName)
		}
		names = append(names, metricName)
	} else {
		for name := range series {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	fmt.Printf("run: %s  (%dx%d, %.1fs, %d frames)\n\n", meta.ID, meta.NX, meta.NY, times[len(times)-1], meta.Frames)
	for _, name := range names {
		data := downsample(series[name], plotWidth)
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}
	return nil
}

// downsample picks at most n evenly spaced samples.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(float64(i)*step+0.5)]
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, storage.ExportData{Meta: meta, Times: times, Series: series})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.SeriesPath(args[0]))
	if err != nil {
		return fmt.Errorf("open series: %w", err)
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}

// output returns stdout or the file named by --out.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportOBJ(cmd *cobra.Command, args []string) error {
	mesh, err := storage.New(dataDir).LoadMesh(args[0])
	if err != nil {
		return err
	}
	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportOBJ(w, mesh.Positions, mesh.Triangles); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	mesh, err := storage.New(dataDir).LoadMesh(args[0])
	if err != nil {
		return err
	}
	if !dynamo.Finite(mesh.Positions) {
		return fmt.Errorf("export svg: %w", dynamo.ErrInvalidState)
	}

	w, err := output()
	if err != nil {
		return err
	}
	svg := viz.WireframeToSVG(meshCamera(mesh.Positions), mesh.Positions, mesh.Lines, 800, 600, "#33415c")
	if _, err := io.WriteString(w, svg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// meshCamera frames the bounding box of positions.
func meshCamera(positions []float64) *viz.Camera {
	lo := dynamo.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := dynamo.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i+2 < len(positions); i += 3 {
		lo = dynamo.V3(math.Min(lo.X, positions[i]), math.Min(lo.Y, positions[i+1]), math.Min(lo.Z, positions[i+2]))
		hi = dynamo.V3(math.Max(hi.X, positions[i]), math.Max(hi.Y, positions[i+1]), math.Max(hi.Z, positions[i+2]))
	}
	span := hi.Sub(lo).Length()
	return viz.NewCamera(lo.Add(hi).Scale(0.5), 1.6*math.Max(span, 1e-3))
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	data, ok := series[metricName]
	if !ok {
		return fmt.Errorf("run %s has no metric %q", args[0], metricName)
	}

	freq, power, err := analysis.DominantFrequency(data, meta.FrameRate)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("metric: %s  samples: %d  rate: %.0f Hz\n", metricName, len(data), meta.FrameRate)
	fmt.Printf("dominant frequency: %.3f Hz (period %.3fs, power %.4g)\n\n", freq, 1/freq, power)

	spectrum := analysis.PowerSpectrum(data)
	fmt.Println(asciigraph.Plot(downsample(spectrum, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("power spectrum of %s (0 to %.0f Hz)", metricName, meta.FrameRate/2)),
	))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, series, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}
	for _, name := range []string{xMetric, yMetric} {
		if _, ok := series[name]; !ok {
			return fmt.Errorf("run %s has no metric %q", args[0], name)
		}
	}
	portrait, err := analysis.NewPhasePortrait(xMetric, series[xMetric], yMetric, series[yMetric])
	if err != nil {
		return err
	}
	fmt.Println(analysis.PhasePortraitToASCII(portrait, plotWidth, 24))
	return nil
}
