package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/forcing"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

// loadConfig layers defaults, the preset, the config file and then any flags
// set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "cloth"

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, "", err
		}
		cfg = p
		name = preset
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("nx") {
		cfg.NX = nx
	}
	if flags.Changed("ny") {
		cfg.NY = ny
	}
	if flags.Changed("iters") {
		cfg.ConstraintIters = iters
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

// newSimulator builds a cloth, its gust and the standard metrics from cfg.
func newSimulator(cfg *config.Config) *sim.Simulator {
	cl := cfg.Build()
	gust := forcing.NewGust(cfg.WindVector(), cfg.WindVariation, cfg.Seed)
	s := sim.New(cl, gust)
	for _, m := range metrics.Default(cfg.StabilityBound()) {
		s.AddMetric(m)
	}
	return s
}

func runConfig(cfg *config.Config) sim.Config {
	return sim.Config{FrameRate: cfg.FrameRate, Duration: cfg.Duration, Seed: cfg.Seed}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	if runs > 1 {
		return runEnsemble(ctx, st, cfg, name)
	}

	s := newSimulator(cfg)
	fmt.Printf("running %s: %dx%d, %d iterations, %.1fs at %.0f fps\n",
		name, cfg.NX, cfg.NY, cfg.ConstraintIters, cfg.Duration, cfg.FrameRate)

	start := time.Now()
	result, runErr := s.Run(ctx, runConfig(cfg))
	elapsed := time.Since(start)
	if runErr != nil && !errors.Is(runErr, dynamo.ErrContextCanceled) {
		return runErr
	}
	if runErr != nil {
		fmt.Println("interrupted, saving partial run")
	}

	runID, err := saveRun(st, cfg, name, result, s.Cloth())
	if err != nil {
		return err
	}

	fmt.Printf("\nrun saved: %s\n", runID)
	fmt.Printf("frames: %d  substeps: %d  elapsed: %v\n", result.Frames, result.Substeps, elapsed.Round(time.Millisecond))
	printMetrics(result.Metrics)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	return nil
}

func runEnsemble(ctx context.Context, st *storage.Store, cfg *config.Config, name string) error {
	clothes := make([]*cloth.Cloth, runs)
	build := func(seed int64) (*sim.Simulator, error) {
		c := cfg.Clone()
		c.Seed = seed
		s := newSimulator(c)
		clothes[seed-cfg.Seed] = s.Cloth()
		return s, nil
	}

	fmt.Printf("running %d seeded copies of %s\n", runs, name)
	results, err := sim.NewEnsemble(build, runs, cfg.Seed).Run(ctx, runConfig(cfg))
	if err != nil && !errors.Is(err, dynamo.ErrContextCanceled) {
		return err
	}
	if err != nil {
		fmt.Println("interrupted, saving partial runs")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tRUN ID\tSAG\tMAX STRETCH")
	for i, r := range results {
		if r == nil {
			continue
		}
		c := cfg.Clone()
		c.Seed = cfg.Seed + int64(i)
		runID, err := saveRun(st, c, name, r, clothes[i])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\n", c.Seed, runID, r.Metrics["sag"], r.Metrics["max_stretch"])
	}
	return w.Flush()
}

func saveRun(st *storage.Store, cfg *config.Config, name string, result *sim.Result, cl *cloth.Cloth) (string, error) {
	meta := storage.RunMetadata{
		Name:       name,
		Seed:       cfg.Seed,
		NX:         cfg.NX,
		NY:         cfg.NY,
		Spacing:    cfg.ResolvedSpacing(),
		Iterations: cfg.ConstraintIters,
		FrameRate:  cfg.FrameRate,
		Duration:   cfg.Duration,
	}
	mesh := &storage.Mesh{
		NX:        cfg.NX,
		NY:        cfg.NY,
		Positions: result.Final,
		Triangles: cl.Triangles(),
		Lines:     cl.Lines(),
	}
	runID, err := st.Save(meta, result, mesh)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return runID, nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range metrics.Names() {
		if v, ok := m[name]; ok {
			fmt.Printf("  %-16s %.6f\n", name+":", v)
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	list, err := st.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tGRID\tFRAMES\tSAG\tTIMESTAMP")
	for _, r := range list {
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%.4f\t%s\n",
			r.ID, r.NX, r.NY, r.Frames, r.Metrics["sag"], r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tGRID\tITERS\tPIN\tWIND")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		wind := "off"
		if cfg.WindEnabled {
			wind = fmt.Sprintf("(%g, %g, %g) ±%.0f%%", cfg.Wind[0], cfg.Wind[1], cfg.Wind[2], cfg.WindVariation*100)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\t%s\n", name, cfg.NX, cfg.NY, cfg.ConstraintIters, cfg.PinEdge, wind)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return err
		}
		cfg = p
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func sweepRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 2 {
		return dynamo.BoundsError("steps", sweepSteps, ">= 2")
	}

	apply, err := sweepSetter(sweepParam)
	if err != nil {
		return err
	}
	build := func(p float64) (*sim.Simulator, error) {
		c := cfg.Clone()
		apply(c, p)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return newSimulator(c), nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := analysis.Linspace(sweepFrom, sweepTo, sweepSteps)
	fmt.Printf("sweeping %s over %d values, recording %s\n", sweepParam, len(params), metricName)
	points, err := analysis.Sweep(ctx, build, params, runConfig(cfg), metricName, cfg.Duration/2)
	if err != nil {
		return err
	}

	fmt.Println(analysis.SweepToASCII(points, 72, 20))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMIN\tMAX\tFINAL\n", strings.ToUpper(sweepParam))
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%.4f\n", p.Param, p.Min, p.Max, p.Final)
	}
	return w.Flush()
}

func sweepSetter(param string) (func(*config.Config, float64), error) {
	switch param {
	case "wind":
		return func(c *config.Config, p float64) {
			c.Wind[0] = -p
			c.WindEnabled = true
		}, nil
	case "gravity":
		return func(c *config.Config, p float64) { c.Gravity = [3]float64{0, -p, 0} }, nil
	case "iters":
		return func(c *config.Config, p float64) { c.ConstraintIters = int(math.Round(p)) }, nil
	case "damping":
		return func(c *config.Config, p float64) { c.Damping = p }, nil
	}
	return nil, fmt.Errorf("unknown sweep parameter %q (want wind, gravity, iters or damping)", param)
}

func benchCloth(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 32, 64, 128}
	const frames = 120

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPARTICLES\tSUBSTEPS\tTIME\tSUBSTEPS/SEC")
	for _, n := range sizes {
		cfg := config.DefaultConfig()
		cfg.NX, cfg.NY = n, n
		cfg.ConstraintIters = iters
		cfg.Workers = workers
		if err := cfg.Validate(); err != nil {
			return err
		}
		cl := cfg.Build()

		start := time.Now()
		steps := 0
		for i := 0; i < frames; i++ {
			steps += cl.Step(1.0 / config.DefaultFrameRate)
		}
		elapsed := time.Since(start)

		rate := float64(steps) / elapsed.Seconds()
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n", n, n, n*n, steps, elapsed.Round(time.Microsecond), rate)
	}
	return w.Flush()
}

func pickRay(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(rayOrigin) != 3 || len(rayDir) != 3 {
		return fmt.Errorf("origin and dir need three components")
	}

	cl := cfg.Build()
	origin := dynamo.V3(rayOrigin[0], rayOrigin[1], rayOrigin[2])
	dir := dynamo.V3(rayDir[0], rayDir[1], rayDir[2])

	var (
		hit cloth.Hit
		ok  bool
	)
	if threshold > 0 {
		hit, ok = cl.HitTestRayWithin(origin, dir, threshold)
	} else {
		hit, ok = cl.HitTestRay(origin, dir)
	}
	if !ok {
		fmt.Println("no hit")
		return nil
	}

	g := cl.Grid()
	p := g.Position(hit.Index)
	fmt.Printf("particle %d (column %d, row %d) at (%.4f, %.4f, %.4f)\n",
		hit.Index, hit.Index%g.ColumnCount(), hit.Index/g.ColumnCount(), p.X, p.Y, p.Z)
	fmt.Printf("ray parameter: %.4f  miss distance: %.4f\n", hit.T, hit.Distance)
	return nil
}
