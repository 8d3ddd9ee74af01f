package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	nx, ny    int
	iters     int
	workers   int
	duration  float64
	frameRate float64
	seed      int64
	runs      int

	metricName string
	xMetric    string
	yMetric    string
	outPath    string

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	rayOrigin []float64
	rayDir    []float64
	threshold float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "verlet cloth simulation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				dynamo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addClothFlags(runCmd)
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of seeded runs executed in parallel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded metric",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "metric to plot (default: all)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and series as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the per-frame series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportOBJCmd := &cobra.Command{
		Use:   "export-obj [run_id]",
		Short: "export the final sheet as Wavefront OBJ",
		Args:  cobra.ExactArgs(1),
		RunE:  exportOBJ,
	}
	exportOBJCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final sheet as an SVG wireframe",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "flutter frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metricName, "metric", "sag", "metric to analyze")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one metric against another",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xMetric, "x", "sag", "metric on the x axis")
	phaseCmd.Flags().StringVar(&yMetric, "y", "kinetic_energy", "metric on the y axis")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep a parameter and plot the settled range of a metric",
		Args:  cobra.NoArgs,
		RunE:  sweepRun,
	}
	addClothFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "wind", "parameter: wind, gravity, iters or damping")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 40, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")
	sweepCmd.Flags().StringVar(&metricName, "metric", "sag", "metric to record")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, name)
		},
	}
	addClothFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "windowed viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg, name)
			return nil
		},
	}
	addClothFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "preset menu in front of the terminal viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file from the defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure substeps per second across grid sizes",
		Args:  cobra.NoArgs,
		RunE:  benchCloth,
	}
	benchCmd.Flags().IntVar(&iters, "iters", config.DefaultIterations, "constraint iterations")
	benchCmd.Flags().IntVar(&workers, "workers", 1, "solver workers")

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "hit-test a ray against a freshly built cloth",
		Args:  cobra.NoArgs,
		RunE:  pickRay,
	}
	addClothFlags(pickCmd)
	pickCmd.Flags().Float64SliceVar(&rayOrigin, "origin", []float64{0, 5, 0}, "ray origin x,y,z")
	pickCmd.Flags().Float64SliceVar(&rayDir, "dir", []float64{0, -1, 0}, "ray direction x,y,z")
	pickCmd.Flags().Float64Var(&threshold, "threshold", 0, "hit distance (default: twice the spacing)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportOBJCmd, exportSVGCmd,
		analyzeCmd, phaseCmd, sweepCmd, liveCmd, guiCmd, tuiCmd, presetsCmd, initCmd, benchCmd, pickCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addClothFlags registers the flags that shape a cloth config.
func addClothFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultGridSize, "particles per row")
	cmd.Flags().IntVar(&ny, "ny", config.DefaultGridSize, "particles per column")
	cmd.Flags().IntVar(&iters, "iters", config.DefaultIterations, "constraint iterations per substep")
	cmd.Flags().IntVar(&workers, "workers", 1, "solver workers (>1 enables the parallel solver)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().Float64Var(&frameRate, "fps", config.DefaultFrameRate, "frames per second")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for gusts")
}
