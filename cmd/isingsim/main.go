package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/ising"
	"github.com/san-kum/isingsim/internal/logging"
	"github.com/san-kum/isingsim/internal/storage"
	"github.com/san-kum/isingsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	size       int
	temp       float64
	coupling   float64
	boltzmann  float64
	iterations int
	burnin     int
	seed       int64
	saveConfig bool
	// Config file
	configFile string
	// Preset name
	preset string
	// Scan grid
	tMin      float64
	tMax      float64
	scanSteps int
	// Frame rate for live view
	frameRate int
	// Show the final stored lattice when plotting
	showLattice bool

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isingsim",
		Short: "2D Ising model Monte Carlo lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(os.Stderr, verbose)
			slog.SetDefault(logger)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isingsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run a simulation (metropolis or wolff)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "sweeps or cluster steps")
	runCmd.Flags().IntVar(&burnin, "burnin", config.DefaultBurnin, "iterations excluded from metrics")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().BoolVar(&saveConfig, "save-config", false, "store the lattice with every snapshot")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and magnetisation of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&showLattice, "lattice", false, "render the final stored lattice")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-12s size=%d T=%.4f iterations=%d\n", p, cfg.Size, cfg.T, cfg.Iterations)
			}
			return nil
		},
	}

	scanCmd := &cobra.Command{
		Use:   "scan [algorithm]",
		Short: "run independent simulations over a temperature grid",
		Args:  cobra.ExactArgs(1),
		RunE:  scanTemperatures,
	}
	addModelFlags(scanCmd)
	scanCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "sweeps or cluster steps per temperature")
	scanCmd.Flags().IntVar(&burnin, "burnin", config.DefaultBurnin, "iterations excluded from metrics")
	scanCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "base random seed")
	scanCmd.Flags().Float64Var(&tMin, "t-min", 1.5, "lowest temperature")
	scanCmd.Flags().Float64Var(&tMax, "t-max", 3.5, "highest temperature")
	scanCmd.Flags().IntVar(&scanSteps, "steps", 9, "number of temperatures")
	scanCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")

	liveCmd := &cobra.Command{
		Use:   "live [algorithm]",
		Short: "run a simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "benchmark an algorithm across lattice sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchAlgorithm,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, presetsCmd, scanCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "lattice dimension")
	cmd.Flags().Float64Var(&temp, "temp", config.DefaultT, "temperature T")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultJ, "coupling constant J")
	cmd.Flags().Float64Var(&boltzmann, "boltzmann", config.DefaultK, "Boltzmann constant k")
}

// resolveConfig merges preset, config file and flags. Presets replace the
// defaults, config files override presets, explicitly set flags win.
func resolveConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := &config.Config{
		Algorithm:  algorithm,
		Size:       size,
		K:          boltzmann,
		J:          coupling,
		T:          temp,
		Iterations: iterations,
		Burnin:     burnin,
		Seed:       seed,
		SaveConfig: saveConfig,
		Scan:       config.ScanConfig{TMin: tMin, TMax: tMax, Steps: scanSteps},
	}

	var base *config.Config
	if preset != "" {
		base = config.GetPreset(algorithm, preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(algorithm))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if base != nil {
			applyPresetDefaults(loaded, base)
		}
		base = loaded
	}

	if base != nil {
		flags := cmd.Flags()
		if !flags.Changed("size") {
			cfg.Size = base.Size
		}
		if !flags.Changed("temp") {
			cfg.T = base.T
		}
		if !flags.Changed("coupling") {
			cfg.J = base.J
		}
		if !flags.Changed("boltzmann") {
			cfg.K = base.K
		}
		if !flags.Changed("iterations") && base.Iterations != 0 {
			cfg.Iterations = base.Iterations
		}
		if !flags.Changed("burnin") {
			cfg.Burnin = base.Burnin
		}
		if !flags.Changed("save-config") {
			cfg.SaveConfig = base.SaveConfig
		}
		if base.Seed != 0 && !flags.Changed("seed") {
			cfg.Seed = base.Seed
		}
		if base.Scan.Steps != 0 {
			if !flags.Changed("t-min") {
				cfg.Scan.TMin = base.Scan.TMin
			}
			if !flags.Changed("t-max") {
				cfg.Scan.TMax = base.Scan.TMax
			}
			if !flags.Changed("steps") {
				cfg.Scan.Steps = base.Scan.Steps
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyPresetDefaults replaces values a config file left at their defaults
// with the preset's.
func applyPresetDefaults(dst, preset *config.Config) {
	def := config.DefaultConfig()
	if dst.Size == def.Size {
		dst.Size = preset.Size
	}
	if dst.T == def.T {
		dst.T = preset.T
	}
	if dst.Iterations == def.Iterations {
		dst.Iterations = preset.Iterations
	}
	if dst.Burnin == def.Burnin {
		dst.Burnin = preset.Burnin
	}
}

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Algorithm:  cfg.Algorithm,
		Size:       cfg.Size,
		K:          cfg.K,
		J:          cfg.J,
		T:          cfg.T,
		Iterations: cfg.Iterations,
		Burnin:     cfg.Burnin,
		Seed:       cfg.Seed,
		SaveConfig: cfg.SaveConfig,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	algorithm := args[0]

	cfg, err := resolveConfig(cmd, algorithm)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	step, err := registry.GetAlgorithm(algorithm)
	if err != nil {
		return err
	}

	exp := experiment.New(experimentConfig(cfg), logger)
	if err := exp.Setup(step, registry.DefaultMetrics(cfg.Size)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s on %dx%d lattice at T=%.4f...\n", algorithm, cfg.Size, cfg.Size, cfg.T)

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Algorithm:  algorithm,
		Seed:       cfg.Seed,
		Size:       cfg.Size,
		K:          cfg.K,
		J:          cfg.J,
		T:          cfg.T,
		Tc:         result.Tc,
		Iterations: cfg.Iterations,
		Burnin:     cfg.Burnin,
		SaveConfig: cfg.SaveConfig,
		Metrics:    result.Metrics,
	}
	runID, err := st.Save(meta, result.History)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("iterations: %d\n", len(result.History))
	fmt.Printf("Tc: %.6f (T/Tc = %.4f)\n", result.Tc, cfg.T/result.Tc)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tT\tJ\tITER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%.2f\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.T,
			run.J,
			run.Iterations,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	obs, err := st.LoadObservables(runID)
	if err != nil {
		return err
	}

	if len(obs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("samples: %d\n\n", len(obs))

	hs := make([]float64, len(obs))
	ms := make([]float64, len(obs))
	for i, o := range obs {
		hs[i] = o.H / float64(meta.Size*meta.Size)
		ms[i] = o.M
	}

	fmt.Println(viz.PlotSeries(hs, 80, 10, "energy per site"))
	fmt.Println()
	fmt.Println(viz.PlotSeries(ms, 80, 10, "magnetisation"))
	fmt.Println()

	if showLattice {
		if !meta.SaveConfig {
			return fmt.Errorf("run %s was saved without lattice configurations", runID)
		}
		configs, err := st.LoadConfigs(runID)
		if err != nil {
			return err
		}
		if len(configs) > 0 {
			fmt.Println(viz.PanelStyle.Render(viz.RenderLattice(configs[len(configs)-1])))
		}
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	obs, err := st.LoadObservables(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, obs)
}

func scanTemperatures(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	temps := cfg.Scan.Temperatures()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scanning %d temperatures in [%.3f, %.3f] with %s...\n", len(temps), cfg.Scan.TMin, cfg.Scan.TMax, cfg.Algorithm)
	start := time.Now()

	points, err := analysis.Scan(ctx, experimentConfig(cfg), temps, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tE/N\t|M|\tC\tCHI\tU4\tTAU_M")
	chi := make([]float64, len(points))
	for i, p := range points {
		chi[i] = p.Metrics["susceptibility"]
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f\n",
			p.T,
			p.Metrics["energy_per_site"],
			p.Metrics["abs_magnetisation"],
			p.Metrics["specific_heat"],
			p.Metrics["susceptibility"],
			p.Metrics["binder_cumulant"],
			p.TauM,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(chi) > 1 {
		fmt.Println()
		fmt.Println(viz.PlotSeries(chi, 60, 10, "susceptibility vs T"))
	}
	if peak, err := analysis.Peak(points, "susceptibility"); err == nil {
		fmt.Printf("\nsusceptibility peak at T=%.4f (Onsager Tc=%.4f)\n", peak.T, points[0].Tc)
	}
	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	algorithm := "wolff"
	if len(args) > 0 {
		algorithm = args[0]
	}

	registry := experiment.NewRegistry()
	order := registry.ListAlgorithms()
	algorithms := make(map[string]viz.Stepper, len(order))
	for _, name := range order {
		step, err := registry.GetAlgorithm(name)
		if err != nil {
			return err
		}
		algorithms[name] = viz.Stepper(step)
	}
	if _, ok := algorithms[algorithm]; !ok {
		return fmt.Errorf("unknown algorithm: %s (available: %s)", algorithm, strings.Join(order, ", "))
	}
	// active algorithm first
	for i, name := range order {
		if name == algorithm {
			order[0], order[i] = order[i], order[0]
		}
	}

	m, err := viz.NewModel(size, ising.Options{
		K:    boltzmann,
		J:    coupling,
		T:    temp,
		Rand: ising.NewRand(uint64(seed)),
	}, algorithms, order, frameRate)
	if err != nil {
		return err
	}

	return viz.Run(m)
}

func benchAlgorithm(cmd *cobra.Command, args []string) error {
	algorithm := args[0]

	registry := experiment.NewRegistry()
	step, err := registry.GetAlgorithm(algorithm)
	if err != nil {
		return err
	}

	sizes := []int{16, 32, 64, 128}
	temps := []float64{1.5, 2.269, 3.5}
	const iters = 100

	fmt.Printf("benchmarking %s\n\n", algorithm)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tT\tITER\tTIME\tITER/SEC\tSITES/SEC")

	for _, n := range sizes {
		for _, t := range temps {
			e, err := ising.New(n, ising.Options{T: t, Rand: ising.NewRand(42)})
			if err != nil {
				return err
			}

			start := time.Now()
			step(e, iters)
			elapsed := time.Since(start)

			perSec := float64(iters) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%.3f\t%d\t%v\t%.0f\t%.0f\n",
				n, t, iters, elapsed, perSec, perSec*float64(n*n))
		}
	}

	return w.Flush()
}
