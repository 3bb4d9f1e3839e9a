package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/catasim/internal/automation"
	"github.com/san-kum/catasim/internal/catapult"
	"github.com/san-kum/catasim/internal/config"
	"github.com/san-kum/catasim/internal/experiment"
	"github.com/san-kum/catasim/internal/export"
	"github.com/san-kum/catasim/internal/logger"
	"github.com/san-kum/catasim/internal/optim"
	"github.com/san-kum/catasim/internal/storage"
	"github.com/san-kum/catasim/internal/viz"
)

var (
	dataDir string
	debug   bool
	// Launch parameters
	mass       float64
	projName   string
	kBand      float64
	nBands     int
	armLength  float64
	efficiency float64
	pull       float64
	angle      float64
	trials     int
	configFile string
	preset     string
	noSave     bool
	// Sweep and optimize
	fromAngle float64
	toAngle   float64
	stepAngle float64
	maxPull   float64
	gridSteps int
	// Parameter sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// SVG export
	svgOut string
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cleanup func() error

	rootCmd := &cobra.Command{
		Use:          "catasim",
		Short:        "elastic band catapult simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cleanup, _ = logger.Setup(logger.Config{Dir: dataDir, Debug: debug})
			logger.L().Debug("command.start", "cmd", cmd.Name(), "args", args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
		RunE: runTune,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", env.Debug, "verbose logging to <data>/logs/catasim.log")
	addLaunchFlags(rootCmd)

	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "simulate a single launch",
		Args:  cobra.NoArgs,
		RunE:  runLaunch,
	}
	addLaunchFlags(launchCmd)
	launchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat a launch and average the distances",
		Args:  cobra.NoArgs,
		RunE:  runTrials,
	}
	addLaunchFlags(trialsCmd)
	trialsCmd.Flags().IntVarP(&trials, "trials", "n", experiment.DefaultTrials, "number of launches")
	trialsCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "range over a span of launch angles",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addLaunchFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&fromAngle, "from", 0, "first angle (deg)")
	sweepCmd.Flags().Float64Var(&toAngle, "to", 90, "last angle (deg)")
	sweepCmd.Flags().Float64Var(&stepAngle, "step", 5, "angle step (deg)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search angle and pull for the longest range",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	addLaunchFlags(optimizeCmd)
	optimizeCmd.Flags().Float64Var(&maxPull, "max-pull", 0.05, "largest pull to consider (m)")
	optimizeCmd.Flags().IntVar(&gridSteps, "steps", 11, "grid points per parameter")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "interactive pull and angle tuner",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addLaunchFlags(tuneCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the report of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the trajectory of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROJECTILE\tMASS\tK_TOTAL\tEFF\tPULL\tANGLE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.4fkg\t%.0fN/m\t%.2f\t%.3fm\t%.1f°\n",
					name,
					p.Projectile.Name,
					p.Projectile.Mass,
					p.Bands.KBand*float64(p.Bands.NBands),
					p.Efficiency,
					p.Pull,
					p.Angle,
				)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of trial series",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	paramSweepCmd := &cobra.Command{
		Use:   "param-sweep",
		Short: "vary one setup parameter and compare ranges",
		Args:  cobra.NoArgs,
		RunE:  runParamSweep,
	}
	addLaunchFlags(paramSweepCmd)
	paramSweepCmd.Flags().StringVar(&sweepParam, "param", "pull", "parameter to vary ("+strings.Join(automation.SweepParams(), ", ")+")")
	paramSweepCmd.Flags().Float64Var(&sweepMin, "min", 0.01, "first value")
	paramSweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	paramSweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the trajectory of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(launchCmd, trialsCmd, sweepCmd, optimizeCmd, tuneCmd, listCmd, showCmd, plotCmd, exportJSONCmd, presetsCmd, scenarioCmd, paramSweepCmd, exportSVGCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.L().Error("command.failed", "err", err)
		if cleanup != nil {
			_ = cleanup()
		}
		os.Exit(1)
	}
}

func addLaunchFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.Float64Var(&mass, "mass", def.Projectile.Mass, "projectile mass (kg)")
	f.StringVar(&projName, "name", def.Projectile.Name, "projectile name")
	f.Float64Var(&kBand, "k-band", def.Bands.KBand, "stiffness per band (N/m)")
	f.IntVar(&nBands, "bands", def.Bands.NBands, "number of bands in parallel")
	f.Float64Var(&armLength, "arm", def.Arm.Length, "arm length (m)")
	f.Float64Var(&efficiency, "efficiency", def.Efficiency, "fraction of stored energy reaching the projectile")
	f.Float64Var(&pull, "pull", def.Pull, "pull distance (m)")
	f.Float64Var(&angle, "angle", def.Angle, "launch angle (deg)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("mass") {
		cfg.Projectile.Mass = mass
	}
	if flags.Changed("name") {
		cfg.Projectile.Name = projName
	}
	if flags.Changed("k-band") {
		cfg.Bands.KBand = kBand
	}
	if flags.Changed("bands") {
		cfg.Bands.NBands = nBands
	}
	if flags.Changed("arm") {
		cfg.Arm.Length = armLength
	}
	if flags.Changed("efficiency") {
		cfg.Efficiency = efficiency
	}
	if flags.Changed("pull") {
		cfg.Pull = pull
	}
	if flags.Changed("angle") {
		cfg.Angle = angle
	}
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if preset == "" && configFile == "" {
		cfg.Name = "custom"
	}

	logger.L().Debug("config.resolved",
		"name", cfg.Name,
		"mass", cfg.Projectile.Mass,
		"k_band", cfg.Bands.KBand,
		"n_bands", cfg.Bands.NBands,
		"efficiency", cfg.Efficiency,
		"pull", cfg.Pull,
		"angle", cfg.Angle,
	)
	return cfg, nil
}

func buildCatapult(cmd *cobra.Command) (*config.Config, *catapult.Catapult, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cat, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build catapult: %w", err)
	}
	return cfg, cat, nil
}

func saveRun(kind string, cfg *config.Config, cat *catapult.Catapult, report catapult.Report, summary *experiment.Summary) error {
	if noSave {
		return nil
	}

	traj, err := cat.Trajectory(cfg.Angle, 60)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Kind:       kind,
		Config:     cfg,
		Report:     report,
		Summary:    summary,
		Trajectory: traj,
	})
	if err != nil {
		return err
	}

	logger.L().Info("run.saved", "id", runID, "kind", kind, "range_m", report.RangeM)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, cat, err := buildCatapult(cmd)
	if err != nil {
		return err
	}

	report, err := cat.SimulateLaunch(cfg.Angle)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderReport(report))
	return saveRun("launch", cfg, cat, report, nil)
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, cat, err := buildCatapult(cmd)
	if err != nil {
		return err
	}

	report, err := cat.SimulateLaunch(cfg.Angle)
	if err != nil {
		return err
	}

	summary, err := experiment.New(cat).RunTrials(cfg.Angle, cfg.Trials)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderReport(report))
	fmt.Println(viz.RenderSummary(summary))
	return saveRun("trials", cfg, cat, report, summary)
}

func runSweep(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatapult(cmd)
	if err != nil {
		return err
	}

	points, err := optim.Sweep(cat, fromAngle, toAngle, stepAngle)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tRANGE\tFLIGHT\tAPEX")
	for _, p := range points {
		fmt.Fprintf(w, "%.1f°\t%.4fm\t%.4fs\t%.4fm\n", p.AngleDeg, p.RangeM, p.FlightTimeS, p.ApexHeightM)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.RangeCurve(points, 80, 12))
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	_, cat, err := buildCatapult(cmd)
	if err != nil {
		return err
	}

	bestAngle, bestPull, rng, err := optim.Best(cmd.Context(), cat, maxPull, gridSteps)
	if err != nil {
		return err
	}

	logger.L().Info("optimize.done", "angle", bestAngle, "pull", bestPull, "range_m", rng)
	fmt.Printf("best angle: %.2f°\n", bestAngle)
	fmt.Printf("best pull:  %.4f m\n", bestPull)
	fmt.Printf("range:      %.4f m\n", rng)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, cat, err := buildCatapult(cmd)
	if err != nil {
		return err
	}
	return viz.RunTuner(cat, cfg.Angle)
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
	fmt.Fprintln(w, "ID\tKIND\tTIME\tPROJECTILE\tPULL\tANGLE\tRANGE\tMEAN")

	for _, run := range runs {
		mean := "-"
		if run.Summary != nil {
			mean = fmt.Sprintf("%.3fm", run.Summary.Mean)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3fm\t%.1f°\t%.3fm\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Report.Projectile,
			run.Report.PullM,
			run.Report.AngleDeg,
			run.Report.RangeM,
			mean,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderReport(meta.Report))
	if meta.Summary != nil {
		fmt.Println(viz.RenderSummary(meta.Summary))
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("projectile: %s\n", meta.Report.Projectile)
	fmt.Printf("samples: %d\n\n", len(points))
	fmt.Println(viz.TrajectoryPlot(points, 80, 12))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(cmd.Context(), scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMASS\tK_TOTAL\tEFF\tPULL\tANGLE\tVELOCITY\tMEAN RANGE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.4fkg\t%.0fN/m\t%.2f\t%.3fm\t%.1f°\t%.3fm/s\t%.3fm\n",
			r.Label,
			r.Report.MassKg,
			r.Report.KTotal,
			r.Config.Efficiency,
			r.Report.PullM,
			r.Report.AngleDeg,
			r.Report.VelocityMS,
			r.Summary.Mean,
		)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}

	logger.L().Info("scenario.done", "name", scenario.Name, "steps", len(results))
	return err
}

func runParamSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTORED\tVELOCITY\tRANGE\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4fJ\t%.4fm/s\t%.4fm\n", r.ParamValue, r.Report.StoredJ, r.Report.VelocityMS, r.Report.RangeM)
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(points, 800, 400, "#00ff88")
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}
