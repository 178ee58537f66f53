package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/server"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	logger     *slog.Logger
	starName   string
	centralM   float64
	x, y       float64
	vx, vy     float64
	dt         float64
	steps      int
	endTime    float64
	epsilon    float64
	t0         float64
	configFile string
	scenario   string
	particle   int
	outPath    string
	svgWidth   int
	svgHeight  int
	listenAddr string
	themeName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitsim",
		Short:         "softened two-body orbit simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimulationFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and radius of a particle",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particle, "particle", 0, "particle index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "apsides, eccentricity and period of each particle",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to the frontend JSON format",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <run_id>.json)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list star presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTAR\tPARTICLES\tDT\tSTEPS")
			for _, name := range config.ListScenarios() {
				s := config.GetScenario(name)
				star := s.Star
				if star == "" && s.CentralMass != nil {
					star = fmt.Sprintf("mass=%g", *s.CentralMass)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%d\n", name, star, len(s.Particles), s.Dt, s.Steps)
			}
			return w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario|run_id]",
		Short: "replay a scenario or saved run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8000", "listen address")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, scenariosCmd, liveCmd, serveCmd, newSweepCmd(), newResumeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&starName, "star", "sun_like", "star preset")
	cmd.Flags().Float64Var(&centralM, "mass", 1.0, "bare central mass (replaces the star)")
	cmd.Flags().Float64Var(&x, "x", 1.0, "initial x of the first particle")
	cmd.Flags().Float64Var(&y, "y", 0.0, "initial y of the first particle")
	cmd.Flags().Float64Var(&vx, "vx", 0.0, "initial vx of the first particle")
	cmd.Flags().Float64Var(&vy, "vy", 1.2, "initial vy of the first particle")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of snapshots")
	cmd.Flags().Float64Var(&endTime, "end-time", 0, "run until this time instead of a step count")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "gravitational softening")
	cmd.Flags().Float64Var(&t0, "t0", 0, "start time")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "start from a built-in scenario")
	cmd.MarkFlagsMutuallyExclusive("star", "mass")
	cmd.MarkFlagsMutuallyExclusive("steps", "end-time")
}

// resolveConfig layers scenario, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Name = "custom"
	cfg.Particles = []dynamo.Particle{{X: x, Y: y, VX: vx, VY: vy}}

	if scenario != "" {
		s := config.GetScenario(scenario)
		if s == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %v)", scenario, config.ListScenarios())
		}
		cfg = s
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cfg.Name == "" {
			cfg.Name = "config"
		}
	}

	flags := cmd.Flags()
	if flags.Changed("star") {
		cfg.Star, cfg.StarParams, cfg.CentralMass = starName, nil, nil
	}
	if flags.Changed("mass") {
		m := centralM
		cfg.Star, cfg.StarParams, cfg.CentralMass = "", nil, &m
	}
	if flags.Changed("x") || flags.Changed("y") || flags.Changed("vx") || flags.Changed("vy") {
		if len(cfg.Particles) == 0 {
			cfg.Particles = []dynamo.Particle{{}}
		}
		p := &cfg.Particles[0]
		if flags.Changed("x") {
			p.X = x
		}
		if flags.Changed("y") {
			p.Y = y
		}
		if flags.Changed("vx") {
			p.VX = vx
		}
		if flags.Changed("vy") {
			p.VY = vy
		}
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps, cfg.EndTime = steps, nil
	}
	if flags.Changed("end-time") {
		end := endTime
		cfg.EndTime = &end
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	return cfg, nil
}

func simulate(ctx context.Context, cfg *config.Config) ([]dynamo.Snapshot, map[string]float64, error) {
	simCfg, err := cfg.Simulation(config.DefaultCatalog())
	if err != nil {
		return nil, nil, err
	}
	sim, err := dynamo.New(simCfg, dynamo.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	for _, obs := range metrics.Defaults() {
		sim.AddObserver(obs)
	}

	start := time.Now()
	timeline, err := sim.Run(ctx, cfg.RunOptions())
	if err != nil {
		return timeline, sim.Metrics(), err
	}
	logger.Info("simulation finished", "scenario", cfg.Name, "snapshots", len(timeline), "elapsed", time.Since(start))
	return timeline, sim.Metrics(), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeline, results, err := simulate(ctx, cfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("simulation interrupted, saving partial timeline", "snapshots", len(timeline))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, timeline, results)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(runID, timeline, results))
	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTAR\tPARTICLES\tSTEPS\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.4f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Star.TypeName,
			run.Particles,
			run.Steps,
			run.Dt,
		)
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	catalog := config.DefaultCatalog()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS\tLUMINOSITY\tHZ INNER\tHZ OUTER\tDESCRIPTION")
	for _, name := range catalog.Names() {
		star, err := catalog.Star(name)
		if err != nil {
			return err
		}
		hz := dynamo.HabitableZoneOf(star)
		fmt.Fprintf(w, "%s\t%g\t%g\t%.3f\t%.3f\t%s\n",
			name, star.Mass, star.Luminosity, hz.Inner, hz.Outer, catalog[name].Description)
	}
	return w.Flush()
}

// resolveTheme rejects names GetTheme would silently replace.
func resolveTheme(name string) (viz.Theme, error) {
	if !slices.Contains(viz.ThemeNames(), name) {
		return viz.Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", name, viz.ThemeNames())
	}
	return viz.GetTheme(name), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	theme, err := resolveTheme(themeName)
	if err != nil {
		return err
	}

	name := "simple_orbit"
	if len(args) > 0 {
		name = args[0]
	}

	var timeline []dynamo.Snapshot
	if cfg := config.GetScenario(name); cfg != nil {
		timeline, _, err = simulate(cmd.Context(), cfg)
		if err != nil {
			return err
		}
	} else {
		timeline, err = storage.New(dataDir).LoadTimeline(name)
		if err != nil {
			return fmt.Errorf("%s is neither a scenario nor a saved run: %w", name, err)
		}
	}

	_, err = tea.NewProgram(viz.NewPlayer(name, timeline).WithTheme(theme), tea.WithAltScreen()).Run()
	return err
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           server.New(server.WithLogger(logger)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
