package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chagge/hysnet/internal/analysis"
	"github.com/chagge/hysnet/internal/config"
	"github.com/chagge/hysnet/internal/hysteresis"
	"github.com/chagge/hysnet/internal/storage"
	"github.com/chagge/hysnet/internal/viz"
)

var (
	dataDir     string
	size        int
	ownWeight   float64
	neighWeight float64
	connection  string
	represent   string
	steps       int
	simTime     float64
	method      string
	collect     bool
	workers     int
	tolerance   float64
	initStates  string
	initOutputs string
	configFile  string
	preset      string
	frameRate   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hysnet",
		Short: "hysteresis oscillatory network clustering lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hysnet", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a network simulation",
		RunE:  runSimulation,
	}
	addNetworkFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of macro steps")
	runCmd.Flags().Float64Var(&simTime, "time", config.DefaultTime, "simulation horizon")
	runCmd.Flags().StringVar(&method, "method", "rk4", "integration method (rk4, fast, rkf45)")
	runCmd.Flags().BoolVar(&collect, "collect", true, "record the whole trajectory")
	runCmd.Flags().IntVar(&workers, "workers", 0, "per-step integration workers (0 = serial)")
	runCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "ensemble allocation tolerance")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	ensemblesCmd := &cobra.Command{
		Use:   "ensembles [run_id]",
		Short: "allocate synchronous ensembles from a run's final state",
		Args:  cobra.ExactArgs(1),
		RunE:  allocateEnsembles,
	}
	ensemblesCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "allocation tolerance")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a network run live",
		RunE:  runLive,
	}
	addNetworkFlags(liveCmd)
	liveCmd.Flags().Float64Var(&simTime, "dt", 0.01, "macro step per frame")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, ensemblesCmd, exportCmd, exportCSVCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "oscillator count")
	cmd.Flags().Float64Var(&ownWeight, "own-weight", hysteresis.DefaultOwnWeight, "self-feedback weight")
	cmd.Flags().Float64Var(&neighWeight, "neigh-weight", hysteresis.DefaultNeighWeight, "neighbor coupling weight")
	cmd.Flags().StringVar(&connection, "conn", "all-to-all", "connection type (all-to-all, grid-four, grid-eight, list-bidir, none)")
	cmd.Flags().StringVar(&represent, "repr", "matrix", "connection representation (matrix, list)")
	cmd.Flags().StringVar(&initStates, "init-states", "", "comma-separated initial states")
	cmd.Flags().StringVar(&initOutputs, "init-outputs", "", "comma-separated initial outputs (-1 or 1)")
}

// buildConfig resolves preset, config file and flags, in that order of
// increasing precedence (changed flags always win).
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("own-weight") {
		cfg.OwnWeight = ownWeight
	}
	if flags.Changed("neigh-weight") {
		cfg.NeighWeight = neighWeight
	}
	if flags.Changed("conn") {
		cfg.Connection = connection
	}
	if flags.Changed("repr") {
		cfg.Represent = represent
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("time") {
		cfg.Time = simTime
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("collect") {
		cfg.CollectDynamic = collect
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("init-states") {
		values, err := parseFloats(initStates)
		if err != nil {
			return nil, fmt.Errorf("init-states: %w", err)
		}
		cfg.InitStates = values
	}
	if flags.Changed("init-outputs") {
		values, err := parseFloats(initOutputs)
		if err != nil {
			return nil, fmt.Errorf("init-outputs: %w", err)
		}
		cfg.InitOutputs = values
	}

	return cfg, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	net, err := cfg.BuildNetwork()
	if err != nil {
		return err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("simulating %d oscillators over t=%.1f (%d steps)...\n", cfg.Size, cfg.Time, cfg.Steps)
	start := time.Now()

	dyn, err := net.Simulate(simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	ensembles, err := net.AllocateSyncEnsembles(cfg.Tolerance)
	if err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Size:        cfg.Size,
		OwnWeight:   cfg.OwnWeight,
		NeighWeight: cfg.NeighWeight,
		Connection:  cfg.Connection,
		Method:      cfg.Method,
		Steps:       cfg.Steps,
		Time:        cfg.Time,
		Tolerance:   cfg.Tolerance,
		Ensembles:   ensembles,
	}
	runID, err := st.Save(meta, dyn)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("snapshots: %d\n\n", dyn.Len())

	if cfg.CollectDynamic {
		for index := 0; index < cfg.Size && index < 6; index++ {
			n := analysis.CountOscillations(analysis.Column(dyn.States, index), 0.9)
			fmt.Printf("oscillator %d: %d oscillations\n", index, n)
		}
		fmt.Println()
	}

	fmt.Print(viz.RenderEnsembles(ensembles, net.States()))
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
	fmt.Fprintln(w, "ID\tSIZE\tCONN\tMETHOD\tSTEPS\tTIME\tENSEMBLES\tWHEN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%.2fs\t%d\t%s\n",
			run.ID,
			run.Size,
			run.Connection,
			run.Method,
			run.Steps,
			run.Time,
			len(run.Ensembles),
			run.Timestamp.Format("2006-01-02 15:04:05"),
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
	dyn, err := st.LoadDynamic(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("oscillators: %d\n", meta.Size)
	fmt.Printf("samples: %d\n\n", dyn.Len())

	viz.PlotDynamic(os.Stdout, dyn)
	return nil
}

func allocateEnsembles(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	dyn, err := st.LoadDynamic(runID)
	if err != nil {
		return err
	}
	if dyn.Len() == 0 {
		return fmt.Errorf("no data in run %s", runID)
	}

	_, final := dyn.Final()
	ensembles, err := hysteresis.AllocateEnsembles(final, tolerance)
	if err != nil {
		return err
	}

	fmt.Print(viz.RenderEnsembles(ensembles, final))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	dyn, err := st.LoadDynamic(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, dyn)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	data, err := os.ReadFile(filepath.Join(dataDir, runID, "dynamic.csv"))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	net, err := cfg.BuildNetwork()
	if err != nil {
		return err
	}

	dt := 0.01
	if cmd.Flags().Changed("dt") {
		dt = simTime
	}

	m := viz.NewModel(net, dt, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
