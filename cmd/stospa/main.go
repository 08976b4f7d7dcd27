package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/BartoszBartmanski/StoSpa2/internal/automation"
	"github.com/BartoszBartmanski/StoSpa2/internal/calibrate"
	"github.com/BartoszBartmanski/StoSpa2/internal/config"
	"github.com/BartoszBartmanski/StoSpa2/internal/ensemble"
	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/export"
	"github.com/BartoszBartmanski/StoSpa2/internal/metrics"
	"github.com/BartoszBartmanski/StoSpa2/internal/scenario"
	"github.com/BartoszBartmanski/StoSpa2/internal/store"
	"github.com/BartoszBartmanski/StoSpa2/internal/tui"
)

var (
	dataDir string

	cfgFile       string
	presetName    string
	seed          int64
	dt            float64
	numSteps      int
	extrandeRatio float64
	outDir        string

	calibParam string
	calibRange string

	ensembleRuns int

	exportAt  int
	exportOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stospa",
		Short: "stochastic reaction-diffusion simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			m := tui.NewModel("")
			if _, err := tea.NewProgram(m).Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stospa", "run data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "build, advance, and store a trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&cfgFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "use a named preset")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sampling interval")
	runCmd.Flags().IntVar(&numSteps, "steps", config.DefaultNumSteps, "number of samples")
	runCmd.Flags().Float64Var(&extrandeRatio, "extrande-ratio", config.DefaultExtrandeRatio, "extrande propensity safety margin")
	runCmd.Flags().StringVar(&outDir, "out", ".", "directory to write the trajectory file into")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [scenario]",
		Short: "launch the live bubbletea view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			m := tui.NewModel(name)
			_, err := tea.NewProgram(m).Run()
			return err
		},
	}

	calibrateCmd := &cobra.Command{
		Use:   "calibrate [scenario]",
		Short: "grid search over a parameter range, minimizing total molecule count",
		Args:  cobra.ExactArgs(1),
		RunE:  calibrateScenario,
	}
	calibrateCmd.Flags().StringVar(&calibParam, "param", "", "parameter name to search")
	calibrateCmd.Flags().StringVar(&calibRange, "range", "", "lo:hi:step")
	calibrateCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	calibrateCmd.Flags().Float64Var(&dt, "end-time", 10.0, "end time to advance each candidate to")

	batchCmd := &cobra.Command{
		Use:   "batch [script.yaml]",
		Short: "run a YAML-scripted batch of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out", ".", "directory to write trajectory files into")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run independent replicate trajectories and report aggregate statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 10, "number of replicates")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 0, "first replicate's seed")
	ensembleCmd.Flags().Float64Var(&dt, "end-time", 10.0, "end time to advance each replicate to")

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a stored trajectory sample as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().IntVar(&exportAt, "at", -1, "sample index to export (default: last)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output SVG path (default: stdout)")

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a stored trajectory's species counts over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	rootCmd.AddCommand(runCmd, listCmd, presetsCmd, tuiCmd, calibrateCmd, batchCmd, ensembleCmd, exportCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadRunConfig(scenarioName string, cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	if presetName != "" {
		cfg = config.GetPreset(scenarioName, presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets(scenarioName))
		}
	} else {
		cfg = config.DefaultConfig()
		cfg.Scenario = scenarioName
	}

	if cfgFile != "" {
		fileCfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.NumSteps = numSteps
	}
	if cmd.Flags().Changed("extrande-ratio") {
		cfg.ExtrandeRatio = extrandeRatio
	}
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}

	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]

	spec, err := scenario.Get(scenarioName)
	if err != nil {
		return err
	}

	cfg, err := loadRunConfig(scenarioName, cmd)
	if err != nil {
		return err
	}

	params := spec.Defaults()
	if _, ok := spec.Params["extrande_ratio"]; ok {
		params["extrande_ratio"] = cfg.ExtrandeRatio
	}
	for k, v := range cfg.Params {
		params[k] = v
	}

	voxels, err := spec.Build(params)
	if err != nil {
		return fmt.Errorf("building %s: %w", scenarioName, err)
	}

	sim := engine.New(voxels)
	sim.SetSeed(uint64(cfg.Seed))

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	trajPath := fmt.Sprintf("%s/%s.dat", strings.TrimSuffix(outDir, "/"), scenarioName)

	fmt.Printf("running %s...\n", scenarioName)
	start := time.Now()

	clamped, err := sim.Run(trajPath, cfg.Dt, cfg.NumSteps, cfg.Header)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var speciesCount int
	if len(voxels) > 0 {
		speciesCount = len(voxels[0].Molecules())
	}

	runID, err := st.Save(store.RunMetadata{
		Scenario:     scenarioName,
		Seed:         cfg.Seed,
		VoxelCount:   len(voxels),
		SpeciesCount: speciesCount,
		Dt:           cfg.Dt,
		NumSteps:     cfg.NumSteps,
		Metrics:      map[string]float64{"clamp_events": float64(clamped)},
	}, trajPath)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", cfg.NumSteps)
	fmt.Printf("clamp events: %d\n", clamped)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSEED\tVOXELS\tSPECIES\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.VoxelCount,
			run.SpeciesCount,
			run.NumSteps,
		)
	}
	return w.Flush()
}

func parseRange(s string) (lo, hi, step float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("range must be lo:hi:step, got %q", s)
	}
	lo, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	hi, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	step, err = strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	if step <= 0 {
		return 0, 0, 0, fmt.Errorf("step must be positive, got %g", step)
	}
	return lo, hi, step, nil
}

func calibrateScenario(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]
	if calibParam == "" || calibRange == "" {
		return fmt.Errorf("--param and --range are required")
	}

	spec, err := scenario.Get(scenarioName)
	if err != nil {
		return err
	}

	lo, hi, step, err := parseRange(calibRange)
	if err != nil {
		return err
	}

	values := make([]float64, 0)
	for v := lo; v <= hi; v += step {
		values = append(values, v)
	}
	if len(values) == 0 {
		return fmt.Errorf("empty search range")
	}

	search := calibrate.NewGridSearch([]string{calibParam}, [][]float64{values})

	best, score, err := search.Search(
		context.Background(),
		spec.Defaults(),
		calibrate.BuildFunc(spec.Build),
		func() metrics.Metric { return metrics.NewTotalCount() },
		uint64(seed),
		dt,
	)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no feasible parameter combination found")
	}

	fmt.Printf("best %s = %g (total_count = %g)\n", calibParam, best[calibParam], score)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.Run(script, st, strings.TrimSuffix(outDir, "/"))
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d steps completed\n", script.Name, len(results))
	for _, r := range results {
		fmt.Printf("  %s -> run %s (clamps: %d)\n", r.Step.Scenario, r.RunID, r.Clamped)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]
	spec, err := scenario.Get(scenarioName)
	if err != nil {
		return err
	}

	params := spec.Defaults()
	fmt.Printf("running %d replicates of %s...\n", ensembleRuns, scenarioName)

	replicates, err := ensemble.Run(
		func() ([]*engine.Voxel, error) { return spec.Build(params) },
		func() []metrics.Metric { return []metrics.Metric{metrics.NewTotalCount(), metrics.NewClampEvents()} },
		ensembleRuns,
		seed,
		dt,
	)
	if err != nil {
		return err
	}

	means := ensemble.MeanMolecules(replicates)
	fmt.Printf("mean final molecule counts: %v\n", means)
	fmt.Printf("mean total_count metric: %g\n", ensemble.MeanMetric(replicates, "total_count"))
	fmt.Printf("mean clamp_events metric: %g\n", ensemble.MeanMetric(replicates, "clamp_events"))

	return nil
}

// loadTrajectory parses a stored run's space-separated trajectory file
// (an optional leading "#" header line, then "time m1 m2 ... mN" per
// sample) into parallel time and molecule-count slices.
func loadTrajectory(st *store.Store, runID string) (times []float64, records [][]int, err error) {
	traj, err := os.ReadFile(st.TrajectoryPath(runID))
	if err != nil {
		return nil, nil, err
	}

	lines := strings.Split(strings.TrimSpace(string(traj)), "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}
		fields := strings.Fields(line)
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		mols := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				continue
			}
			mols = append(mols, n)
		}
		times = append(times, t)
		records = append(records, mols)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no samples in trajectory for run %s", runID)
	}
	return times, records, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, records, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(records))

	numSpecies := len(records[0])
	for species := 0; species < numSpecies; species++ {
		data := make([]float64, len(records))
		for i, r := range records {
			if species < len(r) {
				data[i] = float64(r[species])
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("molecule slot %d vs sample index", species)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, records, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	idx := exportAt
	if idx < 0 {
		idx = len(records) - 1
	}
	if idx >= len(records) {
		return fmt.Errorf("sample index %d out of range (0..%d)", idx, len(records)-1)
	}

	canvas := tui.NewCanvas(40, 10)
	subHeight := canvas.Height * 4
	mols := records[idx]
	maxCount := 1
	for _, m := range mols {
		if m > maxCount {
			maxCount = m
		}
	}
	colWidth := (canvas.Width * 2) / max(1, len(mols))
	for i, m := range mols {
		h := m * subHeight / maxCount
		canvas.DrawVBar(i*colWidth+colWidth/2, h)
	}

	svg := export.CanvasToSVG(canvas, 6.0)

	if exportOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported %s sample %d (t=%g) to %s\n", meta.Scenario, idx, times[idx], exportOut)
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
