package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kmehta/boltgroup/internal/config"
	"github.com/kmehta/boltgroup/internal/icr"
	"github.com/kmehta/boltgroup/internal/store"
	"github.com/kmehta/boltgroup/internal/tui"
)

var (
	dataDir    string
	rows       int
	cols       int
	rowSpacing float64
	colSpacing float64
	ecc        float64
	rotation   float64
	configFile string
	preset     string
	showTrace  bool
	saveRun    bool
	// Eccentricity sweep bounds for the table command
	eccFrom float64
	eccTo   float64
	eccStep float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boltgroup",
		Short: "eccentric bolt group strength by the instantaneous center of rotation method",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return tui.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".boltgroup", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve one bolt group",
		RunE:  runSolve,
	}
	addPatternFlags(solveCmd)
	solveCmd.Flags().BoolVar(&showTrace, "trace", false, "plot the residual imbalance per iteration")
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run to the data directory")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "coefficient table over an eccentricity range",
		RunE:  runTable,
	}
	addPatternFlags(tableCmd)
	tableCmd.Flags().Float64Var(&eccFrom, "from", 2.0, "first eccentricity")
	tableCmd.Flags().Float64Var(&eccTo, "to", 12.0, "last eccentricity")
	tableCmd.Flags().Float64Var(&eccStep, "step", 1.0, "eccentricity step")

	compareCmd := &cobra.Command{
		Use:   "compare [preset1] [preset2] ...",
		Short: "solve several presets side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompare,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list connection presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-14s %dx%d, eccentricity %.1f\n", name,
					cfg.Pattern.Rows, cfg.Pattern.Cols, cfg.Load.Eccentricity)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's convergence trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive bolt group explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}
	addPatternFlags(tuiCmd)

	rootCmd.AddCommand(solveCmd, tableCmd, compareCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPatternFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "fastener rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "fastener columns")
	cmd.Flags().Float64Var(&rowSpacing, "row-spacing", config.DefaultRowSpacing, "spacing between rows")
	cmd.Flags().Float64Var(&colSpacing, "col-spacing", config.DefaultColSpacing, "spacing between columns")
	cmd.Flags().Float64Var(&ecc, "ecc", 6.0, "load eccentricity from the group centroid")
	cmd.Flags().Float64Var(&rotation, "rotation", 0.0, "pattern rotation relative to the load axis (degrees)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named connection preset")
}

// resolveConfig layers preset, config file, and CLI flags, with flags
// winning over the file and the file over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rows") {
		cfg.Pattern.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Pattern.Cols = cols
	}
	if cmd.Flags().Changed("row-spacing") {
		cfg.Pattern.RowSpacing = rowSpacing
	}
	if cmd.Flags().Changed("col-spacing") {
		cfg.Pattern.ColSpacing = colSpacing
	}
	if cmd.Flags().Changed("ecc") {
		cfg.Load.Eccentricity = ecc
	}
	if cmd.Flags().Changed("rotation") {
		cfg.Load.Rotation = rotation
	}

	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pattern, err := cfg.GeomPattern()
	if err != nil {
		return err
	}

	trace := make([]store.TracePoint, 0, 64)
	observe := func(iteration int, xRo, yRo, imbalance float64) {
		trace = append(trace, store.TracePoint{Iteration: iteration, XRo: xRo, YRo: yRo, Imbalance: imbalance})
	}

	fmt.Printf("solving %dx%d bolt group, eccentricity %.2f...\n",
		cfg.Pattern.Rows, cfg.Pattern.Cols, cfg.Load.Eccentricity)
	start := time.Now()
	result := icr.SolveWithOptions(pattern, cfg.LoadCase(), cfg.SolverOptions(), observe)
	elapsed := time.Since(start)

	if result.Converged {
		fmt.Printf("converged in %d iterations (%v)\n", result.Iterations, elapsed)
		fmt.Printf("group coefficient C: %.4f\n", result.Coefficient)
	} else {
		fmt.Printf("did not converge after %d iterations (%v)\n", result.Iterations, elapsed)
		fmt.Printf("this geometry cannot be certified by the IC method\n")
	}

	if showTrace && len(trace) > 1 {
		data := make([]float64, len(trace))
		for i, pt := range trace {
			data[i] = pt.Imbalance
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("force imbalance per iteration"),
		))
	}

	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result, trace)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pattern, err := cfg.GeomPattern()
	if err != nil {
		return err
	}
	if eccStep <= 0 {
		return fmt.Errorf("step must be positive, got %g", eccStep)
	}

	fmt.Printf("coefficients for %dx%d at spacing %.2f x %.2f\n\n",
		cfg.Pattern.Rows, cfg.Pattern.Cols, cfg.Pattern.RowSpacing, cfg.Pattern.ColSpacing)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ECC\tC\tITER\tSTATUS")

	opts := cfg.SolverOptions()
	for e := eccFrom; e <= eccTo+1e-9; e += eccStep {
		load := icr.Load{Eccentricity: e, Rotation: cfg.Load.Rotation}
		result := icr.SolveWithOptions(pattern, load, opts, nil)

		if result.Converged {
			fmt.Fprintf(w, "%.2f\t%.4f\t%d\tok\n", e, result.Coefficient, result.Iterations)
		} else {
			fmt.Fprintf(w, "%.2f\t-\t%d\tno convergence\n", e, result.Iterations)
		}
	}

	return w.Flush()
}

func runCompare(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPATTERN\tECC\tC\tITER\tSTATUS")

	for _, name := range args {
		cfg := config.GetPreset(name)
		if cfg == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\tunknown preset\n", name)
			continue
		}

		pattern, err := cfg.GeomPattern()
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v\n", name, err)
			continue
		}

		result := icr.SolveWithOptions(pattern, cfg.LoadCase(), cfg.SolverOptions(), nil)
		shape := fmt.Sprintf("%dx%d", cfg.Pattern.Rows, cfg.Pattern.Cols)
		if result.Converged {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.4f\t%d\tok\n",
				name, shape, cfg.Load.Eccentricity, result.Coefficient, result.Iterations)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t-\t%d\tno convergence\n",
				name, shape, cfg.Load.Eccentricity, result.Iterations)
		}
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPATTERN\tTIME\tECC\tROT\tC\tCONV\tITER")

	for _, run := range runs {
		c := "-"
		if run.Converged {
			c = fmt.Sprintf("%.4f", run.Coefficient)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%.2f\t%.0f\t%s\t%t\t%d\n",
			run.ID,
			run.Rows,
			run.Cols,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Eccentricity,
			run.Rotation,
			c,
			run.Converged,
			run.Iterations,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) < 2 {
		return fmt.Errorf("no trace to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("pattern: %dx%d, eccentricity %.2f\n", meta.Rows, meta.Cols, meta.Eccentricity)
	fmt.Printf("converged: %t in %d iterations\n\n", meta.Converged, meta.Iterations)

	data := make([]float64, len(trace))
	for i, pt := range trace {
		data[i] = pt.Imbalance
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("force imbalance per iteration"),
	))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, meta, trace)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no trace to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "x_ro", "y_ro", "imbalance"}); err != nil {
		return err
	}
	for _, pt := range trace {
		row := []string{
			strconv.Itoa(pt.Iteration),
			strconv.FormatFloat(pt.XRo, 'f', 6, 64),
			strconv.FormatFloat(pt.YRo, 'f', 6, 64),
			strconv.FormatFloat(pt.Imbalance, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
