package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/spintorque/internal/config"
	"github.com/san-kum/spintorque/internal/current"
	"github.com/san-kum/spintorque/internal/diagnostics"
	"github.com/san-kum/spintorque/internal/driver"
	"github.com/san-kum/spintorque/internal/gradient"
	"github.com/san-kum/spintorque/internal/metrics"
	"github.com/san-kum/spintorque/internal/spin"
	"github.com/san-kum/spintorque/internal/storage"
	"github.com/san-kum/spintorque/internal/torque"
	"github.com/san-kum/spintorque/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	atoms      int
	ensembles  int
	steps      int
	dt         float64
	damping    float64
	spacing    float64
	turns      float64
	// diagnose parameters
	alat     float64
	spinPol  float64
	totalMom float64
	jx       float64
	jy       float64
	jz       float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spintorque",
		Short: "spin-transfer and spin-Hall torque field computation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spintorque", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute a torque history and store it",
		RunE:  runTorques,
	}
	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the torque computation in the terminal",
		RunE:  liveTorques,
	}
	for _, cmd := range []*cobra.Command{runCmd, liveCmd} {
		cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml or legacy keyword format)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		cmd.Flags().IntVar(&atoms, "atoms", 200, "number of atoms")
		cmd.Flags().IntVar(&ensembles, "ensembles", 1, "number of ensemble members")
		cmd.Flags().IntVar(&steps, "steps", 500, "number of steps")
		cmd.Flags().Float64Var(&dt, "dt", 0.05, "demo relaxation step size")
		cmd.Flags().Float64Var(&damping, "damping", 0.05, "Gilbert damping")
		cmd.Flags().Float64Var(&spacing, "spacing", 1.0, "chain lattice spacing")
		cmd.Flags().Float64Var(&turns, "turns", 2.0, "spiral winding of the initial moments")
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the torque history of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose",
		Short: "report the current density for a cell geometry",
		RunE:  diagnose,
	}
	diagnoseCmd.Flags().Float64Var(&alat, "alat", 1.0, "lattice constant in m (1 means unset)")
	diagnoseCmd.Flags().Float64Var(&spinPol, "spin-pol", 0.0, "spin polarization (0 means unset)")
	diagnoseCmd.Flags().Float64Var(&totalMom, "moment", 2.2, "total moment in Bohr magnetons")
	diagnoseCmd.Flags().Float64Var(&jx, "jx", 1.0, "current direction x")
	diagnoseCmd.Flags().Float64Var(&jy, "jy", 0.0, "current direction y")
	diagnoseCmd.Flags().Float64Var(&jz, "jz", 0.0, "current direction z")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, listCmd, exportCmd, diagnoseCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		if strings.HasSuffix(configFile, ".yaml") || strings.HasSuffix(configFile, ".yml") {
			return config.Load(configFile)
		}
		f, err := os.Open(configFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg := config.Default()
		for _, w := range config.ParseKeywords(f, cfg) {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		return cfg, nil
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see `spintorque presets`)", preset)
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("either --config or --preset is required")
}

func buildDriver() (*driver.Driver, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Active() {
		return nil, nil, fmt.Errorf("no torque term enabled (stt=disabled, do_she=false)")
	}

	field, warnings, err := current.Build(atoms, cfg)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	var grad gradient.Provider
	if cfg.STT == config.STTAdiabatic {
		grad = gradient.NewChain(spacing)
	}

	calc, err := torque.New(cfg, field, grad, atoms, ensembles)
	if err != nil {
		return nil, nil, err
	}
	calc.AddMetric(metrics.NewMaxTorque())
	calc.AddMetric(metrics.NewMeanTorque())

	drv := driver.New(calc,
		driver.SpiralMoments(atoms, ensembles, turns),
		driver.UnitMagnitudes(atoms, ensembles),
		driver.UniformDamping(atoms, damping),
		dt)
	return drv, cfg, nil
}

func runTorques(cmd *cobra.Command, args []string) error {
	drv, cfg, err := buildDriver()
	if err != nil {
		return err
	}
	defer drv.Calculator().Release()

	history := make([]storage.StepRecord, 0, steps)
	err = drv.Run(context.Background(), steps, func(step int, b *torque.Buffers) bool {
		sttMax, sttMean, sheMax := metrics.Snapshot(b)
		history = append(history, storage.StepRecord{
			Step:    step,
			STTMax:  sttMax,
			STTMean: sttMean,
			SHEMax:  sheMax,
		})
		return true
	})
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Mode:      cfg.STT.String(),
		SHE:       cfg.SHE,
		Atoms:     atoms,
		Ensembles: ensembles,
		Steps:     len(history),
		AdiBeta:   cfg.AdiBeta,
		SHEAngle:  cfg.SHEAngle,
		Metrics:   drv.Calculator().MetricValues(),
	}, history)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps, %d atoms, %d ensemble members\n", runID, len(history), atoms, ensembles)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range drv.Calculator().MetricValues() {
		fmt.Fprintf(w, "%s\t%.6g\n", name, value)
	}
	return w.Flush()
}

func liveTorques(cmd *cobra.Command, args []string) error {
	drv, _, err := buildDriver()
	if err != nil {
		return err
	}
	defer drv.Calculator().Release()

	p := tea.NewProgram(tui.NewModel(drv, steps))
	_, err = p.Run()
	return err
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	history, err := store.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(history) < 2 {
		return fmt.Errorf("run %s has no history to plot", args[0])
	}

	sttMax := make([]float64, len(history))
	sheMax := make([]float64, len(history))
	anySHE := false
	for i, rec := range history {
		sttMax[i] = rec.STTMax
		sheMax[i] = rec.SHEMax
		if rec.SHEMax != 0 {
			anySHE = true
		}
	}

	fmt.Println(asciigraph.Plot(sttMax,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("max STT torque norm"),
	))
	if anySHE {
		fmt.Println()
		fmt.Println(asciigraph.Plot(sheMax,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("max SHE torque norm"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tSHE\tATOMS\tENSEMBLES\tSTEPS\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%d\t%d\t%s\n",
			run.ID, run.Mode, run.SHE, run.Atoms, run.Ensembles, run.Steps,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func diagnose(cmd *cobra.Command, args []string) error {
	c1 := spin.Vector{1, 0, 0}
	c2 := spin.Vector{0, 1, 0}
	c3 := spin.Vector{0, 0, 1}
	jvec := spin.Vector{jx, jy, jz}

	currDen, resAlat, resPol, notes := diagnostics.CurrentDensity(
		c1, c2, c3, alat, spinPol, totalMom, jvec, diagnostics.DefaultConstants())

	for _, note := range notes {
		fmt.Fprintf(os.Stderr, "note: %s\n", note)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "lattice constant\t%.6g m\n", resAlat)
	fmt.Fprintf(w, "spin polarization\t%.6g\n", resPol)
	fmt.Fprintf(w, "current density\t(%.6g, %.6g, %.6g) A/m^2\n", currDen[0], currDen[1], currDen[2])
	return w.Flush()
}
