package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/reactortop/internal/audio"
	"github.com/google/reactortop/internal/config"
	"github.com/google/reactortop/internal/metrics"
	"github.com/google/reactortop/internal/reactor"
	"github.com/google/reactortop/internal/stress"
	"github.com/google/reactortop/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	mockMode   bool
	configFile string
	seed       int64
	sound      bool
	logFile    string

	simLoad  float64
	simTicks int
	simSeed  int64

	writePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "reactortop",
		Short:        "system monitor that runs your CPU as a nuclear reactor",
		SilenceUsage: true,
		RunE:         runMonitor,
	}
	rootCmd.Flags().BoolVar(&mockMode, "mock", false, "run with simulated host metrics")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "reactor random seed (0 = clock)")
	rootCmd.Flags().BoolVar(&sound, "sound", false, "sound a klaxon during meltdown")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write debug log to file")

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "run the reactor headless at a fixed load",
		Args:  cobra.NoArgs,
		RunE:  runSim,
	}
	simCmd.Flags().Float64Var(&simLoad, "load", 95, "cpu load fed every tick (percent)")
	simCmd.Flags().IntVar(&simTicks, "ticks", 1000, "number of ticks")
	simCmd.Flags().Int64Var(&simSeed, "seed", time.Now().UnixNano(), "random seed")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the default configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "write the default configuration to this path")

	rootCmd.AddCommand(simCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMonitor(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so logs go to a file or nowhere.
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "reactortop")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound = sound
	}

	// Initialize metrics provider
	var provider metrics.Provider
	if mockMode {
		log.Println("Starting in MOCK mode...")
		provider = &metrics.MockProvider{}
	} else {
		log.Println("Starting in REAL mode...")
		provider = &metrics.RealProvider{}
	}

	if err := provider.Init(); err != nil {
		return fmt.Errorf("init metrics provider: %w", err)
	}
	defer provider.Shutdown()

	gen := stress.New(cfg.StressWorkers)
	defer func() {
		gen.Stop()
		gen.Wait()
	}()

	opts := []ui.Option{ui.WithStressor(gen)}
	if cfg.Sound {
		klaxon := audio.NewKlaxon()
		if err := klaxon.Init(); err != nil {
			log.Printf("audio unavailable, meltdown will be silent: %v", err)
		} else {
			defer klaxon.Close()
			opts = append(opts, ui.WithAlarm(klaxon))
		}
	}

	root := ui.NewRootModel(provider, cfg, opts...)

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run reactortop: %w", err)
	}
	return nil
}

// loadConfig reads --config when given. Otherwise it searches the default
// locations and falls back to defaults on any problem.
func loadConfig() (*config.ProfileConfiguration, error) {
	if configFile != "" {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := config.LoadDefaultConfig()
	if err != nil {
		log.Printf("config: %v, using defaults", err)
	}
	return cfg, nil
}

func runSim(cmd *cobra.Command, args []string) error {
	if simTicks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", simTicks)
	}

	r := reactor.NewSeeded(simSeed)
	meltdownAt := 0
	for i := 1; i <= simTicks; i++ {
		r.Update(simLoad)
		if meltdownAt == 0 && r.Exploding() {
			meltdownAt = i
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "seed\t%d\n", simSeed)
	fmt.Fprintf(w, "ticks\t%d\n", simTicks)
	fmt.Fprintf(w, "load\t%.1f%%\n", r.Load())
	fmt.Fprintf(w, "rods withdrawn\t%.1f%%\n", r.RodPosition()*100)
	fmt.Fprintf(w, "temperature\t%.1f°C\n", r.Temperature())
	fmt.Fprintf(w, "radiation\t%.1f\n", r.Radiation())
	fmt.Fprintf(w, "coolant\t%.1f\n", r.Coolant())
	fmt.Fprintf(w, "stability\t%.1f\n", r.Stability())
	fmt.Fprintf(w, "particles\t%d\n", r.ParticleCount())
	fmt.Fprintf(w, "collisions\t%d\n", r.TotalCollisions())
	fmt.Fprintf(w, "status\t%s\n", r.Status())
	if meltdownAt > 0 {
		fmt.Fprintf(w, "meltdown\ttick %d\n", meltdownAt)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if history := r.History(); len(history) > 0 {
		graph := asciigraph.Plot(history,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.LowerBound(reactor.BaseTemperature-20),
			asciigraph.UpperBound(reactor.MaxTemperature),
			asciigraph.Caption("core temperature (°C)"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if writePath != "" {
		if err := config.SaveConfig(cfg, writePath); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("wrote %s\n", writePath)
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
