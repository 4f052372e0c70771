package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// errSimulationFailed is reported when the run panics.
var errSimulationFailed = errors.New("simulation failed")

// runOptions holds the CLI flags of the root command.
type runOptions struct {
	logLevel   string // Log verbosity level
	configPath string // Optional YAML overrides file
	horizon    int64  // Stop time in ticks; 0 means run to completion
	horizonSet bool   // --horizon given explicitly; wins over the config file
	reportPath string // YAML run report destination
	metricsOut string // Prometheus textfile destination
	summary    bool   // Log the trace summary at info level
}

var opts runOptions

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "warehouse-sim <input-file>",
	Short:        "Discrete-event simulator for package routing between warehouses",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyEnvDefaults(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opts
		o.horizonSet = cmd.Flags().Changed("horizon")
		return runSimulation(o, args[0], cmd.OutOrStdout())
	},
}

// runSimulation loads the scenario, applies overrides, runs it to completion and
// writes the optional outputs. The event trace goes to stdout.
func runSimulation(o runOptions, inputPath string, stdout io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Simulation aborted: %v", r)
			err = errSimulationFailed
		}
	}()

	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	sc, err := sim.LoadScenario(inputPath)
	if err != nil {
		return err
	}

	horizon := o.horizon
	if o.configPath != "" {
		cfg, err := loadRunConfig(o.configPath)
		if err != nil {
			return err
		}
		cfg.apply(sc)
		if !o.horizonSet && cfg.Horizon > 0 {
			horizon = cfg.Horizon
		}
	}

	traceLevel := trace.TraceLevelNone
	if o.summary {
		traceLevel = trace.TraceLevelMoves
	}
	s, err := sim.NewSimulator(sc, sim.SimConfig{Horizon: horizon, TraceLevel: traceLevel}, stdout)
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}

	if o.summary {
		logSummary(trace.Summarize(s.Trace))
	}
	if o.reportPath != "" {
		if err := writeReport(o.reportPath, s.Report()); err != nil {
			return err
		}
	}
	if o.metricsOut != "" {
		if err := writeMetrics(o.metricsOut, s.Metrics); err != nil {
			return err
		}
	}
	logrus.Info("Simulation complete.")
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags
func init() {
	rootCmd.Flags().StringVar(&opts.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "YAML file overriding the transport policy and horizon")
	rootCmd.Flags().Int64Var(&opts.horizon, "horizon", 0, "Stop before the first event later than this tick (0 = no limit)")
	rootCmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a YAML run report to this path")
	rootCmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "Write run metrics in the Prometheus text format to this path")
	rootCmd.Flags().BoolVar(&opts.summary, "summary", false, "Log a summary of the trace at info level")
}
