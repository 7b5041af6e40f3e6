package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/repeater-sim/repeater-sim/sim"
	"github.com/repeater-sim/repeater-sim/sim/scenario"
	"github.com/repeater-sim/repeater-sim/sim/trace"
)

var (
	// CLI flags for the simulation run
	scenarioPath string // Path to a YAML scenario spec; empty runs the built-in default
	logLevel     string // Log verbosity level
	seed         int64  // Master seed for all random streams
	numMemories  int    // Per-link memory capacity override
	targetPairs  int    // Number of long-range pairs to collect
	traceLimit   int    // Max resolution-trace records kept (0 = unlimited)
	showTrace    bool   // Record and print the event-resolution trace
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "repeater-sim",
	Short: "Discrete-event simulator for quantum-repeater chains",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the repeater chain simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec := scenario.Default()
		if scenarioPath != "" {
			spec, err = scenario.Load(scenarioPath)
			if err != nil {
				logrus.Fatalf("Unable to load scenario: %v", err)
			}
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		if cmd.Flags().Changed("num-memories") {
			spec.NumMemories = numMemories
		}
		if cmd.Flags().Changed("target-pairs") {
			spec.TargetPairs = targetPairs
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		logrus.Infof("Starting simulation: %d relay satellites, %d memories per link, target %d pairs, seed %d",
			len(spec.SatelliteArcFractions), spec.NumMemories, spec.TargetPairs, spec.Seed)

		world, protocol, err := scenario.Build(spec)
		if err != nil {
			logrus.Fatalf("Unable to build scenario: %v", err)
		}
		if err := protocol.Setup(); err != nil {
			logrus.Fatalf("Protocol setup failed: %v", err)
		}

		s := sim.NewSimulator(world, protocol)
		if showTrace {
			s.Recorder = trace.NewRecorder(traceLimit)
		}

		startTime := time.Now()
		if err := s.Run(func() bool { return protocol.Metrics.Len() >= spec.TargetPairs }); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		protocol.Metrics.Print(startTime)
		if s.Recorder != nil {
			fmt.Println(trace.Summarize(s.Recorder))
		}

		logrus.Info("Simulation complete.")
	},
}

// defaultsCmd prints the built-in scenario so users can start from it
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in scenario spec as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := yaml.Marshal(scenario.Default())
		if err != nil {
			logrus.Fatalf("Unable to marshal default scenario: %v", err)
		}
		fmt.Print(string(out))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario spec (default: built-in fourlink scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all random streams")
	runCmd.Flags().IntVar(&numMemories, "num-memories", 2, "Per-link memory capacity")
	runCmd.Flags().IntVar(&targetPairs, "target-pairs", 100, "Number of long-range pairs to collect before stopping")
	runCmd.Flags().IntVar(&traceLimit, "trace-limit", 10000, "Maximum resolution-trace records kept (0 = unlimited)")
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "Record and print the event-resolution trace summary")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}
