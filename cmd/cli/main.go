package main

import (
	"fmt"
	"os"
	"path/filepath"

	"portfolio-projection/internal/config"
	"portfolio-projection/internal/data"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/projection"
	"portfolio-projection/internal/service"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "projection",
		Short: "Monte Carlo portfolio projection",
		Long: `projection simulates many possible futures of a portfolio that starts
with an initial amount and receives a fixed monthly contribution, and
reports the P10, median and P90 value for every month of the horizon.`,
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML run config")
	rootCmd.PersistentFlags().String("profile-dir", filepath.Join("examples", "profiles"), "Directory of risk profile presets")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (error, warn, info, debug, trace)")

	rootCmd.AddCommand(
		newSimulateCmd(),
		newExpectedCmd(),
		newReportCmd(),
		newCompareCmd(),
		newPlayCmd(),
		newProfilesCmd(),
		newMCPCmd(),
	)
	return rootCmd
}

// newService wires the engine from the global flags and the optional
// config file's engine section.
func newService(cmd *cobra.Command, engineCfg config.EngineConfig, limits service.Limits) *service.Service {
	level, _ := cmd.Flags().GetString("log-level")
	profileDir, _ := cmd.Flags().GetString("profile-dir")
	logger := logging.NewLogger(level, cmd.ErrOrStderr())

	if w, err := cmd.Flags().GetInt("workers"); err == nil && cmd.Flags().Changed("workers") {
		engineCfg.Workers = w
	}
	opts := []projection.Option{
		projection.WithWorkers(engineCfg.Workers),
		projection.WithLogger(logger),
	}
	if engineCfg.PairCaching {
		opts = append(opts, projection.WithPairCaching())
	}
	return service.New(
		projection.New(opts...),
		data.NewProfileStore(profileDir, logger),
		nil,
		limits,
		logger,
	)
}
