package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/napolitain/battlesim/internal/catalog"
	"github.com/napolitain/battlesim/internal/logging"
	"github.com/napolitain/battlesim/internal/solver"
)

var (
	dataDir  string
	logLevel string
	asJSON   bool
	quiet    bool

	log *zap.Logger
	svc *solver.Service
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "battlesim",
		Short: "Age of Empires II army battle simulator",
		Long: `Simulates two armies fighting with pooled hit points and reports
the winner, remaining value and resource efficiency. Supports batches of
matchups, parameter sweeps with breakeven detection and named scenarios.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (default: embedded data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(
		newSimulateCmd(),
		newBatchCmd(),
		newSweepCmd(),
		newScenariosCmd(),
		newScenarioCmd(),
		newProductionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	log, err = logging.New(logLevel)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(dataDir)
	if err != nil {
		return err
	}
	log.Debug("catalog loaded",
		zap.String("data", dataDir),
		zap.Int("units", len(cat.Units(""))),
		zap.Int("presets", len(cat.Presets(""))),
		zap.Int("civ_units", len(cat.CivUnits("", ""))),
		zap.Int("scenarios", len(cat.Scenarios())),
	)

	svc = solver.NewService(cat, solver.Config{Workers: workers, Logger: log})
	return nil
}

// fail prints an error and exits
func fail(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
