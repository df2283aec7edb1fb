package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/napolitain/battlesim/internal/models"
)

var (
	requestFile string
	ruleset     string
	history     bool
	accuracy    bool
	maxDuration float64
)

// addOptionFlags registers the flags that override request options
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ruleset, "ruleset", "r", "", "Ruleset: flat (v1) or armor-class (v2)")
	cmd.Flags().BoolVar(&history, "history", false, "Include the per-tick history")
	cmd.Flags().BoolVar(&accuracy, "accuracy", false, "Apply ranged accuracy (armor-class only)")
	cmd.Flags().Float64Var(&maxDuration, "max-duration", 0, "Time cap in seconds (default 300)")
}

func optionFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"ruleset", "history", "accuracy", "max-duration"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyOptionFlags overlays explicitly set flags on the request options
func applyOptionFlags(cmd *cobra.Command, opts *models.Options) {
	if cmd.Flags().Changed("ruleset") {
		opts.Ruleset = models.Ruleset(ruleset)
	}
	if cmd.Flags().Changed("history") {
		opts.IncludeHistory = history
	}
	if cmd.Flags().Changed("accuracy") {
		opts.Accuracy = accuracy
	}
	if cmd.Flags().Changed("max-duration") {
		opts.MaxDuration = maxDuration
	}
}

// parseSide reads a quick "key" or "key:count" side
func parseSide(arg string) (*models.ArmySpec, error) {
	key, count, found := strings.Cut(arg, ":")
	spec := &models.ArmySpec{Unit: models.KeyRef(key)}
	if key == "" {
		return nil, fmt.Errorf("empty unit key in %q", arg)
	}
	if found {
		n, err := strconv.ParseFloat(count, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid count in %q: %w", arg, err)
		}
		spec.Count = models.NewNumber(n)
	}
	return spec, nil
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [side_a side_b]",
		Short: "Run a single matchup",
		Long: `Run a single matchup from a request file, or from two quick sides
given as unit_key[:count], e.g.

  battlesim simulate archer_fu_feudal:20 skirm_fu_feudal:15`,
		Args: cobra.MaximumNArgs(2),
		Run:  runSimulate,
	}
	cmd.Flags().StringVarP(&requestFile, "file", "f", "", "Path to a YAML or JSON simulate request")
	addOptionFlags(cmd)
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) {
	req := &models.SimulateRequest{}
	switch {
	case requestFile != "":
		var err error
		if req, err = models.LoadSimulateRequest(requestFile); err != nil {
			fail("Error loading request: %v", err)
		}
	case len(args) == 2:
		a, err := parseSide(args[0])
		if err != nil {
			fail("Invalid side_a: %v", err)
		}
		b, err := parseSide(args[1])
		if err != nil {
			fail("Invalid side_b: %v", err)
		}
		req.SideA, req.SideB = a, b
	default:
		fail("Provide a request file with -f or two sides as unit_key[:count]")
	}
	applyOptionFlags(cmd, &req.Options)

	banner("Simulate")
	out, err := svc.Simulate(req.SideA, req.SideB, req.Options)
	if err != nil {
		fail("Error: %v", err)
	}

	if asJSON {
		printJSON(out)
		return
	}
	printOutcome(out)
}
