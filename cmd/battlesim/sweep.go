package main

import (
	"github.com/spf13/cobra"

	"github.com/napolitain/battlesim/internal/models"
)

var (
	sweepTarget string
	sweepMin    float64
	sweepMax    float64
	sweepStep   float64
	listFields  bool
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Vary one field across a range and find where the winner flips",
		Long: `Vary one numeric field of one side across an inclusive range and
report the winner at each value. The breakeven is the first value whose
winner differs from the winner at the minimum.

Flags override the sweep block of the request file.`,
		Run: runSweep,
	}
	cmd.Flags().StringVarP(&requestFile, "file", "f", "", "Path to a YAML or JSON sweep request")
	cmd.Flags().StringVarP(&sweepTarget, "target", "t", "", "Field to vary, e.g. side_a.count")
	cmd.Flags().Float64Var(&sweepMin, "min", 0, "Range minimum")
	cmd.Flags().Float64Var(&sweepMax, "max", 0, "Range maximum")
	cmd.Flags().Float64Var(&sweepStep, "step", 1, "Range step")
	cmd.Flags().BoolVar(&listFields, "fields", false, "List the fields that can be swept")
	addOptionFlags(cmd)
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) {
	if listFields {
		for _, side := range models.AllSides() {
			for _, f := range models.SweepableFields() {
				cmd.Println(string(side) + "." + f)
			}
		}
		return
	}
	if requestFile == "" {
		fail("Provide a sweep request file with -f")
	}

	req, err := models.LoadSweepRequest(requestFile)
	if err != nil {
		fail("Error loading request: %v", err)
	}
	applyOptionFlags(cmd, &req.Options)
	if cmd.Flags().Changed("target") {
		req.Sweep.Target = sweepTarget
	}
	if cmd.Flags().Changed("min") {
		req.Sweep.Range.Min = sweepMin
	}
	if cmd.Flags().Changed("max") {
		req.Sweep.Range.Max = sweepMax
	}
	if cmd.Flags().Changed("step") {
		req.Sweep.Range.Step = sweepStep
	}

	banner("Sweep")
	res, err := svc.Sweep(req.SideA, req.SideB, req.Sweep, req.Options)
	if err != nil {
		fail("Error: %v", err)
	}

	if asJSON {
		printJSON(res)
		return
	}
	printSweep(res)
}
