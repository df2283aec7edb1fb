package main

import (
	"github.com/spf13/cobra"

	"github.com/napolitain/battlesim/internal/models"
)

var productionAt float64

func newProductionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "production",
		Short: "Show how many units a production queue has out at a given time",
		Run:   runProduction,
	}
	cmd.Flags().StringVarP(&requestFile, "file", "f", "", "Path to a YAML or JSON production request")
	cmd.Flags().Float64Var(&productionAt, "at", 0, "Time in seconds (overrides the request)")
	cmd.Flags().StringVarP(&ruleset, "ruleset", "r", "", "Ruleset: flat (v1) or armor-class (v2)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runProduction(cmd *cobra.Command, args []string) {
	req, err := models.LoadProductionRequest(requestFile)
	if err != nil {
		fail("Error loading request: %v", err)
	}
	if cmd.Flags().Changed("at") {
		req.At = productionAt
	}

	banner("Production")
	rep, err := svc.Production(*req, models.Options{Ruleset: models.Ruleset(ruleset)})
	if err != nil {
		fail("Error: %v", err)
	}

	if asJSON {
		printJSON(rep)
		return
	}
	printProduction(rep)
}
