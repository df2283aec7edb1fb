package main

import (
	"github.com/spf13/cobra"

	"github.com/napolitain/battlesim/internal/models"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List named scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			list := svc.ListScenarios()
			if asJSON {
				printJSON(map[string]any{"scenarios": list})
				return
			}
			banner("Scenarios")
			printScenarios(list)
		},
	}
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <id>",
		Short: "Run a named scenario, optionally patched",
		Long: `Run a named scenario. A patch file may override fields of either side
(merged over the scenario) and replace the options.`,
		Args: cobra.ExactArgs(1),
		Run:  runScenario,
	}
	cmd.Flags().StringVarP(&requestFile, "file", "f", "", "Path to a YAML or JSON scenario patch")
	addOptionFlags(cmd)
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) {
	patch := &models.ScenarioPatch{}
	if requestFile != "" {
		var err error
		if patch, err = models.LoadScenarioPatch(requestFile); err != nil {
			fail("Error loading patch: %v", err)
		}
	}
	if optionFlagsChanged(cmd) && patch.Options == nil {
		patch.Options = &models.Options{}
	}
	if patch.Options != nil {
		applyOptionFlags(cmd, patch.Options)
	}

	banner("Scenario " + args[0])
	out, err := svc.RunScenario(args[0], patch)
	if err != nil {
		fail("Error: %v", err)
	}

	if asJSON {
		printJSON(out)
		return
	}
	printOutcome(out)
}
