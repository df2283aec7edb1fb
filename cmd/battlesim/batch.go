package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/napolitain/battlesim/internal/models"
)

var workers int

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many matchups with shared options",
		Run:   runBatch,
	}
	cmd.Flags().StringVarP(&requestFile, "file", "f", "", "Path to a YAML or JSON batch request")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent simulations (default: GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("file")
	addOptionFlags(cmd)
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) {
	req, err := models.LoadBatchRequest(requestFile)
	if err != nil {
		fail("Error loading request: %v", err)
	}
	applyOptionFlags(cmd, &req.Options)

	// unnamed matchups get an id so table rows and logs can be matched up
	for i := range req.Matchups {
		if req.Matchups[i].ID == "" {
			req.Matchups[i].ID = uuid.NewString()[:8]
		}
	}

	banner("Batch")
	results, err := svc.Batch(req.Matchups, req.Options)
	if err != nil {
		fail("Error: %v", err)
	}

	if asJSON {
		printJSON(results)
		return
	}
	printBatch(results)
}
