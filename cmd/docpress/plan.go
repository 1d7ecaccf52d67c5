package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/api/docs/v1"

	"github.com/pdiddy/docpress/internal/markup"
)

var planCmd = &cobra.Command{
	Use:   "plan [files...]",
	Short: "Translate markup and print the batch update payload",
	Long: `Plan translates each file into the exact batchUpdate payload that
publish would submit, without touching credentials or the network. Use it
to inspect the request stream before publishing. With --stats it prints
translation counts instead.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Bool("stats", false, "print translation counts instead of the payload")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more markup files to plan")
	}
	statsOnly, _ := cmd.Flags().GetBool("stats")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		batch := markup.Translate(string(data))

		if statsOnly {
			if err := enc.Encode(batch.Stats); err != nil {
				return err
			}
			continue
		}

		payload := struct {
			Requests []*docs.Request `json:"requests"`
		}{Requests: batch.Requests}
		if err := enc.Encode(payload); err != nil {
			return err
		}
	}
	return nil
}
