// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docpress/internal/history"
	"github.com/pdiddy/docpress/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously published documents",
	Long: `History lists documents recorded by publish, newest first. Filter with
--query (substring of title or source path) and cap results with --limit.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("query", "", "filter by title or source path substring")
	historyCmd.Flags().Int("limit", 0, "maximum results (0 = store default)")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	historyCmd.Flags().String("history-dir", "history", "directory for the publish history database")
	historyCmd.Flags().Int("max-results", 20, "default maximum number of results")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg := types.HistoryConfig{
		Dir:        flagOrConfig(cmd, "history-dir", "history.dir"),
		MaxResults: flagOrConfigInt(cmd, "max-results", "history.max_results"),
	}

	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	documents, err := store.List(context.Background(), history.ListOptions{Query: query, Limit: limit})
	if err != nil {
		return err
	}

	return formatHistoryOutput(documents, jsonOutput)
}

func formatHistoryOutput(documents []types.Document, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(documents)
	}

	if len(documents) == 0 {
		fmt.Println("No publications found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-16s  %-30s  %-30s  %-6s  %s\n",
		"Published", "Title", "Source", "Lines", "URL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, d := range documents {
		title := d.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		source := d.SourcePath
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-30s  %-30s  %-6d  %s\n",
			d.PublishedAt.Local().Format("2006-01-02 15:04"), title, source, d.Lines, d.URL)
	}

	fmt.Fprintf(os.Stdout, "\n%d publications\n", len(documents))
	return nil
}
