package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/pdiddy/docpress/internal/auth"
	"github.com/pdiddy/docpress/internal/gdocs"
	"github.com/pdiddy/docpress/internal/history"
	"github.com/pdiddy/docpress/internal/httputil"
	"github.com/pdiddy/docpress/internal/publish"
	"github.com/pdiddy/docpress/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "docpress/0.1"
)

var publishCmd = &cobra.Command{
	Use:   "publish [files...]",
	Short: "Publish markup files to Google Docs",
	Long: `Publish runs the full pipeline for each source file: create a Google
Doc, translate the markup into one batch of update requests, apply it, and
record the outcome in a receipt and the history database.

Files whose exact content was already published are skipped; use --force to
publish them again. The first run opens a browser consent flow and caches
the OAuth token.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().String("title", "", "document title (single file only; default: first heading or filename)")
	publishCmd.Flags().Bool("force", false, "publish even if the content was already published")
	publishCmd.Flags().String("credentials", "credentials.json", "OAuth client secrets file")
	publishCmd.Flags().String("token", "token.json", "cached OAuth token file")
	publishCmd.Flags().Int("callback-port", 9000, "localhost port for the OAuth consent redirect")
	publishCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	publishCmd.Flags().String("receipts-dir", "receipts", "directory for publish receipts (empty disables)")
	publishCmd.Flags().String("history-dir", "history", "directory for the publish history database (empty disables)")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more markup files to publish")
	}

	title, _ := cmd.Flags().GetString("title")
	if title != "" && len(args) > 1 {
		return fmt.Errorf("--title applies to a single file; got %d files", len(args))
	}
	force, _ := cmd.Flags().GetBool("force")

	cfg := pipelineConfig(cmd)
	ctx := context.Background()

	authClient, err := auth.Client(ctx, cfg.Auth, os.Stderr)
	if err != nil {
		return err
	}
	authClient.Timeout = cfg.Publish.Timeout

	backend, err := gdocs.NewClient(ctx,
		option.WithHTTPClient(httputil.WrapClient(authClient)),
		option.WithUserAgent(cfg.Publish.UserAgent),
	)
	if err != nil {
		return err
	}

	pipeline := &publish.Pipeline{
		Backend:     backend,
		ReceiptsDir: cfg.Publish.ReceiptsDir,
	}

	if cfg.History.Dir != "" {
		store, err := history.Open(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		pipeline.Log = store
	}

	result := pipeline.Run(ctx, args, publish.Options{Title: title, Force: force}, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to publish", result.Failed)
	}
	return nil
}

// pipelineConfig assembles the pipeline configuration from flags, the
// config file, and defaults.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		Auth: types.AuthConfig{
			CredentialsFile: flagOrConfig(cmd, "credentials", "auth.credentials_file"),
			TokenFile:       flagOrConfig(cmd, "token", "auth.token_file"),
			CallbackPort:    flagOrConfigInt(cmd, "callback-port", "auth.callback_port"),
		},
		Publish: types.PublishConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   flagOrConfigDuration(cmd, "timeout", "publish.timeout"),
				UserAgent: defaultUserAgent,
			},
			ReceiptsDir: flagOrConfig(cmd, "receipts-dir", "publish.receipts_dir"),
		},
		History: types.HistoryConfig{
			Dir: flagOrConfig(cmd, "history-dir", "history.dir"),
		},
	}
}
