package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/k8hertweck/inventory-2022/internal/urlcheck"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

var checkURLsCmd = &cobra.Command{
	Use:   "check-urls FILE",
	Short: "Check extracted URL statuses and Wayback snapshots",
	Long: `Check-urls verifies every URL in the extracted_url column of FILE.
Each distinct URL is probed on a worker pool with bounded retries, annotated
with its Wayback Machine snapshot if one exists, and the table is written to
the output directory regrouped to one row per article.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckURLs,
}

func init() {
	checkURLsCmd.Flags().StringP("out-dir", "o", "out/", "output directory")
	checkURLsCmd.Flags().IntP("num-tries", "n", 3, "number of tries for checking each URL")
	checkURLsCmd.Flags().IntP("wait", "w", 500, "time (ms) to wait between tries")
	checkURLsCmd.Flags().IntP("workers", "t", 0, "number of workers for parallel checking (default: all CPUs)")
	checkURLsCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 30s)")

	rootCmd.AddCommand(checkURLsCmd)
}

func runCheckURLs(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	numTries, _ := cmd.Flags().GetInt("num-tries")
	waitMs, _ := cmd.Flags().GetInt("wait")
	workers, _ := cmd.Flags().GetInt("workers")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.URLCheckConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		NumTries: numTries,
		Wait:     time.Duration(waitMs) * time.Millisecond,
		Workers:  workers,
		OutDir:   outDir,
	}

	_, err := urlcheck.RunFile(context.Background(), args[0], cfg, stageLogger(), os.Stdout)
	return err
}
