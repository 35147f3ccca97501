package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/k8hertweck/inventory-2022/internal/query"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "inventory/0.1"
)

var queryCmd = &cobra.Command{
	Use:   "query QUERY",
	Short: "Query EuropePMC for candidate articles",
	Long: `Query runs a literature search against the EuropePMC REST API and saves
a CSV of PMIDs, titles, and abstracts plus a file recording today's date for
the next incremental run.

QUERY and --date accept either a literal value or the path of a file holding
it. The query may mark its date window with {last_date} and {today}; both
are substituted before the request.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringP("date", "d", "2011", "date of last run YYYY[-MM[-DD]] (file or string)")
	queryCmd.Flags().StringP("out-dir", "o", "out/", "output directory")
	queryCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	queryText, err := query.LoadArg(args[0])
	if err != nil {
		return err
	}
	dateArg, _ := cmd.Flags().GetString("date")
	lastDate, err := query.LoadArg(dateArg)
	if err != nil {
		return err
	}
	if err := query.ValidateDate(lastDate); err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.QueryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		OutDir: outDir,
		Email:  secretDefault("epmc-email", ""),
	}

	client := &http.Client{Timeout: cfg.Timeout}
	today := time.Now().Format("2006-01-02")

	articles, err := query.Run(context.Background(), client, queryText, lastDate, today, cfg, stageLogger())
	if err != nil {
		return err
	}

	if _, err := query.WriteResults(articles, today, outDir, os.Stdout); err != nil {
		return err
	}

	runPath := filepath.Join(outDir, "query_run.yaml")
	if err := query.WriteRunFile(runPath, queryText, lastDate, today, len(articles)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: query run record not written: %v\n", err)
	}
	return nil
}
