// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/k8hertweck/inventory-2022/internal/inventory"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local inventory database (ingest, retrieve, export)",
	Long: `Store manages a local SQLite inventory built from curated article CSVs.
Use subcommands to ingest pipeline output, query articles, or export.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest FILE",
	Short: "Ingest a curated article CSV into the inventory",
	Long: `Ingest reads an article CSV (query output, classification output, or the
final URL-checked inventory) into a SQLite database with FTS5 indexing.
Articles already present are updated in place by ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.IngestFile(context.Background(), args[0], os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d article(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the inventory with full-text search and filters",
	Long: `Retrieve searches the inventory using FTS5 full-text search over titles
and abstracts, structured filters (label, article ID), or a combination
of both.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := storeQueryOpts(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --label, or --id")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []types.Article, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-60s  %-10s  %s\n",
		"ID", "Title", "Label", "URL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, a := range results {
		title := a.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		url := a.ExtractedURLs
		if len(url) > 30 {
			url = url[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-60s  %-10s  %s\n",
			a.ID, title, a.PredictedLabel, url)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the inventory to YAML or JSON",
	Long: `Export writes the full inventory (or a filtered subset) to
index/export.yaml or export.json under the inventory directory. Supports
the same filter flags as retrieve for partial exports.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := storeQueryOpts(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*inventory.Store, error) {
	inventoryDir, _ := cmd.Flags().GetString("inventory-dir")
	if inventoryDir == "" {
		inventoryDir = "inventory"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return inventory.Open(inventoryDir, maxResults)
}

func storeQueryOpts(cmd *cobra.Command, args []string) inventory.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	label, _ := cmd.Flags().GetString("label")
	id, _ := cmd.Flags().GetString("id")
	limit, _ := cmd.Flags().GetInt("limit")

	return inventory.QueryOptions{
		Query:      queryText,
		Label:      label,
		ID:         id,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("inventory-dir", "inventory", "base directory for the inventory (contains index/)")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Retrieve flags.
	storeRetrieveCmd.Flags().String("query", "", "full-text search query")
	storeRetrieveCmd.Flags().String("label", "", "filter by predicted label")
	storeRetrieveCmd.Flags().String("id", "", "filter by article ID")
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	storeExportCmd.Flags().String("label", "", "filter by predicted label for partial export")
	storeExportCmd.Flags().String("id", "", "filter by article ID for partial export")
	storeExportCmd.Flags().Int("limit", 0, "maximum articles to export (0 = all)")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
