// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package urlcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/k8hertweck/inventory-2022/internal/table"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

// Column names the checking stage consumes and produces.
const (
	ColID      = "ID"
	ColText    = "text"
	ColURL     = "extracted_url"
	ColStatus  = "extracted_url_status"
	ColWayback = "wayback_url"
)

// Run checks every URL in the input table and returns the annotated,
// regrouped table: expand to one row per URL, probe each distinct URL on the
// worker pool, look up Wayback snapshots, then collapse back to one row per
// (ID, text) group with the three URL columns delimiter-joined.
//
// The schema is validated before any network activity; a missing column
// fails the run naming the file and the column. A Wayback lookup error is
// fatal (see Wayback.Lookup); probe failures are not errors but statuses.
func Run(ctx context.Context, t table.Table, file string, cfg types.URLCheckConfig, logger *zap.Logger, w io.Writer) (table.Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := t.RequireColumns(file, ColID, ColText, ColURL); err != nil {
		return table.Table{}, err
	}

	logger.Debug("expanding URL column, one row per URL")
	expanded, err := table.ExpandURLs(t, ColURL)
	if err != nil {
		return table.Table{}, err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	prober := &Prober{Client: client, UserAgent: cfg.UserAgent}
	checker, err := NewChecker(prober, cfg.NumTries, cfg.Wait, logger)
	if err != nil {
		return table.Table{}, err
	}

	urls := expanded.Column(ColURL)

	logger.Debug("checking extracted URL statuses",
		zap.Int("max_attempts", cfg.NumTries),
		zap.Duration("wait", cfg.Wait),
		zap.Int("workers", cfg.Workers))

	statuses, err := fanOut(ctx, urls, cfg.Workers,
		func(ctx context.Context, u string) (string, error) {
			return checker.Check(ctx, u).Outcome.String(), nil
		})
	if err != nil {
		return table.Table{}, err
	}
	if err := expanded.MapColumn(ColURL, ColStatus, statuses); err != nil {
		return table.Table{}, err
	}
	logger.Debug("finished checking extracted URLs")

	logger.Debug("checking for snapshots on the Wayback Machine")
	wayback := &Wayback{Client: client}
	snapshots, err := fanOut(ctx, urls, cfg.Workers, wayback.Lookup)
	if err != nil {
		return table.Table{}, fmt.Errorf("wayback lookup: %w", err)
	}
	if err := expanded.MapColumn(ColURL, ColWayback, snapshots); err != nil {
		return table.Table{}, err
	}
	logger.Debug("finished checking the Wayback Machine")

	logger.Debug("collapsing columns, one row per article")
	return table.Collapse(expanded, ColID, ColText, []string{ColURL, ColStatus, ColWayback})
}

// RunFile is the file-level entry point: read the input CSV, run the checks,
// and write the result to outDir reusing the input file's base name.
func RunFile(ctx context.Context, file string, cfg types.URLCheckConfig, logger *zap.Logger, w io.Writer) (string, error) {
	t, err := table.ReadFile(file)
	if err != nil {
		return "", err
	}

	checked, err := Run(ctx, t, file, cfg, logger, w)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(cfg.OutDir, filepath.Base(file))
	if err := checked.WriteFile(outPath); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Done. Wrote output to %s.\n", outPath)
	return outPath, nil
}
