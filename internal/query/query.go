// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query runs literature searches against the EuropePMC REST API and
// writes the results table consumed by the rest of the pipeline.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/k8hertweck/inventory-2022/internal/httputil"
	"github.com/k8hertweck/inventory-2022/internal/table"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

// epmcSearchBase is the EuropePMC search endpoint. Declared as a var so
// tests can substitute an httptest server.
var epmcSearchBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// Output file names within the out directory.
const (
	ResultsFile  = "new_query_results.csv"
	LastDateFile = "last_query_date.txt"
)

// datePattern accepts YYYY, YYYY-MM, or YYYY-MM-DD.
var datePattern = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`)

// ValidateDate checks the last-run date argument.
func ValidateDate(date string) error {
	if !datePattern.MatchString(date) {
		return fmt.Errorf("last date %q must be one of: YYYY, YYYY-MM, YYYY-MM-DD", date)
	}
	return nil
}

// LoadArg resolves a CLI argument that may be either a literal value or the
// path of a file holding the value. File contents win when the path exists.
func LoadArg(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return arg, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("reading argument file %s: %w", arg, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// expandPlaceholders substitutes the date window into the query template.
// Saved queries mark the window with {last_date} and {today}.
func expandPlaceholders(query, lastDate, today string) string {
	query = strings.ReplaceAll(query, "{last_date}", lastDate)
	return strings.ReplaceAll(query, "{today}", today)
}

// epmcResponse mirrors the slice of the EuropePMC search response the
// pipeline consumes.
type epmcResponse struct {
	HitCount   int `json:"hitCount"`
	ResultList struct {
		Result []epmcResult `json:"result"`
	} `json:"resultList"`
}

type epmcResult struct {
	PMID         string `json:"pmid"`
	Title        string `json:"title"`
	AbstractText string `json:"abstractText"`
}

// Run executes the query with the date window substituted and returns the
// matching articles. Rate-limited responses are retried with backoff; any
// other non-200 response is an error.
func Run(ctx context.Context, client *http.Client, queryText, lastDate, today string, cfg types.QueryConfig, logger *zap.Logger) ([]types.Article, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	queryText = expandPlaceholders(queryText, lastDate, today)

	params := url.Values{
		"query":          {queryText},
		"resultType":     {"core"},
		"fromSearchPost": {"false"},
		"format":         {"json"},
	}
	if cfg.Email != "" {
		params.Set("email", cfg.Email)
	}
	reqURL := epmcSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	logger.Debug("querying EuropePMC", zap.String("query", queryText))

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("EuropePMC request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EuropePMC returned HTTP %d", resp.StatusCode)
	}

	var decoded epmcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("parsing EuropePMC response: %w", err)
	}

	articles := make([]types.Article, 0, len(decoded.ResultList.Result))
	for _, r := range decoded.ResultList.Result {
		articles = append(articles, types.Article{
			ID:       r.PMID,
			Title:    r.Title,
			Abstract: r.AbstractText,
		})
	}
	logger.Debug("query finished",
		zap.Int("hit_count", decoded.HitCount),
		zap.Int("returned", len(articles)))
	return articles, nil
}

// WriteResults writes the results table and the last-date marker into
// outDir, returning the CSV path.
func WriteResults(articles []types.Article, today string, outDir string, w io.Writer) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	t := table.Table{Columns: []string{"id", "title", "abstract"}}
	for _, a := range articles {
		t.Rows = append(t.Rows, []string{a.ID, a.Title, a.Abstract})
	}

	csvPath := filepath.Join(outDir, ResultsFile)
	if err := t.WriteFile(csvPath); err != nil {
		return "", err
	}

	datePath := filepath.Join(outDir, LastDateFile)
	if err := os.WriteFile(datePath, []byte(today+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing last-date file: %w", err)
	}

	fmt.Fprintf(w, "Done. Wrote 2 files to %s.\n", outDir)
	return csvPath, nil
}
