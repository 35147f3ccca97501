// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/k8hertweck/inventory-2022/pkg/types"
)

// QueryOptions holds parameters for inventory queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over titles and abstracts.
	Query string

	// Label filters by predicted label.
	Label string

	// ID filters by article identifier.
	ID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Label == "" && q.ID == ""
}

// Retrieve queries the inventory with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by article ID.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Article, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.id, a.title, a.abstract, a.predicted_label,
				a.extracted_url, a.extracted_url_status, a.wayback_url
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.id, a.title, a.abstract, a.predicted_label,
				a.extracted_url, a.extracted_url_status, a.wayback_url
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Label != "" {
		qb.WriteString(` AND a.predicted_label = ?`)
		args = append(args, opts.Label)
	}
	if opts.ID != "" {
		qb.WriteString(` AND a.id = ?`)
		args = append(args, opts.ID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY CAST(a.id AS INTEGER), a.id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	var results []types.Article
	for rows.Next() {
		var (
			a        types.Article
			title    sql.NullString
			abstract sql.NullString
			label    sql.NullString
			urls     sql.NullString
			statuses sql.NullString
			wayback  sql.NullString
		)
		if err := rows.Scan(&a.ID, &title, &abstract, &label, &urls, &statuses, &wayback); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		a.Title = title.String
		a.Abstract = abstract.String
		a.PredictedLabel = label.String
		a.ExtractedURLs = urls.String
		a.URLStatuses = statuses.String
		a.WaybackURLs = wayback.String
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating article rows: %w", err)
	}
	return results, nil
}
