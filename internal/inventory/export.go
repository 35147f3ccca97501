// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the inventory to baseDir/index/export.yaml. It supports
// the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	articles, err := s.Retrieve(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.baseDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(articles)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the inventory to baseDir/index/export.json. It supports
// the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	articles, err := s.Retrieve(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.baseDir, indexDir, "export.json")
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
