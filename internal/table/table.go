// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table provides the CSV-backed table the pipeline stages exchange,
// plus the reshaping transforms between row-per-article and row-per-URL form.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is an in-memory CSV table: a header and rows of equal width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses CSV from r. The first record is the header; every row must
// have the same width as the header.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("empty CSV input")
	}
	return Table{Columns: records[0], Rows: records[1:]}, nil
}

// ReadFile reads a CSV table from path.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return Table{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// WriteFile writes the table as CSV to path through a temporary file that is
// renamed on success, so a failed run never leaves a partial table behind.
func (t Table) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".table-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cw := csv.NewWriter(tmp)
	writeErr := cw.Write(t.Columns)
	if writeErr == nil {
		writeErr = cw.WriteAll(t.Rows)
	}
	if writeErr == nil {
		cw.Flush()
		writeErr = cw.Error()
	}
	closeErr := tmp.Close()

	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing CSV: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column in row order. An unknown
// column yields nil.
func (t Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// AddColumn appends a column with one value per row.
func (t *Table) AddColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %s has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// RequireColumns verifies the named columns exist, reporting every missing
// column along with the offending file. Stages call this before any network
// activity so a bad input schema fails the run up front.
func (t Table) RequireColumns(file string, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if t.ColumnIndex(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("file %s is missing required column(s): %s",
			file, strings.Join(missing, ", "))
	}
	return nil
}
