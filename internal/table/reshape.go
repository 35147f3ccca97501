// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Delimiter joins multi-valued fields within a single CSV cell.
const Delimiter = ", "

// ExpandURLs splits the multi-valued URL column into one row per URL. All
// other fields are copied unchanged and the relative order of
// (original row, URL within field) is preserved. A row with an empty URL
// field still produces one output row with an empty URL, so articles
// without URLs survive the round trip.
func ExpandURLs(t Table, urlCol string) (Table, error) {
	idx := t.ColumnIndex(urlCol)
	if idx < 0 {
		return Table{}, fmt.Errorf("no column %s to expand", urlCol)
	}

	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		for _, u := range splitField(row[idx]) {
			expanded := append([]string(nil), row...)
			expanded[idx] = u
			out.Rows = append(out.Rows, expanded)
		}
	}
	return out, nil
}

// splitField splits a delimited cell. An empty cell yields one empty value,
// not zero values.
func splitField(field string) []string {
	if field == "" {
		return []string{""}
	}
	return strings.Split(field, Delimiter)
}

// MapColumn appends a new column whose value for each row is values[row[keyCol]].
// Rows whose key is absent from the map get an empty value.
func (t *Table) MapColumn(keyCol, newCol string, values map[string]string) error {
	idx := t.ColumnIndex(keyCol)
	if idx < 0 {
		return fmt.Errorf("no column %s to map from", keyCol)
	}
	mapped := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		mapped[i] = values[row[idx]]
	}
	return t.AddColumn(newCol, mapped)
}

// Collapse regroups a row-per-URL table back to one row per article. Rows
// are grouped by the pair (idCol, textCol) and each column named in joinCols
// is joined with the delimiter in the order the group's rows appear. Output
// groups are sorted by the grouping key (numeric-aware on the identifier),
// which may differ from the input row order.
func Collapse(t Table, idCol, textCol string, joinCols []string) (Table, error) {
	idIdx := t.ColumnIndex(idCol)
	textIdx := t.ColumnIndex(textCol)
	if idIdx < 0 || textIdx < 0 {
		return Table{}, fmt.Errorf("grouping columns %s, %s not all present", idCol, textCol)
	}
	joinIdx := make([]int, len(joinCols))
	for i, c := range joinCols {
		joinIdx[i] = t.ColumnIndex(c)
		if joinIdx[i] < 0 {
			return Table{}, fmt.Errorf("no column %s to join", c)
		}
	}

	type groupKey struct {
		id, text string
	}
	groups := make(map[groupKey][][]string)
	var order []groupKey
	for _, row := range t.Rows {
		key := groupKey{id: row[idIdx], text: row[textIdx]}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		values := make([]string, len(joinIdx))
		for i, idx := range joinIdx {
			values[i] = row[idx]
		}
		groups[key] = append(groups[key], values)
	}

	sort.Slice(order, func(i, j int) bool {
		if c := compareIDs(order[i].id, order[j].id); c != 0 {
			return c < 0
		}
		return order[i].text < order[j].text
	})

	out := Table{Columns: append([]string{idCol, textCol}, joinCols...)}
	for _, key := range order {
		row := []string{key.id, key.text}
		for i := range joinCols {
			parts := make([]string, len(groups[key]))
			for j, values := range groups[key] {
				parts[j] = values[i]
			}
			row = append(row, strings.Join(parts, Delimiter))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// compareIDs orders identifiers numerically when both parse as integers and
// lexicographically otherwise, keeping output deterministic for the usual
// numeric PMIDs without breaking on alphanumeric identifiers.
func compareIDs(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
