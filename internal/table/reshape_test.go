// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandURLs(t *testing.T) {
	in := Table{
		Columns: []string{"ID", "text", "extracted_url"},
		Rows: [][]string{
			{"123", "Some text", "https://a.example, https://b.example"},
			{"456", "Other text", "https://c.example"},
		},
	}

	out, err := ExpandURLs(in, "extracted_url")
	require.NoError(t, err)

	want := [][]string{
		{"123", "Some text", "https://a.example"},
		{"123", "Some text", "https://b.example"},
		{"456", "Other text", "https://c.example"},
	}
	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, want, out.Rows)
}

func TestExpandURLsEmptyField(t *testing.T) {
	in := Table{
		Columns: []string{"ID", "text", "extracted_url"},
		Rows:    [][]string{{"123", "No URLs here", ""}},
	}

	out, err := ExpandURLs(in, "extracted_url")
	require.NoError(t, err)

	// An article without URLs still produces one row.
	require.Len(t, out.Rows, 1)
	assert.Equal(t, []string{"123", "No URLs here", ""}, out.Rows[0])
}

func TestExpandURLsMissingColumn(t *testing.T) {
	in := Table{Columns: []string{"ID", "text"}}
	_, err := ExpandURLs(in, "extracted_url")
	if err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestMapColumn(t *testing.T) {
	tbl := Table{
		Columns: []string{"ID", "extracted_url"},
		Rows: [][]string{
			{"1", "https://a.example"},
			{"2", "https://b.example"},
			{"3", "https://a.example"},
		},
	}

	statuses := map[string]string{
		"https://a.example": "200",
		"https://b.example": "404",
	}
	require.NoError(t, tbl.MapColumn("extracted_url", "extracted_url_status", statuses))

	assert.Equal(t, []string{"200", "404", "200"}, tbl.Column("extracted_url_status"))
}

func TestMapColumnAbsentKey(t *testing.T) {
	tbl := Table{
		Columns: []string{"extracted_url"},
		Rows:    [][]string{{"https://unknown.example"}},
	}
	require.NoError(t, tbl.MapColumn("extracted_url", "status", map[string]string{}))
	assert.Equal(t, []string{""}, tbl.Column("status"))
}

func TestCollapse(t *testing.T) {
	in := Table{
		Columns: []string{"ID", "text", "extracted_url", "extracted_url_status", "wayback_url"},
		Rows: [][]string{
			{"123", "Some text", "https://a.example", "200", "http://web.archive.org/a"},
			{"123", "Some text", "https://b.example", "301", "no_wayback"},
			{"456", "Other text", "https://c.example", "404", "http://web.archive.org/c"},
		},
	}

	out, err := Collapse(in, "ID", "text", []string{"extracted_url", "extracted_url_status", "wayback_url"})
	require.NoError(t, err)

	want := [][]string{
		{"123", "Some text", "https://a.example, https://b.example", "200, 301", "http://web.archive.org/a, no_wayback"},
		{"456", "Other text", "https://c.example", "404", "http://web.archive.org/c"},
	}
	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, want, out.Rows)
}

func TestCollapseNumericSortOrder(t *testing.T) {
	in := Table{
		Columns: []string{"ID", "text", "extracted_url"},
		Rows: [][]string{
			{"10", "ten", "https://a.example"},
			{"2", "two", "https://b.example"},
			{"PMC9", "alpha", "https://c.example"},
		},
	}

	out, err := Collapse(in, "ID", "text", []string{"extracted_url"})
	require.NoError(t, err)

	// Numeric IDs sort numerically (2 before 10), alphanumeric IDs after.
	var ids []string
	for _, row := range out.Rows {
		ids = append(ids, row[0])
	}
	assert.Equal(t, []string{"2", "10", "PMC9"}, ids)
}

func TestCollapseMissingJoinColumn(t *testing.T) {
	in := Table{Columns: []string{"ID", "text"}}
	_, err := Collapse(in, "ID", "text", []string{"extracted_url"})
	if err == nil {
		t.Fatal("expected error for missing join column")
	}
}

func TestExpandCollapseRoundTrip(t *testing.T) {
	orig := Table{
		Columns: []string{"ID", "text", "extracted_url"},
		Rows: [][]string{
			{"1", "first", "https://a.example, https://b.example"},
			{"2", "second", ""},
			{"3", "third", "https://c.example"},
		},
	}

	expanded, err := ExpandURLs(orig, "extracted_url")
	require.NoError(t, err)
	require.Len(t, expanded.Rows, 4)

	collapsed, err := Collapse(expanded, "ID", "text", []string{"extracted_url"})
	require.NoError(t, err)
	assert.Equal(t, orig.Rows, collapsed.Rows)
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"5", "5", 0},
		{"PMC2", "PMC10", 1},
		{"abc", "abd", -1},
	}

	for _, tt := range tests {
		got := compareIDs(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("compareIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
