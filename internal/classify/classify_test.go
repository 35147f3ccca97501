// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k8hertweck/inventory-2022/internal/table"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

// fakePredictor labels every text "bio" and records the batches it saw.
type fakePredictor struct {
	batches [][]string
	err     error
	short   bool
}

func (f *fakePredictor) Predict(_ context.Context, batch []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, append([]string(nil), batch...))
	if f.short {
		return []string{"bio"}, nil
	}
	labels := make([]string, len(batch))
	for i := range labels {
		labels[i] = "bio"
	}
	return labels, nil
}

func sampleTable() table.Table {
	return table.Table{
		Columns: []string{"id", "title", "abstract"},
		Rows: [][]string{
			{"1", "A <i>curated</i> database", "We describe H<sub>2</sub>O<sub>2</sub> assays."},
			{"2", "Another paper", "More text."},
		},
	}
}

func TestRun(t *testing.T) {
	p := &fakePredictor{}
	out, err := Run(context.Background(), p, sampleTable(), "in.csv", types.ClassifyConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "abstract", "title_abstract", "predicted_label"}, out.Columns)
	require.Len(t, out.Rows, 2)

	// XML stripped in place, then concatenated.
	assert.Equal(t, "A curated database", out.Rows[0][1])
	assert.Equal(t, "We describe H2O2 assays.", out.Rows[0][2])
	assert.Equal(t, "A curated database - We describe H2O2 assays.", out.Rows[0][3])
	assert.Equal(t, "bio", out.Rows[0][4])
	assert.Equal(t, "bio", out.Rows[1][4])
}

func TestRunPredictiveFieldSelection(t *testing.T) {
	tests := []struct {
		field    string
		wantText string
	}{
		{"title", "A curated database"},
		{"abstract", "We describe H2O2 assays."},
		{"title_abstract", "A curated database - We describe H2O2 assays."},
		{"", "A curated database - We describe H2O2 assays."},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := &fakePredictor{}
			cfg := types.ClassifyConfig{PredictiveField: tt.field}
			_, err := Run(context.Background(), p, sampleTable(), "in.csv", cfg, nil)
			require.NoError(t, err)
			require.NotEmpty(t, p.batches)
			assert.Equal(t, tt.wantText, p.batches[0][0])
		})
	}
}

func TestRunInvalidPredictiveField(t *testing.T) {
	cfg := types.ClassifyConfig{PredictiveField: "doi"}
	_, err := Run(context.Background(), &fakePredictor{}, sampleTable(), "in.csv", cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doi")
}

func TestRunMissingColumns(t *testing.T) {
	in := table.Table{Columns: []string{"id", "title"}}
	_, err := Run(context.Background(), &fakePredictor{}, in, "bad.csv", types.ClassifyConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.csv")
	assert.Contains(t, err.Error(), "abstract")
}

func TestRunPredictorError(t *testing.T) {
	p := &fakePredictor{err: fmt.Errorf("server down")}
	_, err := Run(context.Background(), p, sampleTable(), "in.csv", types.ClassifyConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server down")
}

func TestRunLabelCountMismatch(t *testing.T) {
	p := &fakePredictor{short: true}
	_, err := Run(context.Background(), p, sampleTable(), "in.csv", types.ClassifyConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 labels for 2 texts")
}

func TestPredictBatchesSplitsInput(t *testing.T) {
	p := &fakePredictor{}
	texts := []string{"a", "b", "c", "d", "e"}

	labels, err := predictBatches(context.Background(), p, texts, 2, nil)
	require.NoError(t, err)

	assert.Len(t, labels, 5)
	require.Len(t, p.batches, 3)
	assert.Equal(t, []string{"a", "b"}, p.batches[0])
	assert.Equal(t, []string{"c", "d"}, p.batches[1])
	assert.Equal(t, []string{"e"}, p.batches[2])
}

func TestPredictBatchesDefaultSize(t *testing.T) {
	p := &fakePredictor{}
	texts := make([]string, 10)

	_, err := predictBatches(context.Background(), p, texts, 0, nil)
	require.NoError(t, err)
	// Default batch size is 8: one full batch plus a remainder.
	require.Len(t, p.batches, 2)
	assert.Len(t, p.batches[0], 8)
	assert.Len(t, p.batches[1], 2)
}

func TestPredictBatchesEmptyInput(t *testing.T) {
	p := &fakePredictor{}
	labels, err := predictBatches(context.Background(), p, nil, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
	assert.Empty(t, p.batches)
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "articles.csv")
	csv := "id,title,abstract\n1,Some title,Some abstract\n"
	require.NoError(t, os.WriteFile(inPath, []byte(csv), 0o644))

	cfg := types.ClassifyConfig{OutDir: filepath.Join(dir, "out")}
	var buf strings.Builder

	outPath, err := RunFile(context.Background(), &fakePredictor{}, inPath, cfg, nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutDir, PredictionsFile), outPath)
	assert.Contains(t, buf.String(), "Saved predictions to")

	got, err := table.ReadFile(outPath)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "bio", got.Rows[0][len(got.Rows[0])-1])
}
