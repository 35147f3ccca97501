// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify attaches classifier predictions to article tables. The
// model itself (architecture, checkpoints, tokenization) is an external
// collaborator reachable only through the Predictor contract; this package
// owns the text preparation and the CSV plumbing around it.
package classify

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/k8hertweck/inventory-2022/internal/table"
	"github.com/k8hertweck/inventory-2022/internal/textproc"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

// Predictor classifies a batch of texts, returning one label per text in
// input order.
type Predictor interface {
	Predict(ctx context.Context, batch []string) ([]string, error)
}

// Column names the classification stage consumes and produces.
const (
	ColTitle         = "title"
	ColAbstract      = "abstract"
	ColTitleAbstract = "title_abstract"
	ColPredicted     = "predicted_label"
)

// PredictionsFile is the output file name within the out directory.
const PredictionsFile = "predictions.csv"

const defaultBatchSize = 8

// validFields are the accepted values for the predictive-field setting.
var validFields = map[string]bool{
	ColTitle:         true,
	ColAbstract:      true,
	ColTitleAbstract: true,
}

// Run prepares the table text and attaches a predicted_label column. Title
// and abstract are required columns (fatal before any prediction request,
// naming the file and the columns); both are XML-stripped and concatenated
// into title_abstract. The predictive field is sent to the Predictor in
// batches and the returned labels are appended row for row.
func Run(ctx context.Context, p Predictor, t table.Table, file string, cfg types.ClassifyConfig, logger *zap.Logger) (table.Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := t.RequireColumns(file, ColTitle, ColAbstract); err != nil {
		return table.Table{}, err
	}

	field := cfg.PredictiveField
	if field == "" {
		field = ColTitleAbstract
	}
	if !validFields[field] {
		return table.Table{}, fmt.Errorf("predictive field %q must be one of: title, abstract, title_abstract", field)
	}

	titleIdx := t.ColumnIndex(ColTitle)
	absIdx := t.ColumnIndex(ColAbstract)
	combined := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		row[titleIdx] = textproc.StripXML(row[titleIdx])
		row[absIdx] = textproc.StripXML(row[absIdx])
		combined[i] = textproc.ConcatTitleAbstract(row[titleIdx], row[absIdx])
	}
	if t.ColumnIndex(ColTitleAbstract) < 0 {
		if err := t.AddColumn(ColTitleAbstract, combined); err != nil {
			return table.Table{}, err
		}
	}

	texts := t.Column(field)
	labels, err := predictBatches(ctx, p, texts, cfg.BatchSize, logger)
	if err != nil {
		return table.Table{}, err
	}
	if err := t.AddColumn(ColPredicted, labels); err != nil {
		return table.Table{}, err
	}
	return t, nil
}

// predictBatches feeds texts to the Predictor in fixed-size batches and
// concatenates the labels. A batch returning the wrong number of labels is
// a hard error; silently misaligning labels with rows would corrupt the
// output table.
func predictBatches(ctx context.Context, p Predictor, texts []string, batchSize int, logger *zap.Logger) ([]string, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	labels := make([]string, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		logger.Debug("predicting batch",
			zap.Int("start", start),
			zap.Int("size", len(batch)))

		got, err := p.Predict(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("predicting batch at row %d: %w", start, err)
		}
		if len(got) != len(batch) {
			return nil, fmt.Errorf("predictor returned %d labels for %d texts", len(got), len(batch))
		}
		labels = append(labels, got...)
	}
	return labels, nil
}

// RunFile is the file-level entry point: read the input CSV, classify, and
// write predictions.csv into the out directory.
func RunFile(ctx context.Context, p Predictor, file string, cfg types.ClassifyConfig, logger *zap.Logger, w io.Writer) (string, error) {
	t, err := table.ReadFile(file)
	if err != nil {
		return "", err
	}

	classified, err := Run(ctx, p, t, file, cfg, logger)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(cfg.OutDir, PredictionsFile)
	if err := classified.WriteFile(outPath); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Saved predictions to %s.\n", outPath)
	return outPath, nil
}
