package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/k8hertweck/inventory-2022/internal/classify"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify FILE",
	Short: "Classify articles with the external prediction server",
	Long: `Classify sends article text to the prediction server hosting the trained
model and appends a predicted_label column. FILE must contain title and
abstract columns; XML tags are stripped and the two are concatenated into
title_abstract before prediction.

Model training, checkpoints, and tokenization live entirely in the
prediction server; this stage is CSV glue around its predict contract.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringP("out-dir", "o", "out/", "output directory")
	classifyCmd.Flags().String("server", "http://localhost:8000", "base URL of the prediction server")
	classifyCmd.Flags().String("predictive-field", "title_abstract", "column to use for prediction: title, abstract, title_abstract")
	classifyCmd.Flags().Int("batch-size", 8, "number of texts per prediction request")
	classifyCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	server, _ := cmd.Flags().GetString("server")
	field, _ := cmd.Flags().GetString("predictive-field")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if server == "" {
		return fmt.Errorf("prediction server URL is required")
	}

	cfg := types.ClassifyConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		ServerURL:       server,
		Token:           secretDefault("predictor-token", ""),
		PredictiveField: field,
		BatchSize:       batchSize,
		OutDir:          outDir,
	}

	predictor := &classify.HTTPPredictor{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}

	_, err := classify.RunFile(context.Background(), predictor, args[0], cfg, stageLogger(), os.Stdout)
	return err
}
