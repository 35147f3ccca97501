// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/k8hertweck/inventory-2022/internal/httputil"
	"github.com/k8hertweck/inventory-2022/pkg/types"
)

// HTTPPredictor talks to an external prediction server hosting the trained
// model. The wire contract is deliberately thin: a JSON batch of texts in,
// a JSON list of labels out.
type HTTPPredictor struct {
	Client *http.Client
	Config types.ClassifyConfig
}

type predictRequest struct {
	Texts []string `json:"texts"`
}

type predictResponse struct {
	Labels []string `json:"labels"`
}

// Predict posts one batch to the server's /predict endpoint. Rate-limited
// responses are retried with backoff; any other non-200 response is an error.
func (p *HTTPPredictor) Predict(ctx context.Context, batch []string) ([]string, error) {
	body, err := json.Marshal(predictRequest{Texts: batch})
	if err != nil {
		return nil, fmt.Errorf("marshaling batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Config.ServerURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.Config.UserAgent)
	if p.Config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Config.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("prediction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prediction server returned HTTP %d", resp.StatusCode)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("parsing prediction response: %w", err)
	}
	return decoded.Labels, nil
}
