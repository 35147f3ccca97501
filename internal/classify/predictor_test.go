// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k8hertweck/inventory-2022/pkg/types"
)

func predictorServer(t *testing.T, handler http.HandlerFunc) *HTTPPredictor {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &HTTPPredictor{
		Client: ts.Client(),
		Config: types.ClassifyConfig{
			HTTPConfig: types.HTTPConfig{UserAgent: "inventory-test"},
			ServerURL:  ts.URL,
			Token:      "tok_xyz789",
		},
	}
}

func TestHTTPPredictorPredict(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody predictRequest

	p := predictorServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(predictResponse{Labels: []string{"bio", "not-bio"}})
	})

	labels, err := p.Predict(context.Background(), []string{"text one", "text two"})
	require.NoError(t, err)

	assert.Equal(t, []string{"bio", "not-bio"}, labels)
	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, "Bearer tok_xyz789", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, []string{"text one", "text two"}, gotBody.Texts)
}

func TestHTTPPredictorNoToken(t *testing.T) {
	var gotAuth string
	p := predictorServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(predictResponse{Labels: []string{"bio"}})
	})
	p.Config.Token = ""

	_, err := p.Predict(context.Background(), []string{"text"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPPredictorServerError(t *testing.T) {
	p := predictorServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := p.Predict(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestHTTPPredictorMalformedResponse(t *testing.T) {
	p := predictorServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := p.Predict(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing prediction response")
}
