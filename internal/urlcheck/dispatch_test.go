// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package urlcheck

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutEmptyInput(t *testing.T) {
	results, err := fanOut(context.Background(), nil, 4,
		func(_ context.Context, u string) (string, error) { return u, nil })
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFanOutCompleteness(t *testing.T) {
	urls := make([]string, 50)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://host%d.example", i)
	}

	results, err := fanOut(context.Background(), urls, 8,
		func(_ context.Context, u string) (string, error) {
			return strings.ToUpper(u), nil
		})
	require.NoError(t, err)

	require.Len(t, results, 50)
	for _, u := range urls {
		assert.Equal(t, strings.ToUpper(u), results[u])
	}
}

func TestFanOutDeduplicates(t *testing.T) {
	var calls int32
	urls := []string{
		"https://a.example",
		"https://b.example",
		"https://a.example",
		"https://a.example",
	}

	results, err := fanOut(context.Background(), urls, 4,
		func(_ context.Context, u string) (string, error) {
			atomic.AddInt32(&calls, 1)
			return "checked", nil
		})
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "each distinct URL computed once")
}

func TestFanOutFirstErrorAborts(t *testing.T) {
	urls := []string{"https://good.example", "https://bad.example"}

	_, err := fanOut(context.Background(), urls, 1,
		func(_ context.Context, u string) (string, error) {
			if u == "https://bad.example" {
				return "", fmt.Errorf("boom")
			}
			return "ok", nil
		})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://bad.example")
	assert.Contains(t, err.Error(), "boom")
}

func TestFanOutDefaultsWorkerCount(t *testing.T) {
	// workers <= 0 must still run the work rather than deadlock.
	results, err := fanOut(context.Background(), []string{"https://a.example"}, 0,
		func(_ context.Context, u string) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
