// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package urlcheck

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fanOut runs fn once per distinct URL value on a bounded worker pool and
// blocks until every call completes, returning results keyed by URL.
// Duplicates in the input collapse before dispatch, so each URL string is
// computed exactly once. Order across workers is unspecified; the map is
// complete. An empty input yields an empty map. The first error aborts the
// remaining work and is returned; fn implementations that cannot fail (the
// Checker) simply return nil errors.
func fanOut[T any](ctx context.Context, urls []string, workers int, fn func(context.Context, string) (T, error)) (map[string]T, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	seen := make(map[string]bool, len(urls))
	var distinct []string
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			distinct = append(distinct, u)
		}
	}

	results := make(map[string]T, len(distinct))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, u := range distinct {
		u := u
		g.Go(func() error {
			v, err := fn(gctx, u)
			if err != nil {
				return fmt.Errorf("%s: %w", u, err)
			}
			mu.Lock()
			results[u] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
