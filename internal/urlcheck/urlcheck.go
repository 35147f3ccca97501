// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package urlcheck verifies the liveness of extracted URLs and annotates
// them with Wayback Machine snapshots. A probe is a single HEAD request; the
// Checker wraps probes with bounded retries; the pipeline fans checks out
// across a worker pool and reshapes the results back onto the input table.
package urlcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Outcome is the result of one probe: an HTTP status code, or the transport
// error text when no response was obtained. Exactly one of the two fields is
// meaningful.
type Outcome struct {
	Code int
	Err  string
}

// OK reports whether the probe reached the canonical success status.
func (o Outcome) OK() bool { return o.Err == "" && o.Code == http.StatusOK }

// Failed reports whether the probe failed at the transport level. An HTTP
// error code (404, 500, ...) is not a transport failure.
func (o Outcome) Failed() bool { return o.Err != "" }

// String renders the outcome the way it appears in the output table: the
// numeric code, or the error text.
func (o Outcome) String() string {
	if o.Err != "" {
		return o.Err
	}
	return strconv.Itoa(o.Code)
}

// URLStatus pairs a URL with its final check outcome.
type URLStatus struct {
	URL     string
	Outcome Outcome
}

// Prober issues single liveness checks. The client must carry a request
// timeout so one hanging URL cannot stall a worker indefinitely.
type Prober struct {
	Client    *http.Client
	UserAgent string
}

// Probe checks url once with a HEAD request. Any failure to obtain a
// response (malformed URL, DNS, timeout, refused connection) is converted to
// an Outcome carrying the error text; Probe never returns an error and never
// panics. A response with any status code, 2xx or not, is a successful probe.
func (p *Prober) Probe(ctx context.Context, url string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Outcome{Err: err.Error()}
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return Outcome{Err: err.Error()}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return Outcome{Code: resp.StatusCode}
}

// Checker wraps a Prober with bounded retries and a fixed inter-attempt wait.
type Checker struct {
	prober   *Prober
	numTries int
	wait     time.Duration
	logger   *zap.Logger
}

// NewChecker builds a Checker. numTries must be at least 1; with zero tries
// no attempt would be made and the status would be undefined.
func NewChecker(prober *Prober, numTries int, wait time.Duration, logger *zap.Logger) (*Checker, error) {
	if numTries < 1 {
		return nil, fmt.Errorf("number of tries must be at least 1, got %d", numTries)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{prober: prober, numTries: numTries, wait: wait, logger: logger}, nil
}

// Check probes url up to numTries times, returning as soon as an attempt
// yields status 200 and otherwise keeping the last-seen outcome. The wait
// applies between attempts only; there is no sleep after the final one.
// Cancelling the context ends the retry loop early with the last outcome.
func (c *Checker) Check(ctx context.Context, url string) URLStatus {
	var out Outcome
	for attempt := 1; ; attempt++ {
		out = c.prober.Probe(ctx, url)
		if out.OK() || attempt == c.numTries {
			break
		}
		c.logger.Debug("retrying URL",
			zap.String("url", url),
			zap.String("status", out.String()),
			zap.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return URLStatus{URL: url, Outcome: out}
		case <-time.After(c.wait):
		}
	}
	return URLStatus{URL: url, Outcome: out}
}
