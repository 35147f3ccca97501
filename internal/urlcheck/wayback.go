// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package urlcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
)

// waybackBase is the Wayback Machine availability endpoint. Declared as a
// var so tests can substitute an httptest server.
var waybackBase = "http://archive.org/wayback/available"

// waybackUserAgent identifies this pipeline to the archive service.
const waybackUserAgent = "biodata_resource_inventory"

// NoWayback is the annotation for a URL the archive holds no snapshot of.
const NoWayback = "no_wayback"

// Wayback queries the Wayback Machine for historical snapshots.
type Wayback struct {
	Client *http.Client
}

type waybackResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			URL       string `json:"url"`
			Timestamp string `json:"timestamp"`
			Status    string `json:"status"`
			Available bool   `json:"available"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}

// Lookup asks the availability endpoint for the snapshot closest to now.
// A response that legitimately reports no snapshot yields the NoWayback
// sentinel with a nil error. A non-200 response or an unparseable body is an
// error: the service telling us nothing is archived and the service telling
// us nothing intelligible are different conditions, and the second must not
// be recorded as a legitimate null result. There is no retry here.
func (wb *Wayback) Lookup(ctx context.Context, url string) (string, error) {
	reqURL := waybackBase + "?url=" + neturl.QueryEscape(url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", waybackUserAgent)

	resp, err := wb.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("availability request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("availability endpoint returned HTTP %d", resp.StatusCode)
	}

	var decoded waybackResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("parsing availability response: %w", err)
	}

	closest := decoded.ArchivedSnapshots.Closest
	if closest.URL == "" {
		return NoWayback, nil
	}
	return closest.URL, nil
}
