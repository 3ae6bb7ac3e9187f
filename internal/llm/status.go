package llm

import (
	"context"
	"net/http"
	"time"
)

// Status reports whether a backend endpoint is reachable
type Status string

const (
	StatusReady   Status = "ready"
	StatusOffline Status = "offline"
)

// CheckStatus probes serviceURL with a GET and reports ready on a 200.
// Any transport error or non-200 status means offline; the probe never
// returns an error since offline is the answer in every failure case.
func CheckStatus(ctx context.Context, serviceURL string) Status {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serviceURL, nil)
	if err != nil {
		return StatusOffline
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return StatusOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return StatusReady
	}
	return StatusOffline
}
