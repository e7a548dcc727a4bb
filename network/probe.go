package network

import (
	"context"
	"net/http"
	"time"

	"github.com/myselfbbs/vodplay/log"
	"golang.org/x/sync/errgroup"
)

// ProbeTimeout bounds a single reachability check.
const ProbeTimeout = 5 * time.Second

// ProbeResult is the outcome of a HEAD request against a manifest URL.
type ProbeResult struct {
	URL        string        `json:"url"`
	Reachable  bool          `json:"accessible"`
	StatusCode int           `json:"status,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
	Error      string        `json:"error,omitempty"`
}

// Probe sends a HEAD request and reports whether the URL answered with 2xx.
// Failures are reported in the result, never returned.
func Probe(ctx context.Context, url string) ProbeResult {
	result := ProbeResult{URL: url}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		result.Error = err.Error()
		result.Elapsed = time.Since(start)
		return result
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := Client.Do(req)
	if err != nil {
		log.Debugf("probe %s: %s", url, err)
		result.Error = err.Error()
		result.Elapsed = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Reachable = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Reachable {
		result.Error = resp.Status
	}
	result.Elapsed = time.Since(start)

	return result
}

// ProbeAll probes every URL with at most workers requests in flight.
// Results are in input order.
func ProbeAll(ctx context.Context, urls []string, workers int) []ProbeResult {
	results := make([]ProbeResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			results[i] = Probe(ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
