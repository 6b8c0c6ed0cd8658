// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP helper shared by upstream clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/pubmed-gateway/pkg/types"
)

// Get issues a GET for endpoint with params and returns the body of a 2xx
// response. Transport failures and non-2xx statuses come back as
// *types.UpstreamError tagged with op. There is no retry: a failure is
// surfaced to the caller immediately.
//
// On a non-2xx status the body is drained and closed before returning so the
// connection can be reused.
func Get(ctx context.Context, client *http.Client, op, endpoint string, params url.Values, userAgent string) ([]byte, error) {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("op", op).Msg("upstream request failed")
		return nil, &types.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &types.UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.UpstreamError{Op: op, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}
