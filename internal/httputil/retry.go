// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// RetryTransport is an http.RoundTripper that retries requests answered
// with HTTP 429 (Too Many Requests) using exponential backoff. Wrapping
// the transport, rather than the call site, lets generated API clients
// that own their request execution pick up the retry behavior.
type RetryTransport struct {
	// Base executes the requests. Nil means http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries caps the retry attempts. Zero means the default (5).
	MaxRetries int
}

// RoundTrip implements http.RoundTripper. The delay starts at
// RetryBaseDelay (10 s) and doubles each attempt: 10 s, 20 s, 40 s,
// 80 s, 160 s.
//
// On each 429 the response body is drained and closed before sleeping.
// If the request context is cancelled during a backoff wait, its error
// is returned. After exhausting retries the last 429 response is
// returned so the caller can inspect it. A request whose body cannot be
// replayed (no GetBody) is executed exactly once.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	maxRetries := t.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if req.Body != nil && req.GetBody == nil {
		return base.RoundTrip(req)
	}

	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("replaying request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := base.RoundTrip(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries, return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// WrapClient returns a copy of c whose transport retries on HTTP 429.
// The original client is not modified.
func WrapClient(c *http.Client) *http.Client {
	if c == nil {
		c = http.DefaultClient
	}
	wrapped := *c
	wrapped.Transport = &RetryTransport{Base: c.Transport}
	return &wrapped
}
