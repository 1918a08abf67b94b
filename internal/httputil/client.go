// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds each download attempt so a stalled transfer fails
// instead of hanging the run.
const DefaultTimeout = 30 * time.Second

// NewClient returns the client used for attachment downloads. Redirects are
// never followed automatically: the unauthenticated fallback strategy
// handles a single 301/302 hop itself, and every other strategy must see
// the 3xx status as a failure. A zero timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
