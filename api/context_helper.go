package api

import (
	"context"
	"time"
)

// QueryTimeout bounds each store call a handler makes.
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a context for a single store call. A nil parent
// falls back to Background so callers outside a request still get a bound.
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
