// Package requestid carries the per-request correlation id through contexts.
package requestid

import (
	"context"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/cuid2"
)

// Header is the HTTP header that carries the request id.
const Header = "X-Request-ID"

type ctxKey struct{}

// New generates a request id.
func New() string {
	return cuid2.Prefixed("req", cuid2.Options{})
}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
