package correlationid

import "context"

// Header is the HTTP header carrying the correlation ID.
const Header = "X-Correlation-Id"

type contextKey struct{}

// NewContext returns a context carrying the given correlation ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the correlation ID from the context, if present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok
}
