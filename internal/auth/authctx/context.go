// Package authctx propagates the per-request security principal.
//
// A Principal is attached to a request's context only after its token
// passed signature and expiry verification. It is request-scoped and
// discarded with the request; nothing here is shared across requests.
package authctx

import (
	"context"
)

// Principal is the verified identity attached to a request.
type Principal struct {
	// Subject is the token subject (the user's email).
	Subject string
	// Role is the role claim carried by the token.
	Role string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// Set returns a context carrying the principal.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context. The second return is
// false when the request was not authenticated.
func Get(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
