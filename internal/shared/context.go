package shared

import "context"

// Identity is the verified token payload attached to authenticated requests.
type Identity struct {
	ID    int64
	Email string
	// Token retains the raw bearer token the identity was decoded from.
	Token string
}

type identityContextKey struct{}

// ContextWithIdentity stores the verified identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the verified identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
