package shared

import "context"

// Identity carries the authenticated actor and the store (tenant) a
// request operates on. The surrounding auth layer resolves both before
// the ledger core is reached.
type Identity struct {
	StoreID int64
	ActorID int64
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
