package auth

import "context"

type userIDContextKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID uint64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext returns the authenticated user id stored in ctx.
func UserIDFromContext(ctx context.Context) (uint64, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(userIDContextKey{}).(uint64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}
