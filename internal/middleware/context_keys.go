package middleware

import "context"

// ContextKey is a dedicated type for context keys to avoid collisions.
type ContextKey string

// UserIDCtxKey holds the authenticated user's ID after JWTAuth has run.
const UserIDCtxKey = ContextKey("user_id")

// UserIDFromContext extracts the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok && id != ""
}
