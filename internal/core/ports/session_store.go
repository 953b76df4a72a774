package ports

import "context"

// Session keys the core reads and writes.
const (
	SessionKeyUserID          = "user_id"
	SessionKeyCart            = "cart"
	SessionKeyLastRegenerated = "last_regenerated"
)

// SessionStore is opaque per-visitor key/value storage scoped to a rotating
// session identifier. Get reports absence through its second return value
// rather than an error.
type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Unset(ctx context.Context, sessionID, key string) error

	// Rotate moves all data stored under oldID to newID. The old identifier
	// becomes invalid; session contents are preserved.
	Rotate(ctx context.Context, oldID, newID string) error

	// Destroy removes the session and everything stored under it.
	Destroy(ctx context.Context, sessionID string) error
}
