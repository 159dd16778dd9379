package session

import "context"

// Store defines the interface for the session registry. Sessions live
// for the lifetime of the process; there is no delete or expiry path.
type Store interface {
	// Put stores a session, overwriting any existing entry with the same
	// ID (last write wins).
	Put(ctx context.Context, session *Session) error

	// Get retrieves a session by ID. Unknown IDs fail with the store's
	// not-found error, distinct from any delivery failure.
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all registered sessions (for diagnostics).
	List(ctx context.Context) ([]*Session, error)
}
