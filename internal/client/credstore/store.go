// Package credstore persists the client's single opaque session token across
// process restarts. Absence of a stored token means logged-out; the store is
// cleared on logout and whenever the backend rejects the token.
package credstore

import "context"

// Store is the process-wide credential slot.
//
// Contract:
//   - Token returns ("", nil) when no token is stored.
//   - Save overwrites any previously stored token.
//   - Clear is idempotent.
type Store interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
