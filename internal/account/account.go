// Package account is the boundary to the external authentication
// provider. Sync only ever needs the current identity; login and
// registration live with the provider.
package account

import (
	syncerrors "github.com/Perth00/wanderplan-sync/internal/errors"
)

// Provider exposes the authenticated account, or empty values when no
// session is active.
type Provider interface {
	UserID() string
	Email() string
}

// Static is a fixed identity, used by the CLI (identity from env or
// the cached session) and by tests.
type Static struct {
	ID           string
	EmailAddress string
}

// UserID implements Provider.
func (s Static) UserID() string { return s.ID }

// Email implements Provider.
func (s Static) Email() string { return s.EmailAddress }

// Verify checks that p carries a usable identity: an active session
// with a non-empty account identifier and email.
func Verify(p Provider) error {
	if p == nil || (p.UserID() == "" && p.Email() == "") {
		return syncerrors.ErrNotAuthenticated
	}

	if p.UserID() == "" || p.Email() == "" {
		return syncerrors.ErrEmptyAccount
	}

	return nil
}
