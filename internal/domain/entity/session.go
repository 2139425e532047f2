package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the provider-issued identity stored in an authenticated session.
type Account struct {
	HomeAccountID string // Stable home-account id ("<oid>.<tid>").
	Username      string // Provider login name (preferred_username claim).
	Authority     string // Authority URL the account was issued by.
}

// Profile is the cached subset of the provider profile fetched once after the
// callback exchange.
type Profile struct {
	ExternalID    string // Provider object id, joins to User.ExternalID.
	DisplayName   string
	PrincipalName string
}

// Session is the per-browser authentication state. A session is considered
// authenticated exactly when Account is present. TokenCache is the provider
// client's serialized cache and is opaque to everything outside the provider
// client; it may be empty even when Account is set (first request after the
// callback, before any silent refresh).
type Session struct {
	ID         uuid.UUID
	Account    *Account
	TokenCache []byte
	Profile    *Profile
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Authenticated reports whether the session carries a provider account.
func (s *Session) Authenticated() bool {
	return s != nil && s.Account != nil
}
