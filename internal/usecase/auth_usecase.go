// Package usecase defines the application-facing interfaces and their DTOs.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountSummary is the normalized identity returned by WhoAmI.
type AccountSummary struct {
	HomeAccountID string `json:"homeAccountId"`
	Username      string `json:"username"`
	Name          string `json:"name"`
}

// WhoAmIOutput is the identity probe result: the session account plus the
// expiry of the freshly renewed access token.
type WhoAmIOutput struct {
	Account        AccountSummary `json:"account"`
	TokenExpiresOn time.Time      `json:"tokenExpiresOn"`
}

// AuthUsecase drives the session-backed authentication flow: login redirect,
// callback exchange, identity probe, logout.
type AuthUsecase interface {
	// Login builds the provider authorization URL, carrying returnTo through
	// the redirect round-trip as signed state. It mutates nothing.
	Login(ctx context.Context, returnTo string) (string, error)

	// HandleCallback exchanges the authorization code, persists the
	// authenticated session, provisions the local user, and returns the path
	// the browser should be redirected to.
	HandleCallback(ctx context.Context, sessionID uuid.UUID, code, state string) (string, error)

	// WhoAmI silently renews the session's tokens and returns the identity
	// summary. Any renewal failure destroys the whole session and surfaces
	// as ErrNotAuthenticated.
	WhoAmI(ctx context.Context, sessionID uuid.UUID) (*WhoAmIOutput, error)

	// Logout destroys the session unconditionally. Idempotent.
	Logout(ctx context.Context, sessionID uuid.UUID) error
}
