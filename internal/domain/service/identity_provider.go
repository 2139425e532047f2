// Package service defines the contracts for external collaborators the
// application depends on, such as the identity provider.
package service

import (
	"context"
	"errors"
	"time"

	"agora/internal/domain/entity"
)

// ErrProviderNotConfigured is returned by every provider operation when the
// provider application is missing credentials. It is a mode, not a fault: the
// process starts and serves unauthenticated routes regardless.
var ErrProviderNotConfigured = errors.New("identity provider not configured")

// ErrReauthenticationRequired signals that silent token renewal cannot
// proceed; the cached refresh material is expired or revoked and the session
// is no longer valid. Callers must not treat this as a transient fault.
var ErrReauthenticationRequired = errors.New("reauthentication required")

// TokenResult is the outcome of a code exchange or a silent acquisition.
// TokenCache is the provider client's serialized internal cache; it is stored
// verbatim in the session and never parsed outside the provider client.
type TokenResult struct {
	Account     entity.Account
	AccessToken string
	ExpiresOn   time.Time
	TokenCache  []byte
}

// IdentityProvider wraps a single configured OAuth2 authorization-code
// application: authorization URL construction, code exchange, and silent
// cache-based renewal. Implementations perform network calls only; they never
// touch the session store or local user records.
type IdentityProvider interface {
	// AuthCodeURL builds the provider authorization URL. The opaque state is
	// carried through the redirect round-trip unchanged. selectAccount asks
	// the provider to prompt for account selection.
	AuthCodeURL(state string, selectAccount bool) (string, error)

	// ExchangeCode redeems a single-use authorization code for tokens.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenResult, error)

	// AcquireSilently renews the access token from the rehydrated cache
	// without user interaction. Returns ErrReauthenticationRequired when the
	// cached refresh material is no longer usable.
	AcquireSilently(ctx context.Context, account entity.Account, tokenCache []byte, scopes []string) (*TokenResult, error)
}

// ProfileSource fetches the external profile of the authenticated identity.
type ProfileSource interface {
	// Profile retrieves the provider profile using a fresh access token.
	Profile(ctx context.Context, accessToken string) (*entity.Profile, error)
}

// StateCodec signs and verifies the OAuth state parameter, which carries the
// originally requested path through the authorization round-trip.
type StateCodec interface {
	// Encode wraps a return path into a signed, short-lived state token.
	Encode(returnTo string) (string, error)

	// Decode verifies a state token and extracts the return path. Tampered or
	// expired tokens yield an error.
	Decode(state string) (string, error)
}
