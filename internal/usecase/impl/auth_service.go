// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"agora/config"
	deliverycontext "agora/internal/delivery/context"
	"agora/internal/domain/entity"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/domain/repository"
	"agora/internal/domain/service"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface. It orchestrates the
// provider client, the session store and user provisioning; per-session state
// transitions are Anonymous -> PendingCallback -> Authenticated -> Anonymous.
type authService struct {
	provider  service.IdentityProvider
	profiles  service.ProfileSource
	states    service.StateCodec
	sessions  repository.SessionRepository
	txManager repository.TransactionManager
	scopes    []string
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	provider service.IdentityProvider,
	profiles service.ProfileSource,
	states service.StateCodec,
	sessions repository.SessionRepository,
	txManager repository.TransactionManager,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		provider:  provider,
		profiles:  profiles,
		states:    states,
		sessions:  sessions,
		txManager: txManager,
		scopes:    cfg.Microsoft.ScopeList(),
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login builds the provider authorization URL with the caller's desired
// post-login destination signed into the state parameter.
func (srv *authService) Login(ctx context.Context, returnTo string) (string, error) {
	state, err := srv.states.Encode(returnTo)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode state")
	}

	authURL, err := srv.provider.AuthCodeURL(state, true)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotConfigured) {
			return "", domainerrors.ErrProviderNotConfigured.WrapMessage("login unavailable")
		}

		return "", domainerrors.ErrAuthenticationFailed.WrapMessage(err.Error())
	}

	return authURL, nil
}

// HandleCallback exchanges the single-use authorization code, persists the
// authenticated session, fetches the external profile once, and provisions
// the local user record.
func (srv *authService) HandleCallback(ctx context.Context, sessionID uuid.UUID, code, state string) (string, error) {
	returnTo := "/"
	if state != "" {
		decoded, err := srv.states.Decode(state)
		if err != nil {
			srv.log(ctx).Warn("Rejecting callback with invalid state", slog.Any("error", err))

			return "", domainerrors.ErrInvalidState.WrapMessage("state verification failed")
		}
		if decoded != "" {
			returnTo = decoded
		}
	}

	result, err := srv.provider.ExchangeCode(ctx, code, "")
	if err != nil {
		if errors.Is(err, service.ErrProviderNotConfigured) {
			return "", domainerrors.ErrProviderNotConfigured.WrapMessage("login unavailable")
		}
		srv.log(ctx).Error("Authorization code exchange failed", slog.Any("error", err))

		return "", domainerrors.ErrAuthenticationFailed.WrapMessage(err.Error())
	}

	// One profile call with the fresh access token; the result is cached in
	// the session for the lifetime of the login.
	profile, err := srv.profiles.Profile(ctx, result.AccessToken)
	if err != nil {
		srv.log(ctx).Error("Profile fetch failed after code exchange", slog.Any("error", err))

		return "", domainerrors.ErrAuthenticationFailed.WrapMessage("profile fetch failed")
	}

	session := &entity.Session{
		ID:         sessionID,
		Account:    &result.Account,
		TokenCache: result.TokenCache,
		Profile:    profile,
	}
	if err := srv.sessions.Save(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to persist session")
	}

	if err := srv.ensureUser(ctx, profile.ExternalID, profile.PrincipalName, profile.DisplayName); err != nil {
		srv.log(ctx).Error("User provisioning failed", slog.Any("error", err), slog.String("external_id", profile.ExternalID))

		return "", errors.Wrap(err, "failed to provision user")
	}

	srv.log(ctx).Info("Session authenticated",
		slog.String("username", result.Account.Username),
		slog.String("return_to", returnTo))

	return returnTo, nil
}

// WhoAmI rehydrates the provider cache from the session, renews tokens
// silently, and writes the refreshed cache back. Any renewal failure destroys
// the whole session: there is no half-valid state.
func (srv *authService) WhoAmI(ctx context.Context, sessionID uuid.UUID) (*usecase.WhoAmIOutput, error) {
	session, err := srv.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrNotAuthenticated.WrapMessage("no session")
		}

		return nil, errors.Wrap(err, "failed to load session")
	}
	if !session.Authenticated() {
		return nil, domainerrors.ErrNotAuthenticated.WrapMessage("session has no account")
	}

	result, err := srv.provider.AcquireSilently(ctx, *session.Account, session.TokenCache, srv.scopes)
	if err != nil {
		// Deliberate policy: any silent-refresh failure invalidates the whole
		// session rather than leaving a half-valid state.
		srv.log(ctx).Info("Silent acquisition failed, destroying session", slog.Any("error", err))
		if destroyErr := srv.sessions.Destroy(ctx, sessionID); destroyErr != nil {
			srv.log(ctx).Error("Failed to destroy session after refresh failure", slog.Any("error", destroyErr))
		}

		return nil, domainerrors.ErrNotAuthenticated.WrapMessage("silent acquisition failed")
	}

	session.TokenCache = result.TokenCache
	if err := srv.sessions.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist refreshed token cache")
	}

	var name string
	if session.Profile != nil {
		name = session.Profile.DisplayName
	}

	return &usecase.WhoAmIOutput{
		Account: usecase.AccountSummary{
			HomeAccountID: session.Account.HomeAccountID,
			Username:      session.Account.Username,
			Name:          name,
		},
		TokenExpiresOn: result.ExpiresOn,
	}, nil
}

// Logout destroys the session unconditionally; destroying an anonymous or
// unknown session is a no-op.
func (srv *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := srv.sessions.Destroy(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to destroy session")
	}

	return nil
}

// ensureUser makes sure a local user record exists for the authenticated
// external identity. The lookup-then-insert runs in one transaction and the
// insert ignores (external id, email) conflicts, so sequential and concurrent
// first-logins both end with exactly one row.
func (srv *authService) ensureUser(ctx context.Context, externalID, email, displayName string) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindActiveByEmail(ctx, email)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up user")
		}

		user := &entity.User{
			ExternalID: externalID,
			Name:       displayName,
			Username:   nil, // Chosen by the user later.
			Email:      email,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}
		srv.log(ctx).Info("Provisioned new user", slog.String("external_id", externalID), slog.String("email", email))

		return nil
	})
}
