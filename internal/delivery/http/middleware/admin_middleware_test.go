package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"agora/config"
	"agora/internal/domain/entity"
	"agora/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo resolves a single user by external id for gate tests.
type stubUserRepo struct {
	user    *entity.User
	findErr error
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.ExternalID != externalID {
		return nil, repository.ErrUserNotFound
	}

	return s.user, nil
}

func (s *stubUserRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) ListActive(ctx context.Context) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	return nil
}

func (s *stubUserRepo) Disable(ctx context.Context, id uuid.UUID) error {
	return nil
}

func writeAdminArtifact(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "admin.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>admin dashboard</html>"), 0o600))

	return path
}

func adminGateRequest(t *testing.T, m *AdminMiddleware, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	nextCalled := false
	handler := m.ServeAdminArtifact(func(c echo.Context) error {
		nextCalled = true

		return c.String(http.StatusOK, "public index")
	})
	require.NoError(t, handler(c))

	return rec, nextCalled
}

func adminSession(sessionID uuid.UUID, externalID string) *entity.Session {
	return &entity.Session{
		ID:      sessionID,
		Account: &entity.Account{HomeAccountID: "oid.tid", Username: "user@example.com"},
		Profile: &entity.Profile{ExternalID: externalID, DisplayName: "Test User"},
	}
}

func TestServeAdminArtifact_AdminGetsArtifact(t *testing.T) {
	cookies := testCookieManager()
	sessionID, cookie := mintCookie(t, cookies)
	sessions := &stubSessionRepo{sessions: map[uuid.UUID]*entity.Session{
		sessionID: adminSession(sessionID, "ext-1"),
	}}
	users := &stubUserRepo{user: &entity.User{ID: uuid.New(), ExternalID: "ext-1", Admin: true}}

	cfg := &config.Config{}
	cfg.Static.AdminFile = writeAdminArtifact(t)
	m := NewAdminMiddleware(cookies, sessions, users, cfg, discardLogger())

	rec, nextCalled := adminGateRequest(t, m, cookie)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin dashboard")
}

func TestServeAdminArtifact_NonAdminFallsThrough(t *testing.T) {
	cookies := testCookieManager()
	sessionID, cookie := mintCookie(t, cookies)
	sessions := &stubSessionRepo{sessions: map[uuid.UUID]*entity.Session{
		sessionID: adminSession(sessionID, "ext-1"),
	}}
	users := &stubUserRepo{user: &entity.User{ID: uuid.New(), ExternalID: "ext-1", Admin: false}}

	cfg := &config.Config{}
	cfg.Static.AdminFile = writeAdminArtifact(t)
	m := NewAdminMiddleware(cookies, sessions, users, cfg, discardLogger())

	rec, nextCalled := adminGateRequest(t, m, cookie)

	assert.True(t, nextCalled)
	assert.Contains(t, rec.Body.String(), "public index")
}

func TestServeAdminArtifact_DisabledAdminFallsThrough(t *testing.T) {
	cookies := testCookieManager()
	sessionID, cookie := mintCookie(t, cookies)
	sessions := &stubSessionRepo{sessions: map[uuid.UUID]*entity.Session{
		sessionID: adminSession(sessionID, "ext-1"),
	}}
	users := &stubUserRepo{user: &entity.User{ID: uuid.New(), ExternalID: "ext-1", Admin: true, Disabled: true}}

	cfg := &config.Config{}
	cfg.Static.AdminFile = writeAdminArtifact(t)
	m := NewAdminMiddleware(cookies, sessions, users, cfg, discardLogger())

	_, nextCalled := adminGateRequest(t, m, cookie)

	assert.True(t, nextCalled)
}

func TestServeAdminArtifact_NoCookieFallsThrough(t *testing.T) {
	cookies := testCookieManager()
	sessions := &stubSessionRepo{sessions: map[uuid.UUID]*entity.Session{}}
	users := &stubUserRepo{}

	cfg := &config.Config{}
	cfg.Static.AdminFile = writeAdminArtifact(t)
	m := NewAdminMiddleware(cookies, sessions, users, cfg, discardLogger())

	_, nextCalled := adminGateRequest(t, m, nil)

	assert.True(t, nextCalled)
}

func TestServeAdminArtifact_StoreErrorDefersToNext(t *testing.T) {
	cookies := testCookieManager()
	sessionID, cookie := mintCookie(t, cookies)
	sessions := &stubSessionRepo{sessions: map[uuid.UUID]*entity.Session{
		sessionID: adminSession(sessionID, "ext-1"),
	}}
	users := &stubUserRepo{findErr: errors.New("connection refused")}

	cfg := &config.Config{}
	cfg.Static.AdminFile = writeAdminArtifact(t)
	m := NewAdminMiddleware(cookies, sessions, users, cfg, discardLogger())

	rec, nextCalled := adminGateRequest(t, m, cookie)

	// A store fault must not grant the artifact, only defer.
	assert.True(t, nextCalled)
	assert.NotContains(t, rec.Body.String(), "admin dashboard")
}
