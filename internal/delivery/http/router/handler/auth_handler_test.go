package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agora/config"
	"agora/internal/delivery/http/middleware"
	"agora/internal/delivery/http/session"
	domainerrors "agora/internal/domain/errors"
	"agora/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuthUsecase scripts the auth flow outcomes for handler tests.
type fakeAuthUsecase struct {
	loginURL       string
	loginErr       error
	callbackTarget string
	callbackErr    error
	whoAmI         *usecase.WhoAmIOutput
	whoAmIErr      error
	logoutErr      error

	gotSessionID uuid.UUID
	logoutCalls  int
}

func (f *fakeAuthUsecase) Login(ctx context.Context, returnTo string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}

	return f.loginURL + "&state=" + returnTo, nil
}

func (f *fakeAuthUsecase) HandleCallback(ctx context.Context, sessionID uuid.UUID, code, state string) (string, error) {
	f.gotSessionID = sessionID
	if f.callbackErr != nil {
		return "", f.callbackErr
	}

	return f.callbackTarget, nil
}

func (f *fakeAuthUsecase) WhoAmI(ctx context.Context, sessionID uuid.UUID) (*usecase.WhoAmIOutput, error) {
	f.gotSessionID = sessionID
	if f.whoAmIErr != nil {
		return nil, f.whoAmIErr
	}

	return f.whoAmI, nil
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, sessionID uuid.UUID) error {
	f.logoutCalls++
	f.gotSessionID = sessionID

	return f.logoutErr
}

func testCookies() *session.Manager {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.CookieName = "agora_session"
	cfg.Session.TTL = time.Hour

	return session.NewManager(cfg)
}

func newAuthEcho(uc usecase.AuthUsecase, cookies *session.Manager) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(discardLogger()).HandleHTTPError

	h := NewAuthHandler(uc, cookies, discardLogger())
	e.GET("/auth/login", h.Login)
	e.GET("/auth/redirect", h.Redirect)
	e.GET("/auth/me", h.Me)
	e.POST("/auth/logout", h.Logout)

	return e
}

func mintSessionCookie(t *testing.T, cookies *session.Manager) (uuid.UUID, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	id := cookies.Ensure(c)

	parsed := rec.Result().Cookies()
	require.Len(t, parsed, 1)

	return id, parsed[0]
}

func TestAuthHandler_Login_RedirectsToProvider(t *testing.T) {
	uc := &fakeAuthUsecase{loginURL: "https://login.microsoftonline.com/tid/oauth2/v2.0/authorize?client_id=x"}
	e := newAuthEcho(uc, testCookies())

	req := httptest.NewRequest(http.MethodGet, "/auth/login?state=/discussions", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "oauth2/v2.0/authorize")
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "state=/discussions")
}

func TestAuthHandler_Login_NotConfigured(t *testing.T) {
	uc := &fakeAuthUsecase{loginErr: domainerrors.ErrProviderNotConfigured.WrapMessage("login unavailable")}
	e := newAuthEcho(uc, testCookies())

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestAuthHandler_Redirect_MissingCode(t *testing.T) {
	e := newAuthEcho(&fakeAuthUsecase{}, testCookies())

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Redirect_BindsSessionAndRedirects(t *testing.T) {
	uc := &fakeAuthUsecase{callbackTarget: "/discussions"}
	e := newAuthEcho(uc, testCookies())

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect?code=auth-code&state=signed", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/discussions", rec.Header().Get(echo.HeaderLocation))
	assert.NotEqual(t, uuid.Nil, uc.gotSessionID)

	// A fresh session cookie is bound to the browser during the callback.
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Contains(t, rec.Result().Cookies()[0].Value, uc.gotSessionID.String())
}

func TestAuthHandler_Redirect_ConfinesTargetToLocalPath(t *testing.T) {
	uc := &fakeAuthUsecase{callbackTarget: "https://evil.example.com/phish"}
	e := newAuthEcho(uc, testCookies())

	req := httptest.NewRequest(http.MethodGet, "/auth/redirect?code=auth-code", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestAuthHandler_Me_NoCookie(t *testing.T) {
	e := newAuthEcho(&fakeAuthUsecase{}, testCookies())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"not_authenticated"}`, rec.Body.String())
}

func TestAuthHandler_Me_Success(t *testing.T) {
	cookies := testCookies()
	sessionID, cookie := mintSessionCookie(t, cookies)

	expiresOn := time.Now().Add(30 * time.Minute).UTC()
	uc := &fakeAuthUsecase{whoAmI: &usecase.WhoAmIOutput{
		Account: usecase.AccountSummary{
			HomeAccountID: "oid.tid",
			Username:      "user@example.com",
			Name:          "Test User",
		},
		TokenExpiresOn: expiresOn,
	}}
	e := newAuthEcho(uc, cookies)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionID, uc.gotSessionID)

	var body struct {
		Account struct {
			HomeAccountID string `json:"homeAccountId"`
			Username      string `json:"username"`
			Name          string `json:"name"`
		} `json:"account"`
		TokenExpiresOn time.Time `json:"tokenExpiresOn"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "oid.tid", body.Account.HomeAccountID)
	assert.Equal(t, "user@example.com", body.Account.Username)
	assert.Equal(t, "Test User", body.Account.Name)
	assert.WithinDuration(t, expiresOn, body.TokenExpiresOn, time.Second)
}

func TestAuthHandler_Me_SessionInvalidated(t *testing.T) {
	cookies := testCookies()
	_, cookie := mintSessionCookie(t, cookies)
	uc := &fakeAuthUsecase{whoAmIErr: domainerrors.ErrNotAuthenticated.WrapMessage("silent acquisition failed")}
	e := newAuthEcho(uc, cookies)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"not_authenticated"}`, rec.Body.String())
}

func TestAuthHandler_Logout_DestroysSessionAndClearsCookie(t *testing.T) {
	cookies := testCookies()
	sessionID, cookie := mintSessionCookie(t, cookies)
	uc := &fakeAuthUsecase{}
	e := newAuthEcho(uc, cookies)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, uc.logoutCalls)
	assert.Equal(t, sessionID, uc.gotSessionID)

	require.NotEmpty(t, rec.Result().Cookies())
	cleared := rec.Result().Cookies()[0]
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestAuthHandler_Logout_WithoutCookieStillRedirects(t *testing.T) {
	uc := &fakeAuthUsecase{}
	e := newAuthEcho(uc, testCookies())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Zero(t, uc.logoutCalls)
}
