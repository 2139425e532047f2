// Package session manages the signed browser cookie that names a server-side session.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"agora/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Manager issues and verifies the session id cookie. The cookie carries only
// an HMAC-SHA256-signed session id; all session state lives server-side. A
// missing or tampered cookie yields a fresh id, never an error.
type Manager struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager is the constructor for Manager.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		name:   cfg.Session.CookieName,
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
		secure: cfg.Session.Secure,
	}
}

// Read returns the session id carried by a validly signed cookie.
func (m *Manager) Read(c echo.Context) (uuid.UUID, bool) {
	cookie, err := c.Cookie(m.name)
	if err != nil {
		return uuid.Nil, false
	}

	value, sig, found := strings.Cut(cookie.Value, ".")
	if !found || !hmac.Equal([]byte(m.sign(value)), []byte(sig)) {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// Ensure returns the current session id, minting and setting a new one when
// the cookie is absent or fails verification.
func (m *Manager) Ensure(c echo.Context) uuid.UUID {
	if id, ok := m.Read(c); ok {
		return id
	}

	id := uuid.New()
	c.SetCookie(m.cookie(id.String()+"."+m.sign(id.String()), m.ttl))

	return id
}

// Clear expires the cookie on the browser side.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(m.cookie("", -time.Hour))
}

func (m *Manager) sign(value string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(value))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) cookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
