package microsoft

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"agora/internal/domain/entity"

	"github.com/pkg/errors"
)

// idTokenClaims is the subset of ID token claims the account is built from.
type idTokenClaims struct {
	Oid               string `json:"oid"` // Object id, stable per user per tenant.
	Tid               string `json:"tid"` // Tenant id.
	Sub               string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
}

// accountFromIDToken extracts the provider account from the ID token payload.
// Signature verification is the token endpoint's job; the token arrived over
// the server-to-server exchange, so only the payload is decoded here.
func accountFromIDToken(idToken, authority string) (*entity.Account, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid JWT format")
	}

	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode token payload")
	}

	var claims idTokenClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token claims")
	}
	if claims.Oid == "" || claims.Tid == "" {
		return nil, errors.New("id token missing oid/tid claims")
	}

	return &entity.Account{
		HomeAccountID: claims.Oid + "." + claims.Tid,
		Username:      claims.PreferredUsername,
		Authority:     authority,
	}, nil
}
