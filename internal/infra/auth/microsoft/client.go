// Package microsoft implements the identity provider client against the
// Microsoft identity platform v2 authorization-code endpoints.
package microsoft

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agora/config"
	"agora/internal/domain/entity"
	"agora/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	authorizePathSuffix = "/oauth2/v2.0/authorize"
	tokenPathSuffix     = "/oauth2/v2.0/token"

	// Provider calls are bounded so a slow identity platform cannot hang a
	// request indefinitely.
	providerTimeout = 15 * time.Second
)

// Client handles the authorization-code flow for a single configured
// provider application. It performs network calls only; it never touches the
// session store or local user records.
//
// A Client with an empty client secret is in not-configured mode: every
// operation returns service.ErrProviderNotConfigured. The mode is decided
// once at construction, not per request.
type Client struct {
	clientID     string
	clientSecret string
	authority    string
	redirectURI  string
	scopes       string
	configured   bool
	httpClient   *http.Client
}

// NewClient constructs the provider client from validated configuration.
// It is built once at process start and injected wherever needed.
func NewClient(cfg *config.Config) service.IdentityProvider {
	return &Client{
		clientID:     cfg.Microsoft.ClientID,
		clientSecret: cfg.Microsoft.ClientSecret,
		authority:    cfg.Microsoft.Authority(),
		redirectURI:  cfg.Microsoft.RedirectURI,
		scopes:       cfg.Microsoft.Scopes,
		configured:   cfg.Microsoft.ClientID != "" && cfg.Microsoft.ClientSecret != "",
		httpClient:   &http.Client{Timeout: providerTimeout},
	}
}

// tokenCache is the serialized internal cache stored in the session. It is
// opaque outside this package.
type tokenCache struct {
	RefreshToken  string `json:"refreshToken"`
	Scope         string `json:"scope"`
	HomeAccountID string `json:"homeAccountId"`
}

// tokenEndpointResponse mirrors the provider token endpoint payload.
type tokenEndpointResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthCodeURL builds the provider authorization URL carrying the caller's
// opaque state through the redirect round-trip.
func (c *Client) AuthCodeURL(state string, selectAccount bool) (string, error) {
	if !c.configured {
		return "", errors.WithStack(service.ErrProviderNotConfigured)
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", c.scopes)
	params.Set("response_type", "code")
	params.Set("response_mode", "query")
	params.Set("state", state)
	if selectAccount {
		params.Set("prompt", "select_account")
	}

	return c.authority + authorizePathSuffix + "?" + params.Encode(), nil
}

// ExchangeCode redeems a single-use authorization code for tokens. The
// returned TokenCache blob holds the refresh material for later silent
// acquisition.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*service.TokenResult, error) {
	if !c.configured {
		return nil, errors.WithStack(service.ErrProviderNotConfigured)
	}
	if redirectURI == "" {
		redirectURI = c.redirectURI
	}

	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", redirectURI)
	data.Set("scope", c.scopes)

	tokenResp, err := c.postToken(ctx, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange authorization code")
	}

	account, err := accountFromIDToken(tokenResp.IDToken, c.authority)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read account from id token")
	}

	cacheBlob, err := json.Marshal(tokenCache{
		RefreshToken:  tokenResp.RefreshToken,
		Scope:         tokenResp.Scope,
		HomeAccountID: account.HomeAccountID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize token cache")
	}

	return &service.TokenResult{
		Account:     *account,
		AccessToken: tokenResp.AccessToken,
		ExpiresOn:   time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
		TokenCache:  cacheBlob,
	}, nil
}

// AcquireSilently renews the access token from the rehydrated cache blob
// using the refresh-token grant. Any provider rejection maps to
// service.ErrReauthenticationRequired: the caller must treat the session as
// no longer valid rather than retry.
func (c *Client) AcquireSilently(ctx context.Context, account entity.Account, cacheBlob []byte, scopes []string) (*service.TokenResult, error) {
	if !c.configured {
		return nil, errors.WithStack(service.ErrProviderNotConfigured)
	}

	var cache tokenCache
	if err := json.Unmarshal(cacheBlob, &cache); err != nil {
		return nil, errors.Wrap(service.ErrReauthenticationRequired, "token cache is not usable")
	}
	if cache.RefreshToken == "" {
		return nil, errors.Wrap(service.ErrReauthenticationRequired, "no refresh material cached")
	}

	scope := strings.Join(scopes, " ")
	if scope == "" {
		scope = cache.Scope
	}

	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", cache.RefreshToken)
	data.Set("scope", scope)

	tokenResp, err := c.postToken(ctx, data)
	if err != nil {
		// Expired or revoked refresh material surfaces here; there is no
		// non-interactive recovery.
		return nil, errors.Wrap(service.ErrReauthenticationRequired, err.Error())
	}

	refreshToken := tokenResp.RefreshToken
	if refreshToken == "" {
		// The provider may omit a rotated refresh token; keep the old one.
		refreshToken = cache.RefreshToken
	}

	newBlob, err := json.Marshal(tokenCache{
		RefreshToken:  refreshToken,
		Scope:         tokenResp.Scope,
		HomeAccountID: account.HomeAccountID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize token cache")
	}

	return &service.TokenResult{
		Account:     account,
		AccessToken: tokenResp.AccessToken,
		ExpiresOn:   time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
		TokenCache:  newBlob,
	}, nil
}

func (c *Client) postToken(ctx context.Context, data url.Values) (*tokenEndpointResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authority+tokenPathSuffix, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, errors.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp tokenEndpointResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, errors.Wrap(err, "failed to decode token response")
	}

	return &tokenResp, nil
}
