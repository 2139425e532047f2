package microsoft

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"agora/internal/domain/entity"
	"agora/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultGraphMeURL = "https://graph.microsoft.com/v1.0/me"

// GraphProfileSource fetches the signed-in user's profile from Microsoft
// Graph with a fresh access token.
type GraphProfileSource struct {
	meURL      string
	httpClient *http.Client
}

// NewGraphProfileSource constructs the Graph-backed profile source.
func NewGraphProfileSource() service.ProfileSource {
	return &GraphProfileSource{
		meURL:      defaultGraphMeURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Profile retrieves id, display name and principal name from Graph /me.
func (g *GraphProfileSource) Profile(ctx context.Context, accessToken string) (*entity.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.meURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create profile request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "profile request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, errors.Errorf("profile request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var me struct {
		ID                string `json:"id"`
		DisplayName       string `json:"displayName"`
		UserPrincipalName string `json:"userPrincipalName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile response")
	}

	return &entity.Profile{
		ExternalID:    me.ID,
		DisplayName:   me.DisplayName,
		PrincipalName: me.UserPrincipalName,
	}, nil
}
