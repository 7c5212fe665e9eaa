package portalapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// ObtainToken exchanges credentials for an access/refresh pair.
// A response without an access token is an ErrUnauthorized failure.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error) {
	body := map[string]string{"username": username, "password": password}

	var out apiTokenPair
	if err := c.do(ctx, http.MethodPost, "/api/token/", body, &out); err != nil {
		return domain.TokenPair{}, fmt.Errorf("portalapi.ObtainToken: %w", err)
	}
	if out.Access == "" {
		return domain.TokenPair{}, fmt.Errorf("portalapi.ObtainToken: no access token in response: %w", domain.ErrUnauthorized)
	}

	c.log.DebugContext(ctx, "token obtained", slog.String("username", username))
	return domain.TokenPair{Access: out.Access, Refresh: out.Refresh}, nil
}

// CurrentUser returns the identity behind the bearer credential. The role is
// lowercased and defaults to employee.
func (c *Client) CurrentUser(ctx context.Context) (domain.CurrentUser, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/current-user/", nil, &raw); err != nil {
		return domain.CurrentUser{}, fmt.Errorf("portalapi.CurrentUser: %w", err)
	}
	var out apiCurrentUser
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return domain.CurrentUser{}, fmt.Errorf("portalapi.CurrentUser: decode json: %w", err)
		}
	}
	return out.toDomain(), nil
}
