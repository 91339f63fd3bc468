package api

import (
	"context"
	"net/http"

	"github.com/ecofinds/marketplace-client/internal/models"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, "register", http.MethodPost, "/register", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, "login", http.MethodPost, "/login", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Refresh trades the refresh token for a new access token. The refresh
// token travels in the Authorization header, so the caller's TokenSource
// must be serving it for the duration of this call.
func (c *Client) Refresh(ctx context.Context) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, "refresh", http.MethodPost, "/refresh", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "logout", http.MethodPost, "/logout", nil, nil)
}

// Me fetches the profile behind the current access token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, "me", http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, "update_profile", http.MethodPut, "/profile", patch, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
