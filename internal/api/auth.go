// ABOUTME: Auth accessors for login, signup, verification, and session lifecycle
// ABOUTME: The callback path is the one place a token travels explicitly

package api

import (
	"context"
	"fmt"
	"net/url"
)

// AuthResponse is the credential-exchange result common to login,
// signup, callback, and refresh.
type AuthResponse struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token,omitempty"`
	ExpiresIn       int    `json:"expires_in,omitempty"`
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	ProfileComplete bool   `json:"profile_complete"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session; the backend sets the
// session cookie on success.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &out, nil
}

// Signup registers a new account. The user must confirm their email
// before the session becomes usable.
func (c *Client) Signup(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/signup", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &out, nil
}

// Callback completes email verification. This is the only path that
// passes the token explicitly, both as a query parameter and a bearer
// header, because no session cookie exists yet.
func (c *Client) Callback(ctx context.Context, token string) (*AuthResponse, error) {
	var out AuthResponse
	path := "/auth/callback?token=" + url.QueryEscape(token)
	if err := c.do(ctx, "GET", path, reqOptions{token: token}, &out); err != nil {
		return nil, fmt.Errorf("callback: %w", err)
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("callback: %w: no access token in response", ErrInvalidPayload)
	}
	return &out, nil
}

// Logout ends the session server-side; the backend clears the cookie.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Refresh rotates the session token using the refresh cookie.
func (c *Client) Refresh(ctx context.Context) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/refresh", nil, &out); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return &out, nil
}

// RequestEmailChange starts the email-change flow after re-verifying
// the current password.
func (c *Client) RequestEmailChange(ctx context.Context, newEmail, currentPassword string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	body := map[string]string{"new_email": newEmail, "current_password": currentPassword}
	if err := c.post(ctx, "/auth/request-email-change", body, &out); err != nil {
		return "", fmt.Errorf("request email change: %w", err)
	}
	return out.Message, nil
}

// ChangePassword replaces the password after verifying the current one.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	body := map[string]string{"current_password": currentPassword, "new_password": newPassword}
	if err := c.post(ctx, "/auth/change-password", body, &out); err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	return out.Message, nil
}
