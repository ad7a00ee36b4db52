// ABOUTME: Profile accessors for the account behind the session
// ABOUTME: Profile completion may reissue the session token

package api

import (
	"context"
	"fmt"
	"io"

	"github.com/studyhub/studyhub/internal/models"
)

// CompleteProfileResponse is returned by the completion endpoint; the
// backend may reissue tokens carrying the updated claim.
type CompleteProfileResponse struct {
	Status          string         `json:"status"`
	Profile         models.Profile `json:"profile"`
	UserID          string         `json:"user_id"`
	NewAccessToken  string         `json:"new_access_token,omitempty"`
	NewRefreshToken string         `json:"new_refresh_token,omitempty"`
	ExpiresIn       int            `json:"expires_in,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
}

// GetProfile returns the caller's profile, validated before it can
// enter the cache.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.get(ctx, "/profiles/me", &out); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if err := models.Validate(&out); err != nil {
		return nil, fmt.Errorf("get profile: %w: %v", ErrInvalidPayload, err)
	}
	return &out, nil
}

// CompleteProfile submits the first-time profile form.
func (c *Client) CompleteProfile(ctx context.Context, in models.Profile) (*CompleteProfileResponse, error) {
	var out CompleteProfileResponse
	if err := c.post(ctx, "/profiles/complete-profile", in, &out); err != nil {
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return &out, nil
}

// UpdateProfile edits an existing profile.
func (c *Client) UpdateProfile(ctx context.Context, in models.Profile) (*models.Profile, error) {
	var out models.Profile
	if err := c.put(ctx, "/profiles/update-profile", in, &out); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &out, nil
}

// UploadProfileImage stores a new avatar and returns its URL.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.postFile(ctx, "/profiles/upload-profile-image", "file", filename, r, &out); err != nil {
		return "", fmt.Errorf("upload profile image: %w", err)
	}
	return out.ImageURL, nil
}

// DeleteProfile removes the account's profile.
func (c *Client) DeleteProfile(ctx context.Context) error {
	if err := c.del(ctx, "/profiles/delete-profile", nil, nil); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
