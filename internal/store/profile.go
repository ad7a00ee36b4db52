// ABOUTME: Profile reads and lifecycle through the cache
// ABOUTME: Completion may hand back a reissued session token to persist

package store

import (
	"context"

	"github.com/studyhub/studyhub/internal/api"
	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/models"
)

// Profile returns the caller's profile.
func (s *Store) Profile(ctx context.Context) (*models.Profile, error) {
	return cache.GetTyped(ctx, s.cache, keyProfile, cache.Medium, func(ctx context.Context) (*models.Profile, error) {
		return s.api.GetProfile(ctx)
	})
}

// CompleteProfile submits the first-time profile form and patches the
// cached profile. The caller is responsible for persisting any
// reissued token from the response.
func (s *Store) CompleteProfile(ctx context.Context, in models.Profile) (*api.CompleteProfileResponse, error) {
	resp, err := s.api.CompleteProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	profile := resp.Profile
	s.cache.Patch(keyProfile, cache.Medium, func(any) any { return &profile })
	return resp, nil
}

// UpdateProfile edits the profile and patches the cache.
func (s *Store) UpdateProfile(ctx context.Context, in models.Profile) (*models.Profile, error) {
	profile, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Patch(keyProfile, cache.Medium, func(any) any { return profile })
	return profile, nil
}

// UploadProfileImage stores a new avatar and patches the cached
// profile's image URL.
func (s *Store) UploadProfileImage(ctx context.Context, up Upload) (string, error) {
	url, err := s.api.UploadProfileImage(ctx, up.Name, up.R)
	if err != nil {
		return "", err
	}
	s.cache.Patch(keyProfile, cache.Medium, func(old any) any {
		if p, ok := old.(*models.Profile); ok && p != nil {
			updated := *p
			updated.ImageURL = url
			return &updated
		}
		return old
	})
	return url, nil
}

// DeleteProfile removes the profile and evicts it from the cache.
func (s *Store) DeleteProfile(ctx context.Context) error {
	if err := s.api.DeleteProfile(ctx); err != nil {
		return err
	}
	s.cache.Remove(keyProfile)
	return nil
}
