// ABOUTME: Help-board reads and writes for peer announcements
// ABOUTME: Status toggles patch both the open board and the caller's own list

package store

import (
	"context"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/models"
)

// OpenAnnouncements returns the open help requests from other users.
func (s *Store) OpenAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return cache.GetTyped(ctx, s.cache, keyBoard, cache.Short, func(ctx context.Context) ([]models.Announcement, error) {
		return s.api.ListOpenAnnouncements(ctx)
	})
}

// MyAnnouncements returns the caller's own help requests.
func (s *Store) MyAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return cache.GetTyped(ctx, s.cache, keyMyBoard, cache.Short, func(ctx context.Context) ([]models.Announcement, error) {
		return s.api.MyAnnouncements(ctx)
	})
}

// CreateAnnouncement posts a help request and head-inserts it in the
// caller's own list.
func (s *Store) CreateAnnouncement(ctx context.Context, in models.AnnouncementCreate) (*models.Announcement, error) {
	ann, err := s.api.CreateAnnouncement(ctx, in)
	if err != nil {
		return nil, err
	}
	patchList(s.cache, keyMyBoard, cache.Short, func(old []models.Announcement) []models.Announcement {
		return append([]models.Announcement{*ann}, old...)
	})
	return ann, nil
}

// ToggleAnnouncementStatus flips open/closed, trusting the server's
// returned value. Toggling twice restores the original status.
func (s *Store) ToggleAnnouncementStatus(ctx context.Context, announcementID string) (*models.Announcement, error) {
	ann, err := s.api.ToggleAnnouncementStatus(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	s.applyAnnouncementUpdate(*ann)
	return ann, nil
}

// UpdateAnnouncement edits a help request.
func (s *Store) UpdateAnnouncement(ctx context.Context, announcementID string, in models.AnnouncementUpdate) (*models.Announcement, error) {
	ann, err := s.api.UpdateAnnouncement(ctx, announcementID, in)
	if err != nil {
		return nil, err
	}
	s.applyAnnouncementUpdate(*ann)
	return ann, nil
}

// DeleteAnnouncement removes a help request from the backend and both
// cached lists.
func (s *Store) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	if err := s.api.DeleteAnnouncement(ctx, announcementID); err != nil {
		return err
	}
	for _, key := range []string{keyBoard, keyMyBoard} {
		patchList(s.cache, key, cache.Short, func(old []models.Announcement) []models.Announcement {
			out := make([]models.Announcement, 0, len(old))
			for _, a := range old {
				if a.ID != announcementID {
					out = append(out, a)
				}
			}
			return out
		})
	}
	return nil
}

func (s *Store) applyAnnouncementUpdate(ann models.Announcement) {
	for _, key := range []string{keyBoard, keyMyBoard} {
		patchList(s.cache, key, cache.Short, func(old []models.Announcement) []models.Announcement {
			out := make([]models.Announcement, len(old))
			for i, a := range old {
				if a.ID == ann.ID {
					out[i] = ann
				} else {
					out[i] = a
				}
			}
			return out
		})
	}
}
