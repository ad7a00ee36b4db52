// ABOUTME: Help-board accessors for peer help announcements
// ABOUTME: Status toggling round-trips the server's value

package api

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub/internal/models"
)

// CreateAnnouncement posts a help request.
func (c *Client) CreateAnnouncement(ctx context.Context, in models.AnnouncementCreate) (*models.Announcement, error) {
	var out models.Announcement
	if err := c.post(ctx, "/announcements/create-announcements", in, &out); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	if err := models.Validate(&out); err != nil {
		return nil, fmt.Errorf("create announcement: %w: %v", ErrInvalidPayload, err)
	}
	return &out, nil
}

// ListOpenAnnouncements returns open announcements from other users.
func (c *Client) ListOpenAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	if err := c.get(ctx, "/announcements/announcements", &out); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return out, nil
}

// MyAnnouncements returns the caller's own announcements.
func (c *Client) MyAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	if err := c.get(ctx, "/announcements/my_announcements", &out); err != nil {
		return nil, fmt.Errorf("list my announcements: %w", err)
	}
	return out, nil
}

// ToggleAnnouncementStatus flips open/closed and returns the record
// with the server's resulting status.
func (c *Client) ToggleAnnouncementStatus(ctx context.Context, announcementID string) (*models.Announcement, error) {
	var out models.Announcement
	if err := c.patch(ctx, "/announcements/toggle_status/"+announcementID, nil, &out); err != nil {
		return nil, fmt.Errorf("toggle announcement status: %w", err)
	}
	return &out, nil
}

// UpdateAnnouncement applies a partial edit.
func (c *Client) UpdateAnnouncement(ctx context.Context, announcementID string, in models.AnnouncementUpdate) (*models.Announcement, error) {
	var out models.Announcement
	if err := c.put(ctx, "/announcements/update_announcements/"+announcementID, in, &out); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return &out, nil
}

// DeleteAnnouncement removes an announcement. The endpoint path typo
// is the backend's, not ours.
func (c *Client) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	if err := c.del(ctx, "/announcements/delet_announcements/"+announcementID, nil, nil); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
