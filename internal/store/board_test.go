// ABOUTME: Tests for help-board orchestration
// ABOUTME: Verifies posting, status toggling, and dual-list patching

package store

import (
	"context"
	"testing"

	"github.com/studyhub/studyhub/internal/models"
)

func TestCreateAnnouncementHeadInsertsOwnList(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.MyAnnouncements(ctx); err != nil {
		t.Fatalf("MyAnnouncements failed: %v", err)
	}

	first, err := s.CreateAnnouncement(ctx, models.NewAnnouncementCreate("Need calculus help", "Math", models.ContactEmail, ""))
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}
	second, err := s.CreateAnnouncement(ctx, models.NewAnnouncementCreate("Lab partner wanted", "Physics", models.ContactEmail, ""))
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}

	mine, err := s.MyAnnouncements(ctx)
	if err != nil {
		t.Fatalf("MyAnnouncements failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("got %d announcements, want 2", len(mine))
	}
	// Newest first.
	if mine[0].ID != second.ID || mine[1].ID != first.ID {
		t.Errorf("order = [%s %s], want [%s %s]", mine[0].ID, mine[1].ID, second.ID, first.ID)
	}
}

func TestToggleAnnouncementPatchesBothLists(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ann, err := s.CreateAnnouncement(ctx, models.NewAnnouncementCreate("Need help", "Math", models.ContactEmail, ""))
	if err != nil {
		t.Fatalf("CreateAnnouncement failed: %v", err)
	}

	// Prime both cached lists.
	if _, err := s.OpenAnnouncements(ctx); err != nil {
		t.Fatalf("OpenAnnouncements failed: %v", err)
	}
	if _, err := s.MyAnnouncements(ctx); err != nil {
		t.Fatalf("MyAnnouncements failed: %v", err)
	}

	closed, err := s.ToggleAnnouncementStatus(ctx, ann.ID)
	if err != nil {
		t.Fatalf("ToggleAnnouncementStatus failed: %v", err)
	}
	if closed.Status != models.StatusClosed {
		t.Errorf("Status = %q, want closed", closed.Status)
	}

	// Both cached lists see the new status without a refetch.
	mine, err := s.MyAnnouncements(ctx)
	if err != nil {
		t.Fatalf("MyAnnouncements failed: %v", err)
	}
	for _, a := range mine {
		if a.ID == ann.ID && a.Status != models.StatusClosed {
			t.Error("own list did not pick up the closed status")
		}
	}
	board, err := s.OpenAnnouncements(ctx)
	if err != nil {
		t.Fatalf("OpenAnnouncements failed: %v", err)
	}
	for _, a := range board {
		if a.ID == ann.ID && a.Status != models.StatusClosed {
			t.Error("open board did not pick up the closed status")
		}
	}

	// Toggling twice restores the original status.
	reopened, err := s.ToggleAnnouncementStatus(ctx, ann.ID)
	if err != nil {
		t.Fatalf("ToggleAnnouncementStatus failed: %v", err)
	}
	if reopened.Status != models.StatusOpen {
		t.Errorf("Status = %q, want open after double toggle", reopened.Status)
	}
}
