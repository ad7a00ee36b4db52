// ABOUTME: Tests for note orchestration
// ABOUTME: Verifies caching, deletion scrubbing, and removed-image cleanup

package store

import (
	"context"
	"testing"

	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

func imageDoc(srcs ...string) models.Document {
	d := models.Document{Type: "doc"}
	for _, src := range srcs {
		d.Content = append(d.Content, models.Node{
			Type:  "image",
			Attrs: map[string]any{"src": src},
		})
	}
	return d
}

func TestCreateNoteHeadInsertsList(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Notes(ctx); err != nil {
		t.Fatalf("Notes failed: %v", err)
	}

	first, err := s.CreateNote(ctx, models.NewNoteCreate("Week 1", ""))
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	second, err := s.CreateNote(ctx, models.NewNoteCreate("Week 2", ""))
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	notes, err := s.Notes(ctx)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}
	if notes[0].ID != second.ID || notes[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", notes[0].ID, notes[1].ID)
	}
}

func TestUpdateNoteWithImageCleanupReleasesRemoved(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()

	note, err := s.CreateNote(ctx, models.NoteCreate{
		Title:   "Diagrams",
		Content: imageDoc("keep.png", "drop.png"),
	})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	next := imageDoc("keep.png")
	_, err = s.UpdateNoteWithImageCleanup(ctx, note.ID, models.NoteUpdate{Content: &next}, note.Content)
	if err != nil {
		t.Fatalf("UpdateNoteWithImageCleanup failed: %v", err)
	}

	b.mu.Lock()
	deleted := append([]string(nil), b.deleted...)
	b.mu.Unlock()
	if len(deleted) != 1 || deleted[0] != "drop.png" {
		t.Errorf("deleted = %v, want [drop.png]", deleted)
	}
}

func TestUpdateNoteWithImageCleanupKeepsRetainedImages(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()

	note, err := s.CreateNote(ctx, models.NoteCreate{
		Title:   "Diagrams",
		Content: imageDoc("keep.png"),
	})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	next := imageDoc("keep.png", "new.png")
	_, err = s.UpdateNoteWithImageCleanup(ctx, note.ID, models.NoteUpdate{Content: &next}, note.Content)
	if err != nil {
		t.Fatalf("UpdateNoteWithImageCleanup failed: %v", err)
	}

	b.mu.Lock()
	deleted := append([]string(nil), b.deleted...)
	b.mu.Unlock()
	if len(deleted) != 0 {
		t.Errorf("deleted = %v, want none", deleted)
	}
}

func TestDeleteNoteScrubsCacheAndPin(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	note, err := s.CreateNote(ctx, models.NewNoteCreate("Scratch", ""))
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	s.Mirror().TogglePin(mirror.KeyPinnedNotes, note.ID)

	if err := s.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	notes, err := s.Notes(ctx)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	for _, n := range notes {
		if n.ID == note.ID {
			t.Error("deleted note still listed")
		}
	}
	if s.Mirror().IsPinned(mirror.KeyPinnedNotes, note.ID) {
		t.Error("deleted note still pinned")
	}
}
