// ABOUTME: Note reads and writes, including the embedded-image lifecycle
// ABOUTME: An edit that drops images deletes each removed image exactly once

package store

import (
	"context"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

// Notes returns all of the caller's notes.
func (s *Store) Notes(ctx context.Context) ([]models.Note, error) {
	return cache.GetTyped(ctx, s.cache, keyNotes, cache.Short, func(ctx context.Context) ([]models.Note, error) {
		return s.api.ListNotes(ctx)
	})
}

// Note returns one note by id.
func (s *Store) Note(ctx context.Context, noteID string) (*models.Note, error) {
	return cache.GetTyped(ctx, s.cache, noteKey(noteID), cache.Short, func(ctx context.Context) (*models.Note, error) {
		return s.api.GetNote(ctx, noteID)
	})
}

// NotesByCourse returns a course's notes.
func (s *Store) NotesByCourse(ctx context.Context, courseID string) ([]models.Note, error) {
	return cache.GetTyped(ctx, s.cache, courseNotesKey(courseID), cache.Short, func(ctx context.Context) ([]models.Note, error) {
		return s.api.ListNotesByCourse(ctx, courseID)
	})
}

// CreateNote creates a note and head-inserts it in the list cache.
func (s *Store) CreateNote(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	note, err := s.api.CreateNote(ctx, in)
	if err != nil {
		return nil, err
	}
	s.applyNoteCreate(*note)
	return note, nil
}

// UpdateNote edits a note and map-replaces it in the caches.
func (s *Store) UpdateNote(ctx context.Context, noteID string, in models.NoteUpdate) (*models.Note, error) {
	note, err := s.api.UpdateNote(ctx, noteID, in)
	if err != nil {
		return nil, err
	}
	s.applyNoteUpdate(*note)
	return note, nil
}

// UpdateNoteWithImageCleanup edits a note, then deletes every image
// the edit removed, once each. Cleanup is best effort: a failed
// delete does not fail the edit.
func (s *Store) UpdateNoteWithImageCleanup(ctx context.Context, noteID string, in models.NoteUpdate, prev models.Document) (*models.Note, error) {
	note, err := s.UpdateNote(ctx, noteID, in)
	if err != nil {
		return nil, err
	}

	current := models.EmptyDocument()
	if in.Content != nil {
		current = *in.Content
	}
	for _, url := range current.RemovedImageURLs(prev) {
		_ = s.api.DeleteNoteImage(ctx, url)
	}
	return note, nil
}

// DeleteNote removes a note from the backend, the caches, and the
// pinned set.
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	if err := s.api.DeleteNote(ctx, noteID); err != nil {
		return err
	}
	s.applyNoteDelete(noteID)
	return nil
}

// UploadNoteImage stores an image for embedding in a note.
func (s *Store) UploadNoteImage(ctx context.Context, noteID string, up Upload) (string, error) {
	return s.api.UploadNoteImage(ctx, noteID, up.Name, up.R)
}

func (s *Store) applyNoteCreate(note models.Note) {
	patchList(s.cache, keyNotes, cache.Short, func(old []models.Note) []models.Note {
		return append([]models.Note{note}, old...)
	})
}

func (s *Store) applyNoteUpdate(note models.Note) {
	patchList(s.cache, keyNotes, cache.Short, func(old []models.Note) []models.Note {
		out := make([]models.Note, len(old))
		for i, n := range old {
			if n.ID == note.ID {
				out[i] = note
			} else {
				out[i] = n
			}
		}
		return out
	})
	s.cache.Patch(noteKey(note.ID), cache.Short, func(any) any { return &note })
}

func (s *Store) applyNoteDelete(noteID string) {
	patchList(s.cache, keyNotes, cache.Short, func(old []models.Note) []models.Note {
		out := make([]models.Note, 0, len(old))
		for _, n := range old {
			if n.ID != noteID {
				out = append(out, n)
			}
		}
		return out
	})
	s.cache.Remove(noteKey(noteID))
	s.mirror.RemoveID(mirror.KeyPinnedNotes, noteID)
}
