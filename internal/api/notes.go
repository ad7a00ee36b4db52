// ABOUTME: Note accessors including the embedded-image lifecycle
// ABOUTME: Content documents are validated before entering the cache

package api

import (
	"context"
	"fmt"
	"io"

	"github.com/studyhub/studyhub/internal/models"
)

// CreateNote creates a note and returns the server's record.
func (c *Client) CreateNote(ctx context.Context, in models.NoteCreate) (*models.Note, error) {
	var out models.Note
	if err := c.post(ctx, "/notes/create_note", in, &out); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	if err := out.Content.Validate(); err != nil {
		return nil, fmt.Errorf("create note: %w: %v", ErrInvalidPayload, err)
	}
	return &out, nil
}

// ListNotes returns all of the caller's notes.
func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var out []models.Note
	if err := c.get(ctx, "/notes/get_notes", &out); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return out, nil
}

// GetNote returns a single note by id.
func (c *Client) GetNote(ctx context.Context, noteID string) (*models.Note, error) {
	var out models.Note
	if err := c.get(ctx, "/notes/get_note/"+noteID, &out); err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if err := out.Content.Validate(); err != nil {
		return nil, fmt.Errorf("get note: %w: %v", ErrInvalidPayload, err)
	}
	return &out, nil
}

// UpdateNote applies a partial edit. A nil content is sent as the
// canonical empty document so the stored content never loses its root.
func (c *Client) UpdateNote(ctx context.Context, noteID string, in models.NoteUpdate) (*models.Note, error) {
	if in.Content == nil {
		empty := models.EmptyDocument()
		in.Content = &empty
	}
	var out models.Note
	if err := c.put(ctx, "/notes/edit_note/"+noteID, in, &out); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &out, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	if err := c.del(ctx, "/notes/delete_note/"+noteID, nil, nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ListNotesByCourse returns a course's notes.
func (c *Client) ListNotesByCourse(ctx context.Context, courseID string) ([]models.Note, error) {
	var out struct {
		Notes []models.Note `json:"notes"`
	}
	if err := c.get(ctx, "/notes/get_notes_by_course/"+courseID, &out); err != nil {
		return nil, fmt.Errorf("list notes by course: %w", err)
	}
	return out.Notes, nil
}

// UploadNoteImage stores an image for embedding and returns its path.
func (c *Client) UploadNoteImage(ctx context.Context, noteID, filename string, r io.Reader) (string, error) {
	var out struct {
		FileData struct {
			FilePath string `json:"file_path"`
		} `json:"file_data"`
	}
	if err := c.postFile(ctx, "/notes/upload_image/"+noteID, "file", filename, r, &out); err != nil {
		return "", fmt.Errorf("upload note image: %w", err)
	}
	return out.FileData.FilePath, nil
}

// DeleteNoteImage removes a stored image by URL.
func (c *Client) DeleteNoteImage(ctx context.Context, imageURL string) error {
	body := map[string]string{"url": imageURL}
	if err := c.del(ctx, "/notes/delete_image", body, nil); err != nil {
		return fmt.Errorf("delete note image: %w", err)
	}
	return nil
}
