// ABOUTME: File accessors for upload, listing, and signed URL issuance
// ABOUTME: Preview and download address files by name within a course

package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/studyhub/studyhub/internal/models"
)

// UploadFile uploads a single file to a course.
func (c *Client) UploadFile(ctx context.Context, courseID, filename string, r io.Reader) (*models.File, error) {
	var out models.File
	if err := c.postFile(ctx, "/files/upload_file/"+courseID, "file", filename, r, &out); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	return &out, nil
}

// ListFiles returns the files of a course.
func (c *Client) ListFiles(ctx context.Context, courseID string) ([]models.File, error) {
	var out struct {
		Files []models.File `json:"files"`
	}
	if err := c.get(ctx, "/files/get_files/"+courseID, &out); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return out.Files, nil
}

// PreviewURL asks the backend for a signed preview URL, addressed by
// file name.
func (c *Client) PreviewURL(ctx context.Context, courseID, fileName string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := "/files/generate_preview_url/" + courseID + "/" + url.PathEscape(fileName)
	if err := c.get(ctx, path, &out); err != nil {
		return "", fmt.Errorf("preview url: %w", err)
	}
	return out.URL, nil
}

// DownloadURL asks the backend for a signed download URL.
func (c *Client) DownloadURL(ctx context.Context, courseID, fileName string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := "/files/generate_download_url/" + courseID + "/" + url.PathEscape(fileName)
	if err := c.get(ctx, path, &out); err != nil {
		return "", fmt.Errorf("download url: %w", err)
	}
	return out.URL, nil
}

// PreviewBlob fetches the raw file content for inline preview.
func (c *Client) PreviewBlob(ctx context.Context, courseID, fileName string) ([]byte, error) {
	path := "/files/preview_file/" + courseID + "/" + url.PathEscape(fileName)
	data, err := c.getBlob(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("preview file: %w", err)
	}
	return data, nil
}

// DeleteFile removes one file from a course.
func (c *Client) DeleteFile(ctx context.Context, courseID, fileID string) error {
	if err := c.del(ctx, "/files/delete_file/"+courseID+"/"+fileID, nil, nil); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
