// ABOUTME: Course file reads and the concurrent multi-file upload path
// ABOUTME: Partial upload failure leaves succeeded files in place (no rollback)

package store

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

// Upload is one pending file upload.
type Upload struct {
	Name string
	R    io.Reader
}

// Files returns a course's files, cached for the short window and
// mirrored for dashboard stats.
func (s *Store) Files(ctx context.Context, courseID string) ([]models.File, error) {
	return cache.GetTyped(ctx, s.cache, filesKey(courseID), cache.Short, func(ctx context.Context) ([]models.File, error) {
		files, err := s.api.ListFiles(ctx, courseID)
		if err != nil {
			return nil, err
		}
		_ = s.mirror.Put(mirror.FilesKey(courseID), files)
		return files, nil
	})
}

// FilesFallback returns the mirrored file list for a course, used by
// the dashboard before or instead of a fetch.
func (s *Store) FilesFallback(courseID string) []models.File {
	var files []models.File
	s.mirror.Get(mirror.FilesKey(courseID), &files)
	return files
}

// FileCounts aggregates per-course file counts for the dashboard,
// loading each course's list concurrently. A course whose fetch fails
// contributes its mirrored list instead of failing the aggregate.
func (s *Store) FileCounts(ctx context.Context, courses []models.Course) map[string]int {
	counts := make(map[string]int, len(courses))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, c := range courses {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			files, err := s.Files(ctx, id)
			if err != nil {
				files = s.FilesFallback(id)
			}
			mu.Lock()
			counts[id] = len(files)
			mu.Unlock()
		}(c.ID)
	}
	wg.Wait()
	return counts
}

// UploadFiles uploads the given files concurrently, one request per
// file. Zero files is a no-op: no network call, no cache mutation.
// The batch fails if any member fails; files that succeeded before a
// sibling failed stay persisted server-side and the cache is left for
// the next natural refetch to reconcile.
func (s *Store) UploadFiles(ctx context.Context, courseID string, uploads []Upload) ([]models.File, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	results := make([]*models.File, len(uploads))
	errs := make([]error, len(uploads))
	var wg sync.WaitGroup
	for i, up := range uploads {
		wg.Add(1)
		go func(i int, up Upload) {
			defer wg.Done()
			results[i], errs[i] = s.api.UploadFile(ctx, courseID, up.Name, up.R)
		}(i, up)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", uploads[i].Name, err)
		}
	}

	files := make([]models.File, len(results))
	for i, f := range results {
		files[i] = *f
	}
	s.applyFilesAdd(courseID, files)
	return files, nil
}

// DeleteFile removes one file and drops it from the cache, the
// mirror, and the course's pinned set.
func (s *Store) DeleteFile(ctx context.Context, courseID, fileID string) error {
	if err := s.api.DeleteFile(ctx, courseID, fileID); err != nil {
		return err
	}
	s.applyFileDelete(courseID, fileID)
	return nil
}

// PreviewURL returns a signed preview URL for a file by name.
func (s *Store) PreviewURL(ctx context.Context, courseID, fileName string) (string, error) {
	return s.api.PreviewURL(ctx, courseID, fileName)
}

// DownloadURL returns a signed download URL for a file by name.
func (s *Store) DownloadURL(ctx context.Context, courseID, fileName string) (string, error) {
	return s.api.DownloadURL(ctx, courseID, fileName)
}

func (s *Store) applyFilesAdd(courseID string, files []models.File) {
	updated := patchList(s.cache, filesKey(courseID), cache.Short, func(old []models.File) []models.File {
		return append(old, files...)
	})
	_ = s.mirror.Put(mirror.FilesKey(courseID), updated)
}

func (s *Store) applyFileDelete(courseID, fileID string) {
	updated := patchList(s.cache, filesKey(courseID), cache.Short, func(old []models.File) []models.File {
		out := make([]models.File, 0, len(old))
		for _, f := range old {
			if f.ID != fileID {
				out = append(out, f)
			}
		}
		return out
	})
	_ = s.mirror.Put(mirror.FilesKey(courseID), updated)
	s.mirror.RemoveID(mirror.PinnedItemsKey(courseID), fileID)
}
