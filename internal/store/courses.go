// ABOUTME: Course reads and writes through the cache and mirror
// ABOUTME: The mirror carries course titles for pickers in unrelated flows

package store

import (
	"context"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

// Courses returns the caller's courses, cached for the medium window.
func (s *Store) Courses(ctx context.Context) ([]models.Course, error) {
	return cache.GetTyped(ctx, s.cache, keyCourses, cache.Medium, func(ctx context.Context) ([]models.Course, error) {
		courses, err := s.api.ListCourses(ctx)
		if err != nil {
			return nil, err
		}
		s.mirrorCourses(courses)
		return courses, nil
	})
}

// CoursesFallback returns the mirrored course list without touching
// the network, for rendering before the first fetch resolves.
func (s *Store) CoursesFallback() []models.Course {
	var courses []models.Course
	s.mirror.Get(mirror.KeyCourses, &courses)
	return courses
}

// CourseTitles returns the mirrored title list used to populate
// course pickers in flows that never fetched the course list.
func (s *Store) CourseTitles() []string {
	var titles []string
	s.mirror.Get(mirror.KeyCourseTitles, &titles)
	return titles
}

// Course returns one course and records it as recently opened.
func (s *Store) Course(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := cache.GetTyped(ctx, s.cache, courseKey(courseID), cache.Medium, func(ctx context.Context) (*models.Course, error) {
		return s.api.GetCourse(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}
	s.mirror.TouchRecentCourse(courseID)
	return course, nil
}

// CreateCourse creates a course and patches the list cache and mirror
// without a refetch.
func (s *Store) CreateCourse(ctx context.Context, in models.CourseCreate) (*models.Course, error) {
	course, err := s.api.CreateCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	s.applyCourseCreate(*course)
	return course, nil
}

// UpdateCourse edits a course and map-replaces it in the list cache.
func (s *Store) UpdateCourse(ctx context.Context, courseID string, in models.CourseUpdate) (*models.Course, error) {
	course, err := s.api.UpdateCourse(ctx, courseID, in)
	if err != nil {
		return nil, err
	}
	s.applyCourseUpdate(*course)
	return course, nil
}

// DeleteCourse removes a course from the backend, the caches, and the
// mirror. The course's file-list key is independent and left alone.
func (s *Store) DeleteCourse(ctx context.Context, courseID string) error {
	if err := s.api.DeleteCourse(ctx, courseID); err != nil {
		return err
	}
	s.applyCourseDelete(courseID)
	return nil
}

// Categories returns the enumerated course categories, reading the
// mirror before going to the network; the list rarely changes.
func (s *Store) Categories(ctx context.Context) ([]models.CategoryOption, error) {
	return cache.GetTyped(ctx, s.cache, keyCategories, cache.Long, func(ctx context.Context) ([]models.CategoryOption, error) {
		var cached []models.CategoryOption
		if s.mirror.Get(mirror.KeyCategories, &cached) && len(cached) > 0 {
			return cached, nil
		}
		opts, err := s.api.GetCategories(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.mirror.Put(mirror.KeyCategories, opts)
		return opts, nil
	})
}

// mirrorCourses refreshes the mirrored course list and title index.
func (s *Store) mirrorCourses(courses []models.Course) {
	_ = s.mirror.Put(mirror.KeyCourses, courses)
	titles := make([]string, 0, len(courses))
	for _, c := range courses {
		titles = append(titles, c.Title)
	}
	_ = s.mirror.Put(mirror.KeyCourseTitles, titles)
}

func (s *Store) applyCourseCreate(course models.Course) {
	updated := patchList(s.cache, keyCourses, cache.Medium, func(old []models.Course) []models.Course {
		return append([]models.Course{course}, old...)
	})
	s.mirrorCourses(updated)
}

func (s *Store) applyCourseUpdate(course models.Course) {
	updated := patchList(s.cache, keyCourses, cache.Medium, func(old []models.Course) []models.Course {
		out := make([]models.Course, len(old))
		for i, c := range old {
			if c.ID == course.ID {
				out[i] = course
			} else {
				out[i] = c
			}
		}
		return out
	})
	s.cache.Patch(courseKey(course.ID), cache.Medium, func(any) any { return &course })
	s.mirrorCourses(updated)
}

func (s *Store) applyCourseDelete(courseID string) {
	updated := patchList(s.cache, keyCourses, cache.Medium, func(old []models.Course) []models.Course {
		out := make([]models.Course, 0, len(old))
		for _, c := range old {
			if c.ID != courseID {
				out = append(out, c)
			}
		}
		return out
	})
	s.cache.Remove(courseKey(courseID))
	s.mirrorCourses(updated)
	_ = s.mirror.Delete(mirror.FilesKey(courseID))
	s.mirror.RemoveID(mirror.KeyPinnedCourses, courseID)
}
