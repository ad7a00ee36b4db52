// ABOUTME: Course accessors over the campus API
// ABOUTME: CRUD plus the backend-owned category list

package api

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub/internal/models"
)

// ListCourses returns the caller's courses.
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	if err := c.get(ctx, "/courses/get_courses", &out); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}

// GetCourse returns a single course by id.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	var out models.Course
	if err := c.get(ctx, "/courses/get_course/"+courseID, &out); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &out, nil
}

// CreateCourse creates a course and returns the server's record.
func (c *Client) CreateCourse(ctx context.Context, in models.CourseCreate) (*models.Course, error) {
	var out models.Course
	if err := c.post(ctx, "/courses/create_course", in, &out); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	if err := models.Validate(&out); err != nil {
		return nil, fmt.Errorf("create course: %w: %v", ErrInvalidPayload, err)
	}
	return &out, nil
}

// UpdateCourse applies a partial edit and returns the updated record.
func (c *Client) UpdateCourse(ctx context.Context, courseID string, in models.CourseUpdate) (*models.Course, error) {
	var out models.Course
	if err := c.put(ctx, "/courses/edit_course/"+courseID, in, &out); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &out, nil
}

// DeleteCourse removes a course. File lists cached for the course are
// keyed independently and are not touched here.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	if err := c.del(ctx, "/courses/"+courseID, nil, nil); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// GetCategories returns the enumerated course categories.
func (c *Client) GetCategories(ctx context.Context) ([]models.CategoryOption, error) {
	var out []models.CategoryOption
	if err := c.get(ctx, "/courses/get_categories", &out); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return out, nil
}
