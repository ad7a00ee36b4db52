// ABOUTME: Exam planning accessors
// ABOUTME: Exam CRUD plus the derived PDF study plan

package api

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub/internal/models"
)

// ListExams returns the caller's planned exams.
func (c *Client) ListExams(ctx context.Context) ([]models.Exam, error) {
	var out []models.Exam
	if err := c.get(ctx, "/planing/get_exams", &out); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return out, nil
}

// AddExam creates one exam and returns the server's record.
func (c *Client) AddExam(ctx context.Context, in models.ExamCreate) (*models.Exam, error) {
	var out models.Exam
	if err := c.post(ctx, "/planing/add_exam", in, &out); err != nil {
		return nil, fmt.Errorf("add exam: %w", err)
	}
	if err := models.Validate(&out); err != nil {
		return nil, fmt.Errorf("add exam: %w: %v", ErrInvalidPayload, err)
	}
	return &out, nil
}

// DeleteExam removes an exam.
func (c *Client) DeleteExam(ctx context.Context, examID string) error {
	if err := c.del(ctx, "/planing/delete_exam/"+examID, nil, nil); err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	return nil
}

// GeneratePlan asks the backend to derive a PDF study plan from the
// current exams.
func (c *Client) GeneratePlan(ctx context.Context) ([]byte, error) {
	data, err := c.getBlob(ctx, "/planing/generate_plan")
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	return data, nil
}
