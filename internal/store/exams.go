// ABOUTME: Exam planning reads and writes
// ABOUTME: Batch submission posts sequentially so cache order matches form order

package store

import (
	"context"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/models"
)

// Exams returns the caller's planned exams.
func (s *Store) Exams(ctx context.Context) ([]models.Exam, error) {
	return cache.GetTyped(ctx, s.cache, keyExams, cache.Short, func(ctx context.Context) ([]models.Exam, error) {
		return s.api.ListExams(ctx)
	})
}

// AddExam creates one exam and appends it to the list cache.
func (s *Store) AddExam(ctx context.Context, in models.ExamCreate) (*models.Exam, error) {
	exam, err := s.api.AddExam(ctx, in)
	if err != nil {
		return nil, err
	}
	s.applyExamAdd(*exam)
	return exam, nil
}

// AddExams submits a batch of exams one by one, in submission order.
// On failure the exams created so far are returned with the error;
// they are already cached.
func (s *Store) AddExams(ctx context.Context, ins []models.ExamCreate) ([]models.Exam, error) {
	created := make([]models.Exam, 0, len(ins))
	for _, in := range ins {
		exam, err := s.AddExam(ctx, in)
		if err != nil {
			return created, err
		}
		created = append(created, *exam)
	}
	return created, nil
}

// DeleteExam removes an exam and filters it from the list cache.
func (s *Store) DeleteExam(ctx context.Context, examID string) error {
	if err := s.api.DeleteExam(ctx, examID); err != nil {
		return err
	}
	s.applyExamDelete(examID)
	return nil
}

// GeneratePlan returns the backend-derived PDF study plan.
func (s *Store) GeneratePlan(ctx context.Context) ([]byte, error) {
	return s.api.GeneratePlan(ctx)
}

func (s *Store) applyExamAdd(exam models.Exam) {
	patchList(s.cache, keyExams, cache.Short, func(old []models.Exam) []models.Exam {
		return append(old, exam)
	})
}

func (s *Store) applyExamDelete(examID string) {
	patchList(s.cache, keyExams, cache.Short, func(old []models.Exam) []models.Exam {
		out := make([]models.Exam, 0, len(old))
		for _, e := range old {
			if e.ID != examID {
				out = append(out, e)
			}
		}
		return out
	})
}
