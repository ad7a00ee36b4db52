// ABOUTME: Task reads and writes through the cache
// ABOUTME: Completion toggling reuses the update path

package store

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/models"
)

// Tasks returns the caller's tasks.
func (s *Store) Tasks(ctx context.Context) ([]models.Task, error) {
	return cache.GetTyped(ctx, s.cache, keyTasks, cache.Short, func(ctx context.Context) ([]models.Task, error) {
		return s.api.ListTasks(ctx)
	})
}

// CreateTask creates a task and appends it to the list cache.
func (s *Store) CreateTask(ctx context.Context, in models.TaskCreate) (*models.Task, error) {
	task, err := s.api.CreateTask(ctx, in)
	if err != nil {
		return nil, err
	}
	s.applyTaskAdd(*task)
	return task, nil
}

// UpdateTask replaces a task's fields and map-replaces it in the
// list cache.
func (s *Store) UpdateTask(ctx context.Context, taskID string, in models.TaskCreate) (*models.Task, error) {
	task, err := s.api.UpdateTask(ctx, taskID, in)
	if err != nil {
		return nil, err
	}
	s.applyTaskUpdate(*task)
	return task, nil
}

// ToggleTask flips a task's completion flag.
func (s *Store) ToggleTask(ctx context.Context, taskID string) (*models.Task, error) {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == taskID {
			return s.UpdateTask(ctx, taskID, models.TaskCreate{
				Title:       t.Title,
				Description: t.Description,
				Category:    t.Category,
				DueDate:     t.DueDate,
				Completed:   !t.Completed,
			})
		}
	}
	return nil, fmt.Errorf("task not found: %s", taskID)
}

// DeleteTask removes a task and filters it from the list cache.
func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	s.applyTaskDelete(taskID)
	return nil
}

func (s *Store) applyTaskAdd(task models.Task) {
	patchList(s.cache, keyTasks, cache.Short, func(old []models.Task) []models.Task {
		return append(old, task)
	})
}

func (s *Store) applyTaskUpdate(task models.Task) {
	patchList(s.cache, keyTasks, cache.Short, func(old []models.Task) []models.Task {
		out := make([]models.Task, len(old))
		for i, t := range old {
			if t.ID == task.ID {
				out[i] = task
			} else {
				out[i] = t
			}
		}
		return out
	})
}

func (s *Store) applyTaskDelete(taskID string) {
	patchList(s.cache, keyTasks, cache.Short, func(old []models.Task) []models.Task {
		out := make([]models.Task, 0, len(old))
		for _, t := range old {
			if t.ID != taskID {
				out = append(out, t)
			}
		}
		return out
	})
}
