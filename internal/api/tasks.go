// ABOUTME: Task accessors over the campus API
// ABOUTME: Plain CRUD; completion toggling is an update

package api

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub/internal/models"
)

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, in models.TaskCreate) (*models.Task, error) {
	var out models.Task
	if err := c.post(ctx, "/tasks/create_task", in, &out); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &out, nil
}

// ListTasks returns the caller's tasks.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := c.get(ctx, "/tasks/get_tasks", &out); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

// UpdateTask replaces a task's fields.
func (c *Client) UpdateTask(ctx context.Context, taskID string, in models.TaskCreate) (*models.Task, error) {
	var out models.Task
	if err := c.put(ctx, "/tasks/update_task/"+taskID, in, &out); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &out, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.del(ctx, "/tasks/delete_task/"+taskID, nil, nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
