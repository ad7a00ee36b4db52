// ABOUTME: Tasks pane for the dashboard
// ABOUTME: Lists tasks with completion toggling from the keyboard

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studyhub/studyhub/internal/models"
	"github.com/studyhub/studyhub/internal/store"
)

// TasksLoadedMsg carries a refreshed task list
type TasksLoadedMsg struct {
	Tasks []models.Task
}

// TaskToggledMsg carries a task after its completion flag flipped
type TaskToggledMsg struct {
	Task models.Task
}

// TasksModel is the tasks pane state
type TasksModel struct {
	store  *store.Store
	tasks  []models.Task
	cursor int
}

// NewTasksModel creates a new tasks pane
func NewTasksModel(s *store.Store) TasksModel {
	return TasksModel{store: s}
}

// Load fetches tasks through the cache
func (m TasksModel) Load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tasks, err := m.store.Tasks(ctx)
		if err != nil {
			return err
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

// Toggle flips a task's completion on the server
func (m TasksModel) Toggle(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		task, err := m.store.ToggleTask(ctx, id)
		if err != nil {
			return err
		}
		return TaskToggledMsg{Task: *task}
	}
}

// SetTasks replaces the list, clamping the cursor
func (m *TasksModel) SetTasks(tasks []models.Task) {
	m.tasks = tasks
	if m.cursor >= len(tasks) {
		m.cursor = len(tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Replace swaps a single task in place by id
func (m *TasksModel) Replace(task models.Task) {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = task
			return
		}
	}
}

// MoveUp moves the cursor up
func (m *TasksModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down
func (m *TasksModel) MoveDown() {
	if m.cursor < len(m.tasks)-1 {
		m.cursor++
	}
}

// Selected returns the task under the cursor, or nil
func (m *TasksModel) Selected() *models.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

// View renders the pane
func (m TasksModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	b.WriteString(title.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No tasks"))
		return b.String()
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	done := lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	for i, t := range m.tasks {
		check := "[ ]"
		label := t.Title
		if t.Completed {
			check = "[x]"
			label = done.Render(label)
		}
		line := fmt.Sprintf("%s %s", check, label)
		if i == m.cursor {
			b.WriteString(selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if t.DueDate != "" {
			b.WriteString(dim.Render("      due " + t.DueDate))
			b.WriteString("\n")
		}
	}

	return b.String()
}
