// ABOUTME: Exams pane for the dashboard
// ABOUTME: Lists upcoming exams with date and priority coloring

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

// ExamsLoadedMsg carries a refreshed exam list
type ExamsLoadedMsg struct {
	Exams []models.Exam
}

// ExamsModel is the exams pane state
type ExamsModel struct {
	store  *store.Store
	exams  []models.Exam
	cursor int
}

// NewExamsModel creates a new exams pane
func NewExamsModel(s *store.Store) ExamsModel {
	return ExamsModel{store: s}
}

// Load fetches exams through the cache
func (m ExamsModel) Load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		exams, err := m.store.Exams(ctx)
		if err != nil {
			return err
		}
		return ExamsLoadedMsg{Exams: exams}
	}
}

// SetExams replaces the list, clamping the cursor
func (m *ExamsModel) SetExams(exams []models.Exam) {
	m.exams = exams
	if m.cursor >= len(exams) {
		m.cursor = len(exams) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// MoveUp moves the cursor up
func (m *ExamsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down
func (m *ExamsModel) MoveDown() {
	if m.cursor < len(m.exams)-1 {
		m.cursor++
	}
}

func priorityStyle(p int) lipgloss.Style {
	switch {
	case p >= 4:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case p == 3:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	}
}

// View renders the pane
func (m ExamsModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	b.WriteString(title.Render(fmt.Sprintf("Exams (%d)", len(m.exams))))
	b.WriteString("\n\n")

	if len(m.exams) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No exams scheduled"))
		return b.String()
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	for i, e := range m.exams {
		marker := priorityStyle(e.Priority).Render(strings.Repeat("!", e.Priority))
		line := fmt.Sprintf("%s %s", e.Title, marker)
		if i == m.cursor {
			b.WriteString(selected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		b.WriteString(dim.Render("    " + e.ExamDate.Format("Mon Jan 2")))
		b.WriteString("\n")
	}

	return b.String()
}
