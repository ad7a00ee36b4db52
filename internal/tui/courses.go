// ABOUTME: Courses pane for the dashboard
// ABOUTME: Lists cached courses with pin markers and cursor navigation

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
	"github.com/studyhub/studyhub/internal/store"
)

// CoursesLoadedMsg carries a refreshed course list
type CoursesLoadedMsg struct {
	Courses []models.Course
}

// FileCountsLoadedMsg carries per-course file counts for the stats row
type FileCountsLoadedMsg struct {
	Counts map[string]int
}

// CoursesModel is the courses pane state
type CoursesModel struct {
	store      *store.Store
	courses    []models.Course
	pinned     []string
	fileCounts map[string]int
	cursor     int
}

// NewCoursesModel creates a new courses pane seeded from the mirror
func NewCoursesModel(s *store.Store) CoursesModel {
	m := CoursesModel{store: s}
	m.courses = s.CoursesFallback()
	m.store.Mirror().Get(mirror.KeyPinnedCourses, &m.pinned)
	return m
}

// Load fetches courses through the cache
func (m CoursesModel) Load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		courses, err := m.store.Courses(ctx)
		if err != nil {
			return err
		}
		return CoursesLoadedMsg{Courses: courses}
	}
}

// LoadFileCounts aggregates file counts across the loaded courses.
// Per-course failures fall back to the mirror, so the stat renders
// even when a course's file list is unreachable.
func (m CoursesModel) LoadFileCounts() tea.Cmd {
	courses := m.courses
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return FileCountsLoadedMsg{Counts: m.store.FileCounts(ctx, courses)}
	}
}

// SetFileCounts replaces the per-course file counts
func (m *CoursesModel) SetFileCounts(counts map[string]int) {
	m.fileCounts = counts
}

// TotalFiles sums the loaded per-course counts
func (m *CoursesModel) TotalFiles() int {
	total := 0
	for _, n := range m.fileCounts {
		total += n
	}
	return total
}

// SetCourses replaces the list, clamping the cursor
func (m *CoursesModel) SetCourses(courses []models.Course) {
	m.courses = courses
	if m.cursor >= len(courses) {
		m.cursor = len(courses) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// MoveUp moves the cursor up
func (m *CoursesModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down
func (m *CoursesModel) MoveDown() {
	if m.cursor < len(m.courses)-1 {
		m.cursor++
	}
}

// Selected returns the course under the cursor, or nil
func (m *CoursesModel) Selected() *models.Course {
	if m.cursor < 0 || m.cursor >= len(m.courses) {
		return nil
	}
	return &m.courses[m.cursor]
}

// TogglePin flips the pin state of a course in the mirror
func (m *CoursesModel) TogglePin(id string) {
	m.store.Mirror().TogglePin(mirror.KeyPinnedCourses, id)
	m.pinned = nil
	m.store.Mirror().Get(mirror.KeyPinnedCourses, &m.pinned)
}

func (m *CoursesModel) isPinned(id string) bool {
	for _, p := range m.pinned {
		if p == id {
			return true
		}
	}
	return false
}

// View renders the pane
func (m CoursesModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	header := fmt.Sprintf("Courses (%d)", len(m.courses))
	if m.fileCounts != nil {
		header = fmt.Sprintf("Courses (%d) · %d files", len(m.courses), m.TotalFiles())
	}
	b.WriteString(title.Render(header))
	b.WriteString("\n\n")

	if len(m.courses) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No courses"))
		return b.String()
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	for i, c := range m.courses {
		line := c.Title
		if m.isPinned(c.ID) {
			line = "* " + line
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			b.WriteString(selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if i == m.cursor {
			if c.Description != "" {
				b.WriteString(dim.Render("    " + c.Description))
				b.WriteString("\n")
			}
			if n, ok := m.fileCounts[c.ID]; ok {
				b.WriteString(dim.Render(fmt.Sprintf("    %d files", n)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
