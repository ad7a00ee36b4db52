// ABOUTME: Main Bubble Tea dashboard model
// ABOUTME: Coordinates three-pane layout over courses, exams, and tasks

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studyhub/studyhub/internal/store"
)

// Pane represents which pane is focused
type Pane int

const (
	CoursesPane Pane = iota
	ExamsPane
	TasksPane
)

// Model is the main dashboard state
type Model struct {
	store      *store.Store
	activePane Pane
	width      int
	height     int
	courses    CoursesModel
	exams      ExamsModel
	tasks      TasksModel
	err        error
}

// NewModel creates a new dashboard model
func NewModel(s *store.Store) Model {
	return Model{
		store:      s,
		activePane: CoursesPane,
		courses:    NewCoursesModel(s),
		exams:      NewExamsModel(s),
		tasks:      NewTasksModel(s),
	}
}

// Init starts the initial loads; the courses pane seeds itself from
// the mirror so something renders before the network answers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.courses.Load(), m.exams.Load(), m.tasks.Load())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateNavigation(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CoursesLoadedMsg:
		m.courses.SetCourses(msg.Courses)
		return m, m.courses.LoadFileCounts()

	case FileCountsLoadedMsg:
		m.courses.SetFileCounts(msg.Counts)
		return m, nil

	case ExamsLoadedMsg:
		m.exams.SetExams(msg.Exams)
		return m, nil

	case TasksLoadedMsg:
		m.tasks.SetTasks(msg.Tasks)
		return m, nil

	case TaskToggledMsg:
		m.tasks.Replace(msg.Task)
		return m, nil

	case error:
		m.err = msg
		return m, nil
	}

	return m, nil
}

func (m Model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.activePane = (m.activePane + 1) % 3
		return m, nil

	case "shift+tab":
		m.activePane = (m.activePane + 2) % 3
		return m, nil

	case "j", "down":
		switch m.activePane {
		case CoursesPane:
			m.courses.MoveDown()
		case ExamsPane:
			m.exams.MoveDown()
		case TasksPane:
			m.tasks.MoveDown()
		}
		return m, nil

	case "k", "up":
		switch m.activePane {
		case CoursesPane:
			m.courses.MoveUp()
		case ExamsPane:
			m.exams.MoveUp()
		case TasksPane:
			m.tasks.MoveUp()
		}
		return m, nil

	case "enter", " ":
		if m.activePane == TasksPane {
			if task := m.tasks.Selected(); task != nil {
				return m, m.tasks.Toggle(task.ID)
			}
		}
		return m, nil

	case "p":
		if m.activePane == CoursesPane {
			if course := m.courses.Selected(); course != nil {
				m.courses.TogglePin(course.ID)
			}
		}
		return m, nil

	case "r":
		return m, tea.Batch(m.courses.Load(), m.exams.Load(), m.tasks.Load())
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	coursesWidth := m.width / 3
	examsWidth := m.width / 3
	tasksWidth := m.width - coursesWidth - examsWidth

	activeStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86"))

	inactiveStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	coursesStyle := inactiveStyle
	examsStyle := inactiveStyle
	tasksStyle := inactiveStyle

	switch m.activePane {
	case CoursesPane:
		coursesStyle = activeStyle
	case ExamsPane:
		examsStyle = activeStyle
	case TasksPane:
		tasksStyle = activeStyle
	}

	coursesView := coursesStyle.Width(coursesWidth - 2).Height(m.height - 4).Render(m.courses.View())
	examsView := examsStyle.Width(examsWidth - 2).Height(m.height - 4).Render(m.exams.View())
	tasksView := tasksStyle.Width(tasksWidth - 2).Height(m.height - 4).Render(m.tasks.View())

	main := lipgloss.JoinHorizontal(lipgloss.Top, coursesView, examsView, tasksView)

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[tab] switch pane  [j/k] navigate  [enter] toggle task  [p] pin course  [r] refresh  [q] quit")

	if m.err != nil {
		status = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render("Error: " + m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, status)
}

// Run starts the dashboard
func Run(s *store.Store) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
