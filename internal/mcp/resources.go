// ABOUTME: MCP resource implementations
// ABOUTME: Read-only study data exposed as MCP resources

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         "studyhub://courses",
		Name:        "Courses",
		Description: "The user's course list",
		MIMEType:    "application/json",
	}, s.handleCoursesResource)

	s.mcp.AddResource(&mcp.Resource{
		URI:         "studyhub://agenda",
		Name:        "Agenda",
		Description: "Upcoming exams and open tasks",
		MIMEType:    "text/markdown",
	}, s.handleAgendaResource)

	// Dynamic resources for per-course data
	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "studyhub://courses/{course}/files",
		Name:        "Course Files",
		Description: "Files uploaded to a specific course",
		MIMEType:    "application/json",
	}, s.handleCourseFilesResource)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "studyhub://courses/{course}/notes",
		Name:        "Course Notes",
		Description: "Notes attached to a specific course",
		MIMEType:    "application/json",
	}, s.handleCourseNotesResource)
}

func (s *Server) handleCoursesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(courses, "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "studyhub://courses",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleAgendaResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exams, _ := s.store.Exams(ctx)
	tasks, _ := s.store.Tasks(ctx)

	var sb strings.Builder
	sb.WriteString("# Agenda\n\n")

	if len(exams) > 0 {
		sb.WriteString("## Exams\n\n")
		for _, e := range exams {
			sb.WriteString(fmt.Sprintf("- **%s** on %s (priority %d)\n", e.Title, e.ExamDate.Format("2006-01-02"), e.Priority))
		}
		sb.WriteString("\n")
	}

	open := 0
	for _, t := range tasks {
		if !t.Completed {
			open++
		}
	}
	if open > 0 {
		sb.WriteString("## Open Tasks\n\n")
		for _, t := range tasks {
			if t.Completed {
				continue
			}
			line := fmt.Sprintf("- %s", t.Title)
			if t.DueDate != "" {
				line += fmt.Sprintf(" (due %s)", t.DueDate)
			}
			sb.WriteString(line + "\n")
		}
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "studyhub://agenda",
			MIMEType: "text/markdown",
			Text:     sb.String(),
		}},
	}, nil
}

func (s *Server) handleCourseFilesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Extract course from URI
	parts := strings.Split(req.Params.URI, "/")
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid URI")
	}
	courseID := parts[3]

	files, err := s.store.Files(ctx, courseID)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(files, "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleCourseNotesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Extract course from URI
	parts := strings.Split(req.Params.URI, "/")
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid URI")
	}
	courseID := parts[3]

	notes, err := s.store.NotesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(notes, "", "  ")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
