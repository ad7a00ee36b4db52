// ABOUTME: MCP tool implementations
// ABOUTME: Study data operations exposed as MCP tools

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/studyhub/studyhub/internal/models"
)

func (s *Server) registerTools() {
	// Course tools
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_courses",
		Description: "List the user's courses",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, s.handleListCourses)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_files",
		Description: "List files uploaded to a course",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"course_id":{"type":"string"}},"required":["course_id"]}`),
	}, s.handleListFiles)

	// Note tools
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List the user's notes",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, s.handleListNotes)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "read_note",
		Description: "Read a single note including its content",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"note_id":{"type":"string"}},"required":["note_id"]}`),
	}, s.handleReadNote)

	// Planning tools
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_exams",
		Description: "List scheduled exams",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, s.handleListExams)

	// Task tools
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_tasks",
		Description: "List the user's tasks",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
	}, s.handleListTasks)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "add_task",
		Description: "Add a task to the user's list",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"category":{"type":"string"},"due_date":{"type":"string","description":"Due date as YYYY-MM-DD"}},"required":["title"]}`),
	}, s.handleAddTask)
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

func toolJSON(v any) *mcp.CallToolResult {
	result, _ := json.Marshal(v)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(result)}},
	}
}

func (s *Server) handleListCourses(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(courses), nil
}

func (s *Server) handleListFiles(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		CourseID string `json:"course_id"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	files, err := s.store.Files(ctx, args.CourseID)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(files), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.store.Notes(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(notes), nil
}

func (s *Server) handleReadNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		NoteID string `json:"note_id"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	note, err := s.store.Note(ctx, args.NoteID)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(note), nil
}

func (s *Server) handleListExams(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exams, err := s.store.Exams(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(exams), nil
}

func (s *Server) handleListTasks(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(tasks), nil
}

func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		DueDate     string `json:"due_date"`
	}
	json.Unmarshal(req.Params.Arguments, &args)

	if args.DueDate != "" {
		if _, err := time.Parse("2006-01-02", args.DueDate); err != nil {
			return toolError(fmt.Errorf("due_date must be YYYY-MM-DD: %w", err)), nil
		}
	}

	create := models.NewTaskCreate(args.Title)
	create.Description = args.Description
	create.DueDate = args.DueDate
	if args.Category != "" {
		create.Category = args.Category
	}

	task, err := s.store.CreateTask(ctx, create)
	if err != nil {
		return toolError(err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Created task: %s (ID: %s)", task.Title, task.ID)}},
	}, nil
}
