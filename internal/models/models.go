// ABOUTME: Cached entity types mirrored from the campus API
// ABOUTME: Provides create-payload constructors, enums, and payload validation

package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Academic levels accepted by the backend.
var AcademicLevels = []string{"CP1", "CP2", "GI1", "GI2", "GI3"}

// Specializations accepted by the backend for engineering years.
var Specializations = []string{
	"Ingénierie Informatique et Réseaux",
	"Génie Electrique et Systèmes Intelligents",
	"Génie Civil, Bâtiments et Travaux Publics (BTP)",
	"Génie Industriel",
	"Génie Financier",
}

// Contact methods for help announcements.
const (
	ContactEmail = "email"
	ContactPhone = "phone"
)

// Help announcement statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("academic_level", func(fl validator.FieldLevel) bool {
		return contains(AcademicLevels, fl.Field().String())
	})
	_ = v.RegisterValidation("specialization", func(fl validator.FieldLevel) bool {
		return contains(Specializations, fl.Field().String())
	})
	return v
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Validate checks a payload against its declared invariants.
func Validate(v any) error {
	return validate.Struct(v)
}

// Course is a course record owned by the backend.
type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	Category       string    `json:"category,omitempty"`
	UserID         string    `json:"user_id"`
	AcademicLevel  string    `json:"academic_level,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CourseCreate is the payload for creating a course.
type CourseCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// CourseUpdate is a partial course edit. Empty fields are left untouched.
type CourseUpdate struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// CategoryOption is one entry of the backend's course-category list.
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// File is a stored course file. Preview and download URLs are issued
// separately and address the file by name, not id.
type File struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

// Note is a rich-text note, optionally linked to a course.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title" validate:"required"`
	Content   Document  `json:"content"`
	CourseID  string    `json:"course_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteCreate is the payload for creating a note.
type NoteCreate struct {
	Title    string   `json:"title"`
	Content  Document `json:"content"`
	CourseID string   `json:"course_id,omitempty"`
}

// NoteUpdate is a partial note edit.
type NoteUpdate struct {
	Title    string    `json:"title,omitempty"`
	Content  *Document `json:"content,omitempty"`
	CourseID string    `json:"course_id,omitempty"`
}

// NewNoteCreate builds a note payload, defaulting to an empty document.
func NewNoteCreate(title, courseID string) NoteCreate {
	return NoteCreate{Title: title, Content: EmptyDocument(), CourseID: courseID}
}

// Exam is a planned exam with priority 1 (highest) to 5 (lowest).
type Exam struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title" validate:"required"`
	ExamDate  time.Time `json:"exam_date"`
	Priority  int       `json:"priority" validate:"min=1,max=5"`
	CreatedAt time.Time `json:"created_at"`
}

// ExamCreate is the payload for adding an exam.
type ExamCreate struct {
	Title    string    `json:"title"`
	ExamDate time.Time `json:"exam_date"`
	Priority int       `json:"priority"`
}

// NewExamCreate builds an exam payload with the default middle priority.
func NewExamCreate(title string, date time.Time) ExamCreate {
	return ExamCreate{Title: title, ExamDate: date, Priority: 3}
}

// Task is a to-do item.
type Task struct {
	ID          string `json:"task_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date,omitempty"`
	Completed   bool   `json:"completed"`
}

// TaskCreate is the payload for creating or updating a task.
// DueDate is a bare date (2006-01-02), not a timestamp.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date,omitempty"`
	Completed   bool   `json:"completed"`
}

// NewTaskCreate builds a task payload with the backend's default category.
func NewTaskCreate(title string) TaskCreate {
	return TaskCreate{Title: title, Category: "General"}
}

// Announcement is a peer help request on the board. FullName and
// ImageURL are denormalized from the owner's profile.
type Announcement struct {
	ID            string    `json:"id"`
	Title         string    `json:"title" validate:"required"`
	Category      string    `json:"categorie"`
	ContactMethod string    `json:"contact_method" validate:"oneof=email phone"`
	ContactValue  string    `json:"contact_value"`
	Status        string    `json:"status" validate:"oneof=open closed"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnnouncementCreate is the payload for posting a help request.
// ContactValue may be empty when the method is email; the backend
// falls back to the account email.
type AnnouncementCreate struct {
	Title         string `json:"title"`
	Category      string `json:"categorie"`
	ContactMethod string `json:"contact_method"`
	ContactValue  string `json:"contact_value,omitempty"`
	Status        string `json:"status,omitempty"`
}

// NewAnnouncementCreate builds an open announcement payload.
func NewAnnouncementCreate(title, category, method, value string) AnnouncementCreate {
	return AnnouncementCreate{
		Title:         title,
		Category:      category,
		ContactMethod: method,
		ContactValue:  value,
		Status:        StatusOpen,
	}
}

// AnnouncementUpdate is a partial announcement edit.
type AnnouncementUpdate struct {
	Title         string `json:"title,omitempty"`
	Category      string `json:"categorie,omitempty"`
	ContactMethod string `json:"contact_method,omitempty"`
	ContactValue  string `json:"contact_value,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Profile is the account profile behind the session.
type Profile struct {
	FullName        string `json:"full_name" validate:"required"`
	AcademicLevel   string `json:"academic_level" validate:"academic_level"`
	Specialization  string `json:"specialization,omitempty" validate:"omitempty,specialization"`
	IsAnonymous     bool   `json:"is_anonymous"`
	Email           string `json:"email,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	ProfileComplete bool   `json:"profile_complete,omitempty"`
}

// Conversation is a saved AI chat conversation.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn of an AI conversation.
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserMessage creates a user chat turn with a generated id, for
// sending to the AI endpoint before the server has persisted it.
func NewUserMessage(conversationID, content string) ChatMessage {
	return ChatMessage{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           RoleUser,
		Content:        content,
		CreatedAt:      time.Now(),
	}
}
