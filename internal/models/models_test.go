// ABOUTME: Tests for domain models and validation
// ABOUTME: Verifies constructors, JSON shapes, and the custom validators

package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"valid", Profile{FullName: "Amal", AcademicLevel: "CP1"}, false},
		{"valid with specialization", Profile{FullName: "Amal", AcademicLevel: "GI1", Specialization: Specializations[0]}, false},
		{"missing name", Profile{AcademicLevel: "CP1"}, true},
		{"bad level", Profile{FullName: "Amal", AcademicLevel: "PhD"}, true},
		{"bad specialization", Profile{FullName: "Amal", AcademicLevel: "GI1", Specialization: "Astrology"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.profile)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateExamPriority(t *testing.T) {
	exam := Exam{Title: "Calculus", Priority: 3}
	if err := Validate(&exam); err != nil {
		t.Errorf("priority 3 should validate: %v", err)
	}

	exam.Priority = 0
	if err := Validate(&exam); err == nil {
		t.Error("priority 0 should fail")
	}
	exam.Priority = 6
	if err := Validate(&exam); err == nil {
		t.Error("priority 6 should fail")
	}
}

func TestValidateAnnouncement(t *testing.T) {
	ann := Announcement{Title: "Need help", ContactMethod: ContactEmail, Status: StatusOpen}
	if err := Validate(&ann); err != nil {
		t.Errorf("valid announcement failed: %v", err)
	}

	ann.ContactMethod = "carrier-pigeon"
	if err := Validate(&ann); err == nil {
		t.Error("unknown contact method should fail")
	}
}

func TestAnnouncementJSONUsesBackendFieldNames(t *testing.T) {
	data, err := json.Marshal(AnnouncementCreate{Title: "t", Category: "Math", ContactMethod: ContactEmail})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	// The backend spells the category field without the trailing g-r-y.
	var m map[string]any
	json.Unmarshal(data, &m)
	if _, ok := m["categorie"]; !ok {
		t.Errorf("missing categorie field in %s", data)
	}
	if _, ok := m["category"]; ok {
		t.Errorf("unexpected category field in %s", data)
	}
}

func TestTaskJSONIDField(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"task_id":"t-9","title":"read"}`), &task); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if task.ID != "t-9" {
		t.Errorf("ID = %q, want t-9", task.ID)
	}
}

func TestNewNoteCreateDefaultsToEmptyDocument(t *testing.T) {
	in := NewNoteCreate("My note", "c1")
	if in.Content.Type != "doc" {
		t.Errorf("Content.Type = %q, want doc", in.Content.Type)
	}
	if !in.Content.IsEmpty() {
		t.Error("new note content should be empty")
	}
}

func TestNewExamCreateDefaultPriority(t *testing.T) {
	in := NewExamCreate("Calculus", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	if in.Priority != 3 {
		t.Errorf("Priority = %d, want 3", in.Priority)
	}
}

func TestNewTaskCreateDefaultCategory(t *testing.T) {
	in := NewTaskCreate("read chapter 4")
	if in.Category != "General" {
		t.Errorf("Category = %q, want General", in.Category)
	}
}

func TestNewUserMessage(t *testing.T) {
	m := NewUserMessage("conv-1", "hello")
	if m.ID == "" {
		t.Error("message should get a generated id")
	}
	if m.Role != RoleUser {
		t.Errorf("Role = %q, want %q", m.Role, RoleUser)
	}
	if m.ConversationID != "conv-1" {
		t.Errorf("ConversationID = %q", m.ConversationID)
	}

	// Ids must be distinct across messages.
	if NewUserMessage("conv-1", "hello").ID == m.ID {
		t.Error("two messages share an id")
	}
}
