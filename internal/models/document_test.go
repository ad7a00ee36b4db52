// ABOUTME: Tests for the rich-text document tree
// ABOUTME: Verifies validation, emptiness, and image URL extraction

package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func image(src string) Node {
	return Node{Type: "image", Attrs: map[string]any{"src": src}}
}

func paragraph(children ...Node) Node {
	return Node{Type: "paragraph", Content: children}
}

func TestEmptyDocument(t *testing.T) {
	d := EmptyDocument()
	if err := d.Validate(); err != nil {
		t.Errorf("empty document should validate: %v", err)
	}
	if !d.IsEmpty() {
		t.Error("empty document should report empty")
	}

	// The canonical empty document serializes with an empty array,
	// not null.
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"type":"doc","content":[]}` {
		t.Errorf("got %s", data)
	}
}

func TestValidateMissingRootType(t *testing.T) {
	d := Document{Content: []Node{paragraph()}}
	if err := d.Validate(); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("got %v, want ErrMalformedDocument", err)
	}
}

func TestImageURLs(t *testing.T) {
	d := Document{
		Type: "doc",
		Content: []Node{
			paragraph(Node{Type: "text", Text: "hello"}),
			image("https://cdn.example.com/a.png"),
			paragraph(
				image("https://cdn.example.com/b.png"),
				paragraph(image("https://cdn.example.com/c.png")),
			),
			// Duplicate and empty srcs are dropped.
			image("https://cdn.example.com/a.png"),
			{Type: "image", Attrs: map[string]any{"src": ""}},
			{Type: "image"},
		},
	}

	got := d.ImageURLs()
	want := []string{
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.png",
		"https://cdn.example.com/c.png",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("urls[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRemovedImageURLs(t *testing.T) {
	prev := Document{Type: "doc", Content: []Node{
		image("keep.png"),
		image("drop.png"),
		image("gone.png"),
	}}
	next := Document{Type: "doc", Content: []Node{
		image("keep.png"),
		image("new.png"),
	}}

	removed := next.RemovedImageURLs(prev)
	if len(removed) != 2 {
		t.Fatalf("got %v, want 2 removed", removed)
	}
	if removed[0] != "drop.png" || removed[1] != "gone.png" {
		t.Errorf("got %v", removed)
	}
}

func TestRemovedImageURLsNoneRemoved(t *testing.T) {
	d := Document{Type: "doc", Content: []Node{image("a.png")}}
	if removed := d.RemovedImageURLs(d); len(removed) != 0 {
		t.Errorf("got %v, want none", removed)
	}
}
