// ABOUTME: Rich-text document tree as an opaque, validated structure
// ABOUTME: Walks nodes to extract embedded image URLs for cleanup

package models

import "errors"

// Node is one node of a rich-text document tree. The editor's schema is
// opaque to the client; only the root shape and image nodes matter here.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Text    string         `json:"text,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// Document is the root of a note's content. A well-formed document
// always has a root type, even when empty.
type Document struct {
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// ErrMalformedDocument reports a document without a root type.
var ErrMalformedDocument = errors.New("malformed document: missing root type")

// EmptyDocument returns the canonical empty note content.
func EmptyDocument() Document {
	return Document{Type: "doc", Content: []Node{}}
}

// Validate checks that the document has a root type.
func (d Document) Validate() error {
	if d.Type == "" {
		return ErrMalformedDocument
	}
	return nil
}

// IsEmpty reports whether the document has no child nodes.
func (d Document) IsEmpty() bool {
	return len(d.Content) == 0
}

// ImageURLs collects the src of every image node, depth first,
// deduplicated in encounter order.
func (d Document) ImageURLs() []string {
	var urls []string
	seen := map[string]bool{}
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.Type == "image" {
				if src, ok := n.Attrs["src"].(string); ok && src != "" && !seen[src] {
					seen[src] = true
					urls = append(urls, src)
				}
			}
			walk(n.Content)
		}
	}
	walk(d.Content)
	return urls
}

// RemovedImageURLs returns the image URLs present in prev but absent
// from the receiver, i.e. the images an edit dropped.
func (d Document) RemovedImageURLs(prev Document) []string {
	current := map[string]bool{}
	for _, u := range d.ImageURLs() {
		current[u] = true
	}
	var removed []string
	for _, u := range prev.ImageURLs() {
		if !current[u] {
			removed = append(removed, u)
		}
	}
	return removed
}
