// ABOUTME: Store ties the API client, query cache, and local mirror together
// ABOUTME: Every mutation patches cache and mirror in a single apply step

package store

import (
	"github.com/studyhub/studyhub/internal/api"
	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/mirror"
)

// Cache keys, one per resource collection or single resource.
const (
	keyCourses       = "courses:list"
	keyCategories    = "courses:categories"
	keyNotes         = "notes:list"
	keyExams         = "exams:list"
	keyTasks         = "tasks:list"
	keyBoard         = "announcements:open"
	keyMyBoard       = "announcements:mine"
	keyProfile       = "profile:me"
	keyConversations = "chat:conversations"
)

func courseKey(id string) string      { return "courses:detail:" + id }
func filesKey(courseID string) string { return "files:course:" + courseID }
func noteKey(id string) string        { return "notes:detail:" + id }
func courseNotesKey(id string) string { return "notes:course:" + id }
func messagesKey(convID string) string {
	return "chat:messages:" + convID
}

// Store is the data layer handed to commands and the TUI. It is
// constructed at startup and closed at shutdown; nothing here is a
// package-level singleton.
type Store struct {
	api    *api.Client
	cache  *cache.Cache
	mirror *mirror.Store
}

// New assembles a store from its three collaborators.
func New(client *api.Client, c *cache.Cache, m *mirror.Store) *Store {
	return &Store{api: client, cache: c, mirror: m}
}

// Close releases the cache janitor and the mirror database.
func (s *Store) Close() {
	s.cache.Close()
	_ = s.mirror.Close()
}

// API exposes the adapter for the auth paths that bypass caching.
func (s *Store) API() *api.Client {
	return s.api
}

// Mirror exposes the local mirror for pin/recent id sets.
func (s *Store) Mirror() *mirror.Store {
	return s.mirror
}

// patchList applies a typed optimistic patch to a list-shaped key
// under the domain's cache window. A never-fetched key patches from an
// empty list.
func patchList[T any](c *cache.Cache, key string, ttl cache.TTL, fn func([]T) []T) []T {
	var result []T
	c.Patch(key, ttl, func(old any) any {
		list, _ := old.([]T)
		result = fn(list)
		return result
	})
	return result
}
