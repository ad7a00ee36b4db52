// ABOUTME: Mirror key names and the derived pin/recent id sets
// ABOUTME: The mirror doubles as a denormalized index shared across commands

package mirror

// Keys for mirrored cache entries and derived sets. Per-course keys
// embed the course id.
const (
	KeyCourses       = "user_courses"
	KeyCourseTitles  = "user_course_titles"
	KeyCategories    = "course_categories"
	KeyPinnedCourses = "pinned_courses"
	KeyPinnedNotes   = "pinned_notes"
	KeyRecentCourses = "recent_courses"
)

// MaxRecentCourses caps the recently-opened list.
const MaxRecentCourses = 5

// FilesKey returns the mirror key for a course's file list.
func FilesKey(courseID string) string {
	return "course_files:" + courseID
}

// PinnedItemsKey returns the mirror key for a course's pinned file ids.
func PinnedItemsKey(courseID string) string {
	return "pinned_items:" + courseID
}

// TogglePin flips id's membership in the id set stored under key and
// reports whether the id is pinned afterwards.
func (s *Store) TogglePin(key, id string) bool {
	var ids []string
	s.Get(key, &ids)

	for i, v := range ids {
		if v == id {
			ids = append(ids[:i], ids[i+1:]...)
			_ = s.Put(key, ids)
			return false
		}
	}
	ids = append(ids, id)
	_ = s.Put(key, ids)
	return true
}

// IsPinned reports whether id is in the set stored under key.
func (s *Store) IsPinned(key, id string) bool {
	var ids []string
	if !s.Get(key, &ids) {
		return false
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// TouchRecentCourse moves id to the head of the recently-opened list,
// keeping at most MaxRecentCourses entries.
func (s *Store) TouchRecentCourse(id string) {
	var ids []string
	s.Get(KeyRecentCourses, &ids)

	out := []string{id}
	for _, v := range ids {
		if v != id && len(out) < MaxRecentCourses {
			out = append(out, v)
		}
	}
	_ = s.Put(KeyRecentCourses, out)
}

// RecentCourses returns the recently-opened course ids, most recent
// first.
func (s *Store) RecentCourses() []string {
	var ids []string
	s.Get(KeyRecentCourses, &ids)
	return ids
}

// RemoveID drops id from the id set stored under key.
func (s *Store) RemoveID(key, id string) {
	var ids []string
	if !s.Get(key, &ids) {
		return
	}
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	_ = s.Put(key, out)
}
