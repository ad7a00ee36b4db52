// ABOUTME: Tests for the store orchestration layer
// ABOUTME: Exercises cache patching, mirror writes, and batch behavior against a fake backend

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/studyhub/studyhub/internal/api"
	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

// backend is a minimal in-memory stand-in for the campus API.
type backend struct {
	mu       sync.Mutex
	nextID   int
	courses  []models.Course
	files    map[string][]models.File
	exams    []models.Exam
	tasks    []models.Task
	anns     []models.Announcement
	notes    []models.Note
	deleted  []string // image URLs released via the notes image endpoint
	requests map[string]int
	failPath string // requests with this path prefix answer 500
}

func newBackend() *backend {
	return &backend{
		files:    map[string][]models.File{},
		requests: map[string]int{},
	}
}

func (b *backend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *backend) count(pathPrefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for p, c := range b.requests {
		if strings.HasPrefix(p, pathPrefix) {
			n += c
		}
	}
	return n
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests[r.URL.Path]++

	if b.failPath != "" && strings.HasPrefix(r.URL.Path, b.failPath) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "induced failure"})
		return
	}

	switch {
	case r.URL.Path == "/courses/get_courses":
		json.NewEncoder(w).Encode(b.courses)

	case r.URL.Path == "/courses/create_course":
		var in models.CourseCreate
		json.NewDecoder(r.Body).Decode(&in)
		course := models.Course{ID: b.id("c"), Title: in.Title, Description: in.Description, Category: in.Category}
		b.courses = append(b.courses, course)
		json.NewEncoder(w).Encode(course)

	case strings.HasPrefix(r.URL.Path, "/courses/get_course/"):
		id := strings.TrimPrefix(r.URL.Path, "/courses/get_course/")
		for _, c := range b.courses {
			if c.ID == id {
				json.NewEncoder(w).Encode(c)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "course not found"})

	case strings.HasPrefix(r.URL.Path, "/courses/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Path, "/courses/")
		out := b.courses[:0]
		for _, c := range b.courses {
			if c.ID != id {
				out = append(out, c)
			}
		}
		b.courses = out
		w.WriteHeader(http.StatusNoContent)

	case strings.HasPrefix(r.URL.Path, "/files/upload_file/"):
		courseID := strings.TrimPrefix(r.URL.Path, "/files/upload_file/")
		_, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f := models.File{ID: b.id("f"), CourseID: courseID, FileName: header.Filename}
		b.files[courseID] = append(b.files[courseID], f)
		json.NewEncoder(w).Encode(f)

	case strings.HasPrefix(r.URL.Path, "/files/get_files/"):
		courseID := strings.TrimPrefix(r.URL.Path, "/files/get_files/")
		json.NewEncoder(w).Encode(map[string]any{"files": b.files[courseID]})

	case r.URL.Path == "/planing/get_exams":
		json.NewEncoder(w).Encode(b.exams)

	case r.URL.Path == "/planing/add_exam":
		var in models.ExamCreate
		json.NewDecoder(r.Body).Decode(&in)
		exam := models.Exam{ID: b.id("e"), Title: in.Title, ExamDate: in.ExamDate, Priority: in.Priority}
		b.exams = append(b.exams, exam)
		json.NewEncoder(w).Encode(exam)

	case r.URL.Path == "/tasks/get_tasks":
		json.NewEncoder(w).Encode(b.tasks)

	case r.URL.Path == "/tasks/create_task":
		var in models.TaskCreate
		json.NewDecoder(r.Body).Decode(&in)
		task := models.Task{ID: b.id("t"), Title: in.Title, Category: in.Category, DueDate: in.DueDate, Completed: in.Completed}
		b.tasks = append(b.tasks, task)
		json.NewEncoder(w).Encode(task)

	case strings.HasPrefix(r.URL.Path, "/tasks/update_task/"):
		id := strings.TrimPrefix(r.URL.Path, "/tasks/update_task/")
		var in models.TaskCreate
		json.NewDecoder(r.Body).Decode(&in)
		for i := range b.tasks {
			if b.tasks[i].ID == id {
				b.tasks[i].Title = in.Title
				b.tasks[i].Completed = in.Completed
				json.NewEncoder(w).Encode(b.tasks[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case r.URL.Path == "/announcements/create-announcements":
		var in models.AnnouncementCreate
		json.NewDecoder(r.Body).Decode(&in)
		ann := models.Announcement{
			ID:            b.id("a"),
			Title:         in.Title,
			Category:      in.Category,
			ContactMethod: in.ContactMethod,
			ContactValue:  in.ContactValue,
			Status:        models.StatusOpen,
		}
		b.anns = append(b.anns, ann)
		json.NewEncoder(w).Encode(ann)

	case r.URL.Path == "/announcements/announcements":
		open := []models.Announcement{}
		for _, a := range b.anns {
			if a.Status == models.StatusOpen {
				open = append(open, a)
			}
		}
		json.NewEncoder(w).Encode(open)

	case r.URL.Path == "/announcements/my_announcements":
		json.NewEncoder(w).Encode(b.anns)

	case strings.HasPrefix(r.URL.Path, "/announcements/toggle_status/"):
		id := strings.TrimPrefix(r.URL.Path, "/announcements/toggle_status/")
		for i := range b.anns {
			if b.anns[i].ID == id {
				if b.anns[i].Status == models.StatusOpen {
					b.anns[i].Status = models.StatusClosed
				} else {
					b.anns[i].Status = models.StatusOpen
				}
				json.NewEncoder(w).Encode(b.anns[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case r.URL.Path == "/notes/create_note":
		var in models.NoteCreate
		json.NewDecoder(r.Body).Decode(&in)
		note := models.Note{ID: b.id("n"), Title: in.Title, Content: in.Content, CourseID: in.CourseID}
		b.notes = append(b.notes, note)
		json.NewEncoder(w).Encode(note)

	case r.URL.Path == "/notes/get_notes":
		json.NewEncoder(w).Encode(b.notes)

	case strings.HasPrefix(r.URL.Path, "/notes/get_note/"):
		id := strings.TrimPrefix(r.URL.Path, "/notes/get_note/")
		for _, n := range b.notes {
			if n.ID == id {
				json.NewEncoder(w).Encode(n)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case strings.HasPrefix(r.URL.Path, "/notes/edit_note/"):
		id := strings.TrimPrefix(r.URL.Path, "/notes/edit_note/")
		var in models.NoteUpdate
		json.NewDecoder(r.Body).Decode(&in)
		for i := range b.notes {
			if b.notes[i].ID == id {
				if in.Title != "" {
					b.notes[i].Title = in.Title
				}
				if in.Content != nil {
					b.notes[i].Content = *in.Content
				}
				json.NewEncoder(w).Encode(b.notes[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case strings.HasPrefix(r.URL.Path, "/notes/delete_note/"):
		id := strings.TrimPrefix(r.URL.Path, "/notes/delete_note/")
		out := b.notes[:0]
		for _, n := range b.notes {
			if n.ID != id {
				out = append(out, n)
			}
		}
		b.notes = out
		w.WriteHeader(http.StatusNoContent)

	case r.URL.Path == "/notes/delete_image":
		var body struct {
			URL string `json:"url"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		b.deleted = append(b.deleted, body.URL)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "no route: " + r.URL.Path})
	}
}

func newTestStore(t *testing.T) (*Store, *backend) {
	t.Helper()

	b := newBackend()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, "")
	if err != nil {
		t.Fatalf("api.New failed: %v", err)
	}
	m, err := mirror.Open(filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("mirror.Open failed: %v", err)
	}

	s := New(client, cache.New(), m)
	t.Cleanup(s.Close)
	return s, b
}

func TestCreateCourseAppearsOnceInList(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Courses(ctx); err != nil {
		t.Fatalf("Courses failed: %v", err)
	}

	created, err := s.CreateCourse(ctx, models.CourseCreate{Title: "Algebra"})
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	count := 0
	for _, c := range courses {
		if c.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("created course appears %d times, want 1", count)
	}
}

func TestCreateCourseUpdatesMirrorTitles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Courses(ctx); err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	if _, err := s.CreateCourse(ctx, models.CourseCreate{Title: "Algebra"}); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	// The mirrored title index reflects the optimistic patch without
	// waiting for a refetch.
	titles := s.CourseTitles()
	found := false
	for _, title := range titles {
		if title == "Algebra" {
			found = true
		}
	}
	if !found {
		t.Errorf("mirror titles = %v, want Algebra present", titles)
	}
}

func TestCoursesFallbackFromMirror(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateCourse(ctx, models.CourseCreate{Title: "Physics"}); err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	fallback := s.CoursesFallback()
	if len(fallback) != 1 || fallback[0].Title != "Physics" {
		t.Errorf("fallback = %+v", fallback)
	}
}

func TestDeleteCourseScrubsEverywhere(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateCourse(ctx, models.CourseCreate{Title: "Chemistry"})
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	// Seed per-course state: mirrored files and a pin.
	if _, err := s.UploadFiles(ctx, created.ID, []Upload{{Name: "lab.pdf", R: strings.NewReader("x")}}); err != nil {
		t.Fatalf("UploadFiles failed: %v", err)
	}
	s.Mirror().TogglePin(mirror.KeyPinnedCourses, created.ID)

	if err := s.DeleteCourse(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	for _, c := range courses {
		if c.ID == created.ID {
			t.Error("deleted course still listed")
		}
	}

	var mirrored []models.Course
	s.Mirror().Get(mirror.KeyCourses, &mirrored)
	for _, c := range mirrored {
		if c.ID == created.ID {
			t.Error("deleted course still mirrored")
		}
	}

	var files []models.File
	if s.Mirror().Get(mirror.FilesKey(created.ID), &files) {
		t.Error("deleted course's file mirror survived")
	}
	if s.Mirror().IsPinned(mirror.KeyPinnedCourses, created.ID) {
		t.Error("deleted course still pinned")
	}
}

func TestDeleteCourseLeavesHeldListsIntact(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.CreateCourse(ctx, models.CourseCreate{Title: "Analysis"})
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}
	bCourse, err := s.CreateCourse(ctx, models.CourseCreate{Title: "Biology"})
	if err != nil {
		t.Fatalf("CreateCourse failed: %v", err)
	}

	held, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	if len(held) != 2 {
		t.Fatalf("got %d courses, want 2", len(held))
	}
	want := []string{held[0].ID, held[1].ID}

	// Deleting the head must not rewrite the backing array of a list a
	// caller already holds.
	if err := s.DeleteCourse(ctx, bCourse.ID); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	for i, id := range want {
		if held[i].ID != id {
			t.Errorf("held[%d] = %s, want %s", i, held[i].ID, id)
		}
	}

	courses, err := s.Courses(ctx)
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != a.ID {
		t.Errorf("courses after delete = %+v", courses)
	}
}

func TestUploadZeroFilesIsNoOp(t *testing.T) {
	s, b := newTestStore(t)

	files, err := s.UploadFiles(context.Background(), "c1", nil)
	if err != nil {
		t.Fatalf("UploadFiles failed: %v", err)
	}
	if files != nil {
		t.Errorf("got %v, want nil", files)
	}
	if n := b.count("/files/upload_file/"); n != 0 {
		t.Errorf("zero-file upload made %d requests", n)
	}
}

func TestUploadFilesPreservesOrder(t *testing.T) {
	s, _ := newTestStore(t)

	uploads := []Upload{
		{Name: "a.pdf", R: strings.NewReader("a")},
		{Name: "b.pdf", R: strings.NewReader("b")},
		{Name: "c.pdf", R: strings.NewReader("c")},
	}
	files, err := s.UploadFiles(context.Background(), "c1", uploads)
	if err != nil {
		t.Fatalf("UploadFiles failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i, want := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if files[i].FileName != want {
			t.Errorf("files[%d] = %s, want %s", i, files[i].FileName, want)
		}
	}

	// The cached list matches submission order too.
	cached, err := s.Files(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(cached) != 3 || cached[0].FileName != "a.pdf" {
		t.Errorf("cached = %+v", cached)
	}
}

func TestUploadFailureLeavesCacheUnpatched(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()

	// Prime the cache with an empty list.
	if _, err := s.Files(ctx, "c1"); err != nil {
		t.Fatalf("Files failed: %v", err)
	}

	b.failPath = "/files/upload_file/"
	_, err := s.UploadFiles(ctx, "c1", []Upload{{Name: "a.pdf", R: strings.NewReader("a")}})
	if err == nil {
		t.Fatal("upload against failing backend should error")
	}

	files, err := s.Files(ctx, "c1")
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("failed upload patched the cache: %+v", files)
	}
}

func TestFileCountsFallsBackToMirrorPerCourse(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()

	b.files["c1"] = []models.File{{ID: "f1", CourseID: "c1", FileName: "a.pdf"}}
	b.failPath = "/files/get_files/c2"

	// c2 is unreachable but was mirrored by an earlier session; its
	// mirrored list stands in so the aggregate still renders.
	_ = s.Mirror().Put(mirror.FilesKey("c2"), []models.File{
		{ID: "f2", CourseID: "c2", FileName: "b.pdf"},
		{ID: "f3", CourseID: "c2", FileName: "c.pdf"},
	})

	counts := s.FileCounts(ctx, []models.Course{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}})
	if counts["c1"] != 1 {
		t.Errorf("counts[c1] = %d, want 1", counts["c1"])
	}
	if counts["c2"] != 2 {
		t.Errorf("counts[c2] = %d, want 2 from mirror", counts["c2"])
	}
	if counts["c3"] != 0 {
		t.Errorf("counts[c3] = %d, want 0", counts["c3"])
	}
}

func TestAddExamsOrderAndDistinctIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ins := []models.ExamCreate{
		{Title: "Analysis", Priority: 1},
		{Title: "Algebra", Priority: 2},
		{Title: "Probability", Priority: 3},
	}
	created, err := s.AddExams(ctx, ins)
	if err != nil {
		t.Fatalf("AddExams failed: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("got %d exams, want 3", len(created))
	}

	seen := map[string]bool{}
	for i, e := range created {
		if e.Title != ins[i].Title {
			t.Errorf("exam[%d] = %s, want %s", i, e.Title, ins[i].Title)
		}
		if seen[e.ID] {
			t.Errorf("duplicate exam id %s", e.ID)
		}
		seen[e.ID] = true
	}

	// The cached list holds all three, in submission order.
	exams, err := s.Exams(ctx)
	if err != nil {
		t.Fatalf("Exams failed: %v", err)
	}
	if len(exams) != 3 || exams[0].Title != "Analysis" {
		t.Errorf("cached exams = %+v", exams)
	}
}

func TestAddExamsPartialFailureKeepsCreated(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()

	// First create succeeds, then the backend starts failing.
	first, err := s.AddExam(ctx, models.ExamCreate{Title: "Analysis", Priority: 1})
	if err != nil {
		t.Fatalf("AddExam failed: %v", err)
	}
	b.failPath = "/planing/add_exam"

	created, err := s.AddExams(ctx, []models.ExamCreate{{Title: "Algebra", Priority: 2}})
	if err == nil {
		t.Fatal("batch against failing backend should error")
	}
	if len(created) != 0 {
		t.Errorf("got %d created, want 0", len(created))
	}

	// The exam created before the failure is still cached.
	exams, err := s.Exams(ctx)
	if err != nil {
		t.Fatalf("Exams failed: %v", err)
	}
	if len(exams) != 1 || exams[0].ID != first.ID {
		t.Errorf("cached exams = %+v", exams)
	}
}

func TestToggleTaskFlipsCompletion(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, models.NewTaskCreate("read chapter 4"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Completed {
		t.Fatal("new task should start open")
	}

	toggled, err := s.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("toggle should complete the task")
	}

	// The list cache reflects the flip.
	tasks, err := s.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Errorf("cached tasks = %+v", tasks)
	}

	back, err := s.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if back.Completed {
		t.Error("second toggle should reopen the task")
	}
}

func TestToggleTaskUnknownID(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.ToggleTask(context.Background(), "missing"); err == nil {
		t.Error("toggling an unknown task should fail")
	}
}

func TestListsAreServedFromCacheWithinWindow(t *testing.T) {
	s, b := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Exams(ctx); err != nil {
		t.Fatalf("Exams failed: %v", err)
	}
	if _, err := s.Exams(ctx); err != nil {
		t.Fatalf("Exams failed: %v", err)
	}

	if n := b.count("/planing/get_exams"); n != 1 {
		t.Errorf("list fetched %d times within the fresh window, want 1", n)
	}
}
