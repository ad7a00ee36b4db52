// ABOUTME: Note CLI commands
// ABOUTME: Implements note list, new, show, edit, rm, pin with rich-text documents as JSON

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  "Create, list, edit, and remove rich-text notes.",
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes",
	RunE:  runNoteList,
}

var noteNewCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteNew,
}

var noteShowCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show a note including its content",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Edit a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRm,
}

var notePinCmd = &cobra.Command{
	Use:   "pin <note-id>",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotePin,
}

var (
	noteCourseID    string
	noteTitle       string
	noteContentFile string
)

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteListCmd, noteNewCmd, noteShowCmd, noteEditCmd, noteRmCmd, notePinCmd)

	noteListCmd.Flags().StringVar(&noteCourseID, "course", "", "only notes of this course")
	noteNewCmd.Flags().StringVar(&noteCourseID, "course", "", "attach the note to a course")
	noteEditCmd.Flags().StringVar(&noteTitle, "title", "", "new title")
	noteEditCmd.Flags().StringVar(&noteCourseID, "course", "", "move the note to a course")
	noteEditCmd.Flags().StringVar(&noteContentFile, "content-file", "", "JSON document file replacing the content")
}

// loadDocument reads and validates a rich-text document from a file.
func loadDocument(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document in %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document in %s: %w", path, err)
	}
	return &doc, nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	var notes []models.Note
	var err error
	if noteCourseID != "" {
		notes, err = appStore.NotesByCourse(cmd.Context(), noteCourseID)
	} else {
		notes, err = appStore.Notes(cmd.Context())
	}
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOURSE\tUPDATED\tPINNED")
	for _, n := range notes {
		pinned := ""
		if appStore.Mirror().IsPinned(mirror.KeyPinnedNotes, n.ID) {
			pinned = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Title, n.CourseID, n.UpdatedAt.Format("2006-01-02"), pinned)
	}
	return w.Flush()
}

func runNoteNew(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	note, err := appStore.CreateNote(cmd.Context(), models.NewNoteCreate(args[0], noteCourseID))
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	color.Green("Created note: %s", note.Title)
	fmt.Printf("ID: %s\n", note.ID)
	return nil
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	note, err := appStore.Note(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Note: %s\n", note.Title)
	if note.CourseID != "" {
		fmt.Printf("Course: %s\n", note.CourseID)
	}
	fmt.Printf("Updated at: %s\n", note.UpdatedAt.Format("2006-01-02 15:04"))

	if note.Content.IsEmpty() {
		fmt.Println("\n(empty)")
		return nil
	}

	data, err := json.MarshalIndent(note.Content, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", data)
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if noteTitle == "" && noteCourseID == "" && noteContentFile == "" {
		return fmt.Errorf("nothing to change; pass --title, --course, or --content-file")
	}

	update := models.NoteUpdate{Title: noteTitle, CourseID: noteCourseID}

	if noteContentFile != "" {
		doc, err := loadDocument(noteContentFile)
		if err != nil {
			return err
		}
		update.Content = doc

		// Content replacement goes through image cleanup so files for
		// removed images are released on the server.
		prev, err := appStore.Note(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		note, err := appStore.UpdateNoteWithImageCleanup(cmd.Context(), args[0], update, prev.Content)
		if err != nil {
			return err
		}
		color.Green("Updated note: %s", note.Title)
		return nil
	}

	note, err := appStore.UpdateNote(cmd.Context(), args[0], update)
	if err != nil {
		return err
	}

	color.Green("Updated note: %s", note.Title)
	return nil
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := appStore.DeleteNote(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Yellow("Deleted note: %s", args[0])
	return nil
}

func runNotePin(cmd *cobra.Command, args []string) error {
	pinned := appStore.Mirror().TogglePin(mirror.KeyPinnedNotes, args[0])
	if pinned {
		color.Green("Pinned note: %s", args[0])
	} else {
		color.Yellow("Unpinned note: %s", args[0])
	}
	return nil
}
