// ABOUTME: Course CLI commands
// ABOUTME: Implements course list, new, show, edit, rm, categories, pin, recent

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/models"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
	Long:  "Create, list, edit, and remove courses.",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your courses",
	RunE:  runCourseList,
}

var courseNewCmd = &cobra.Command{
	Use:   "new <title> [description]",
	Short: "Create a new course",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCourseNew,
}

var courseShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show course details",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseShow,
}

var courseEditCmd = &cobra.Command{
	Use:   "edit <course-id>",
	Short: "Edit a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseEdit,
}

var courseRmCmd = &cobra.Command{
	Use:   "rm <course-id>",
	Short: "Delete a course and its files",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseRm,
}

var courseCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List available course categories",
	RunE:  runCourseCategories,
}

var coursePinCmd = &cobra.Command{
	Use:   "pin <course-id>",
	Short: "Pin or unpin a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoursePin,
}

var courseRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened courses",
	RunE:  runCourseRecent,
}

var (
	courseCategory    string
	courseTitle       string
	courseDescription string
)

func init() {
	rootCmd.AddCommand(courseCmd)
	courseCmd.AddCommand(courseListCmd, courseNewCmd, courseShowCmd, courseEditCmd,
		courseRmCmd, courseCategoriesCmd, coursePinCmd, courseRecentCmd)

	courseNewCmd.Flags().StringVar(&courseCategory, "category", "", "course category")
	courseEditCmd.Flags().StringVar(&courseTitle, "title", "", "new title")
	courseEditCmd.Flags().StringVar(&courseDescription, "description", "", "new description")
	courseEditCmd.Flags().StringVar(&courseCategory, "category", "", "new category")
}

func runCourseList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	courses, err := appStore.Courses(cmd.Context())
	if err != nil {
		// The mirror keeps the last good listing usable offline.
		if fallback := appStore.CoursesFallback(); len(fallback) > 0 {
			color.Yellow("Backend unreachable, showing last known courses")
			courses = fallback
		} else {
			return err
		}
	}

	if len(courses) == 0 {
		fmt.Println("No courses yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPINNED")
	for _, c := range courses {
		pinned := ""
		if appStore.Mirror().IsPinned(mirror.KeyPinnedCourses, c.ID) {
			pinned = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Category, pinned)
	}
	return w.Flush()
}

func runCourseNew(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	course, err := appStore.CreateCourse(cmd.Context(), models.CourseCreate{
		Title:       args[0],
		Description: description,
		Category:    courseCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	color.Green("Created course: %s", course.Title)
	fmt.Printf("ID: %s\n", course.ID)
	return nil
}

func runCourseShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	course, err := appStore.Course(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Course: %s\n", course.Title)
	if course.Description != "" {
		fmt.Printf("Description: %s\n", course.Description)
	}
	if course.Category != "" {
		fmt.Printf("Category: %s\n", course.Category)
	}
	fmt.Printf("Created at: %s\n", course.CreatedAt.Format("2006-01-02 15:04"))

	// Show recent files
	files, _ := appStore.Files(cmd.Context(), course.ID)
	if len(files) > 0 {
		fmt.Printf("\nFiles (%d):\n", len(files))
		for i, f := range files {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(files)-5)
				break
			}
			fmt.Printf("  %s (%s)\n", f.FileName, f.FileType)
		}
	}

	return nil
}

func runCourseEdit(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if courseTitle == "" && courseDescription == "" && courseCategory == "" {
		return fmt.Errorf("nothing to change; pass --title, --description, or --category")
	}

	course, err := appStore.UpdateCourse(cmd.Context(), args[0], models.CourseUpdate{
		Title:       courseTitle,
		Description: courseDescription,
		Category:    courseCategory,
	})
	if err != nil {
		return err
	}

	color.Green("Updated course: %s", course.Title)
	return nil
}

func runCourseRm(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := appStore.DeleteCourse(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Yellow("Deleted course: %s", args[0])
	return nil
}

func runCourseCategories(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	categories, err := appStore.Categories(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tLABEL")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\n", c.Value, c.Label)
	}
	return w.Flush()
}

func runCoursePin(cmd *cobra.Command, args []string) error {
	pinned := appStore.Mirror().TogglePin(mirror.KeyPinnedCourses, args[0])
	if pinned {
		color.Green("Pinned course: %s", args[0])
	} else {
		color.Yellow("Unpinned course: %s", args[0])
	}
	return nil
}

func runCourseRecent(cmd *cobra.Command, args []string) error {
	ids := appStore.Mirror().RecentCourses()
	if len(ids) == 0 {
		fmt.Println("No recently opened courses.")
		return nil
	}

	titles := map[string]string{}
	for _, c := range appStore.CoursesFallback() {
		titles[c.ID] = c.Title
	}

	for _, id := range ids {
		if title, ok := titles[id]; ok {
			fmt.Printf("%s  %s\n", id, title)
		} else {
			fmt.Println(id)
		}
	}
	return nil
}
