// ABOUTME: Exam planning CLI commands
// ABOUTME: Implements exam list, add, rm, and study plan generation

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/models"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Plan exams",
	Long:  "Schedule exams and generate a study plan.",
}

var examListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled exams",
	RunE:  runExamList,
}

var examAddCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Schedule one or more exams on a date",
	Long: `Schedule exams. All titles share the date given with --date; the
exams are created in the order the titles are listed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExamAdd,
}

var examRmCmd = &cobra.Command{
	Use:   "rm <exam-id>",
	Short: "Remove an exam",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamRm,
}

var examPlanCmd = &cobra.Command{
	Use:   "plan [output.pdf]",
	Short: "Generate a study plan PDF",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExamPlan,
}

var (
	examDate     string
	examPriority int
)

func init() {
	rootCmd.AddCommand(examCmd)
	examCmd.AddCommand(examListCmd, examAddCmd, examRmCmd, examPlanCmd)

	examAddCmd.Flags().StringVar(&examDate, "date", "", "exam date as YYYY-MM-DD (required)")
	examAddCmd.Flags().IntVar(&examPriority, "priority", 3, "priority 1 (highest) to 5")
	examAddCmd.MarkFlagRequired("date")
}

func runExamList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	exams, err := appStore.Exams(cmd.Context())
	if err != nil {
		return err
	}

	if len(exams) == 0 {
		fmt.Println("No exams scheduled.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDATE\tPRIORITY")
	for _, e := range exams {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.ID, e.Title, e.ExamDate.Format("2006-01-02"), e.Priority)
	}
	return w.Flush()
}

func runExamAdd(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if examPriority < 1 || examPriority > 5 {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	date, err := time.Parse("2006-01-02", examDate)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}

	ins := make([]models.ExamCreate, 0, len(args))
	for _, title := range args {
		in := models.NewExamCreate(title, date)
		in.Priority = examPriority
		ins = append(ins, in)
	}

	created, err := appStore.AddExams(cmd.Context(), ins)
	if len(created) > 0 {
		color.Green("Scheduled %d exam(s) on %s", len(created), examDate)
		for _, e := range created {
			fmt.Printf("  %s (ID: %s)\n", e.Title, e.ID)
		}
	}
	if err != nil {
		return fmt.Errorf("some exams were not scheduled: %w", err)
	}
	return nil
}

func runExamRm(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := appStore.DeleteExam(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Yellow("Removed exam: %s", args[0])
	return nil
}

func runExamPlan(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	out := "study-plan.pdf"
	if len(args) > 0 {
		out = args[0]
	}

	pdf, err := appStore.GeneratePlan(cmd.Context())
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	color.Green("Wrote study plan to %s", out)
	return nil
}
