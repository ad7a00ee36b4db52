// ABOUTME: Task CLI commands
// ABOUTME: Implements task list, add, done, rm

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

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  "Create, list, complete, and remove to-do tasks.",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var (
	taskDescription string
	taskCategory    string
	taskDueDate     string
	taskShowDone    bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskDoneCmd, taskRmCmd)

	taskListCmd.Flags().BoolVar(&taskShowDone, "all", false, "include completed tasks")
	taskAddCmd.Flags().StringVar(&taskDescription, "description", "", "task description")
	taskAddCmd.Flags().StringVar(&taskCategory, "category", "", "task category")
	taskAddCmd.Flags().StringVar(&taskDueDate, "due", "", "due date as YYYY-MM-DD")
}

func runTaskList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	tasks, err := appStore.Tasks(cmd.Context())
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDUE\tDONE")
	shown := 0
	for _, t := range tasks {
		if t.Completed && !taskShowDone {
			continue
		}
		done := ""
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Category, t.DueDate, done)
		shown++
	}
	if shown == 0 {
		fmt.Println("All tasks done.")
		return nil
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if taskDueDate != "" {
		if _, err := time.Parse("2006-01-02", taskDueDate); err != nil {
			return fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
		}
	}

	in := models.NewTaskCreate(args[0])
	in.Description = taskDescription
	in.DueDate = taskDueDate
	if taskCategory != "" {
		in.Category = taskCategory
	}

	task, err := appStore.CreateTask(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	color.Green("Created task: %s", task.Title)
	fmt.Printf("ID: %s\n", task.ID)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	task, err := appStore.ToggleTask(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if task.Completed {
		color.Green("Completed: %s", task.Title)
	} else {
		color.Yellow("Reopened: %s", task.Title)
	}
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := appStore.DeleteTask(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Yellow("Deleted task: %s", args[0])
	return nil
}
