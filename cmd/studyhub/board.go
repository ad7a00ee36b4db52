// ABOUTME: Help board CLI commands
// ABOUTME: Implements board list, mine, post, edit, toggle, rm

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/models"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse and post on the help board",
	Long:  "Post help requests and browse what other students are asking for.",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open help requests",
	RunE:  runBoardList,
}

var boardMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your help requests",
	RunE:  runBoardMine,
}

var boardPostCmd = &cobra.Command{
	Use:   "post <title>",
	Short: "Post a help request",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardPost,
}

var boardEditCmd = &cobra.Command{
	Use:   "edit <announcement-id>",
	Short: "Edit one of your help requests",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardEdit,
}

var boardToggleCmd = &cobra.Command{
	Use:   "toggle <announcement-id>",
	Short: "Open or close one of your help requests",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardToggle,
}

var boardRmCmd = &cobra.Command{
	Use:   "rm <announcement-id>",
	Short: "Delete one of your help requests",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardRm,
}

var (
	boardCategory string
	boardContact  string
	boardValue    string
	boardTitle    string
)

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardListCmd, boardMineCmd, boardPostCmd, boardEditCmd, boardToggleCmd, boardRmCmd)

	boardPostCmd.Flags().StringVar(&boardCategory, "category", "", "subject category")
	boardPostCmd.Flags().StringVar(&boardContact, "contact", "email", "contact method: email or phone")
	boardPostCmd.Flags().StringVar(&boardValue, "contact-value", "", "contact address; defaults to the account email")
	boardEditCmd.Flags().StringVar(&boardTitle, "title", "", "new title")
	boardEditCmd.Flags().StringVar(&boardCategory, "category", "", "new category")
	boardEditCmd.Flags().StringVar(&boardContact, "contact", "", "new contact method: email or phone")
	boardEditCmd.Flags().StringVar(&boardValue, "contact-value", "", "new contact address")
}

func printAnnouncements(anns []models.Announcement) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCONTACT\tSTATUS\tBY")
	for _, a := range anns {
		contact := a.ContactMethod
		if a.ContactValue != "" {
			contact += " " + a.ContactValue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Title, a.Category, contact, a.Status, a.FullName)
	}
	return w.Flush()
}

func runBoardList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	anns, err := appStore.OpenAnnouncements(cmd.Context())
	if err != nil {
		return err
	}

	if len(anns) == 0 {
		fmt.Println("The board is empty.")
		return nil
	}
	return printAnnouncements(anns)
}

func runBoardMine(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	anns, err := appStore.MyAnnouncements(cmd.Context())
	if err != nil {
		return err
	}

	if len(anns) == 0 {
		fmt.Println("You have not posted anything.")
		return nil
	}
	return printAnnouncements(anns)
}

func runBoardPost(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if boardContact != models.ContactEmail && boardContact != models.ContactPhone {
		return fmt.Errorf("contact method must be email or phone")
	}
	if boardContact == models.ContactPhone && boardValue == "" {
		return fmt.Errorf("--contact-value is required for phone contact")
	}

	ann, err := appStore.CreateAnnouncement(cmd.Context(),
		models.NewAnnouncementCreate(args[0], boardCategory, boardContact, boardValue))
	if err != nil {
		return fmt.Errorf("failed to post: %w", err)
	}

	color.Green("Posted: %s", ann.Title)
	fmt.Printf("ID: %s\n", ann.ID)
	return nil
}

func runBoardEdit(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if boardTitle == "" && boardCategory == "" && boardContact == "" && boardValue == "" {
		return fmt.Errorf("nothing to change; pass --title, --category, --contact, or --contact-value")
	}
	if boardContact != "" && boardContact != models.ContactEmail && boardContact != models.ContactPhone {
		return fmt.Errorf("contact method must be email or phone")
	}

	ann, err := appStore.UpdateAnnouncement(cmd.Context(), args[0], models.AnnouncementUpdate{
		Title:         boardTitle,
		Category:      boardCategory,
		ContactMethod: boardContact,
		ContactValue:  boardValue,
	})
	if err != nil {
		return err
	}

	color.Green("Updated: %s", ann.Title)
	return nil
}

func runBoardToggle(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	ann, err := appStore.ToggleAnnouncementStatus(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if ann.Status == models.StatusOpen {
		color.Green("Reopened: %s", ann.Title)
	} else {
		color.Yellow("Closed: %s", ann.Title)
	}
	return nil
}

func runBoardRm(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if err := appStore.DeleteAnnouncement(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Yellow("Deleted: %s", args[0])
	return nil
}
