// ABOUTME: Dashboard command launching the terminal UI
// ABOUTME: Three panes over courses, exams, and tasks

package main

import (
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open a terminal dashboard with your courses, upcoming exams, and
tasks side by side. Listings come from the cache and the local
mirror, so the dashboard opens instantly and fills in as fetches
complete.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return tui.Run(appStore)
}
