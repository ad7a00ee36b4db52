// ABOUTME: Root Cobra command and shared setup
// ABOUTME: Builds the API client, cache, mirror, and store for subcommands

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/api"
	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/config"
	"github.com/studyhub/studyhub/internal/mirror"
	"github.com/studyhub/studyhub/internal/session"
	"github.com/studyhub/studyhub/internal/store"
)

var (
	cfg      *config.Config
	appStore *store.Store
	baseURL  string
)

var rootCmd = &cobra.Command{
	Use:   "studyhub",
	Short: "Courses, notes, exams, and tasks from the terminal",
	Long: `StudyHub keeps your courses, files, notes, exam planning, tasks,
and the help board in reach from the terminal.

Data is served from a local cache and mirrored to disk, so listings
stay usable when the backend is slow or unreachable.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}

		client, err := api.New(cfg.GetBaseURL(), cfg.AccessToken)
		if err != nil {
			return err
		}

		m, err := mirror.Open(config.GetDataPath())
		if err != nil {
			return fmt.Errorf("failed to open local mirror: %w", err)
		}

		appStore = store.New(client, cache.New(), m)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appStore != nil {
			appStore.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "server", "", "backend base URL override")
}

// currentSession decodes the persisted token. A missing or malformed
// token yields the anonymous session.
func currentSession() session.Session {
	return session.FromToken(cfg.AccessToken)
}

// requireAuth fails fast when no usable session exists, instead of
// letting the first request come back 401.
func requireAuth() error {
	if !currentSession().IsAuthenticated() {
		return fmt.Errorf("not logged in; run 'studyhub login' first")
	}
	return nil
}
