// ABOUTME: Profile CLI commands
// ABOUTME: Implements profile show, complete, update, avatar, delete

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/models"
	"github.com/studyhub/studyhub/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE:  runProfileShow,
}

var profileCompleteCmd = &cobra.Command{
	Use:   "complete <full-name>",
	Short: "Complete your profile after signup",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileComplete,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	RunE:  runProfileUpdate,
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <image-path>",
	Short: "Upload a profile image",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAvatar,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account",
	RunE:  runProfileDelete,
}

var (
	profileName      string
	profileLevel     string
	profileSpec      string
	profileAnonymous bool
	profileConfirm   bool
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileCompleteCmd, profileUpdateCmd, profileAvatarCmd, profileDeleteCmd)

	profileCompleteCmd.Flags().StringVar(&profileLevel, "level", "", "academic level: "+strings.Join(models.AcademicLevels, ", "))
	profileCompleteCmd.Flags().StringVar(&profileSpec, "specialization", "", "specialization for engineering years")
	profileCompleteCmd.Flags().BoolVar(&profileAnonymous, "anonymous", false, "hide your name on the board")
	profileCompleteCmd.MarkFlagRequired("level")

	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "new full name")
	profileUpdateCmd.Flags().StringVar(&profileLevel, "level", "", "new academic level")
	profileUpdateCmd.Flags().StringVar(&profileSpec, "specialization", "", "new specialization")
	profileUpdateCmd.Flags().BoolVar(&profileAnonymous, "anonymous", false, "hide your name on the board")

	profileDeleteCmd.Flags().BoolVar(&profileConfirm, "yes", false, "skip the confirmation prompt")
}

func validLevel(level string) bool {
	for _, l := range models.AcademicLevels {
		if l == level {
			return true
		}
	}
	return false
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	p, err := appStore.Profile(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Name: %s\n", p.FullName)
	fmt.Printf("Email: %s\n", p.Email)
	fmt.Printf("Level: %s\n", p.AcademicLevel)
	if p.Specialization != "" {
		fmt.Printf("Specialization: %s\n", p.Specialization)
	}
	if p.IsAnonymous {
		fmt.Println("Board visibility: anonymous")
	}
	return nil
}

func runProfileComplete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if !validLevel(profileLevel) {
		return fmt.Errorf("level must be one of %s", strings.Join(models.AcademicLevels, ", "))
	}

	resp, err := appStore.CompleteProfile(cmd.Context(), models.Profile{
		FullName:       args[0],
		AcademicLevel:  profileLevel,
		Specialization: profileSpec,
		IsAnonymous:    profileAnonymous,
	})
	if err != nil {
		return err
	}

	// Profile completion rotates the token so the new claims stick.
	if resp.NewAccessToken != "" {
		if err := persistToken(resp.NewAccessToken); err != nil {
			return err
		}
	}

	color.Green("Profile completed")
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if profileName == "" && profileLevel == "" && profileSpec == "" && !cmd.Flags().Changed("anonymous") {
		return fmt.Errorf("nothing to change; pass --name, --level, --specialization, or --anonymous")
	}
	if profileLevel != "" && !validLevel(profileLevel) {
		return fmt.Errorf("level must be one of %s", strings.Join(models.AcademicLevels, ", "))
	}

	current, err := appStore.Profile(cmd.Context())
	if err != nil {
		return err
	}

	next := *current
	if profileName != "" {
		next.FullName = profileName
	}
	if profileLevel != "" {
		next.AcademicLevel = profileLevel
	}
	if profileSpec != "" {
		next.Specialization = profileSpec
	}
	if cmd.Flags().Changed("anonymous") {
		next.IsAnonymous = profileAnonymous
	}

	updated, err := appStore.UpdateProfile(cmd.Context(), next)
	if err != nil {
		return err
	}

	color.Green("Updated profile for %s", updated.FullName)
	return nil
}

func runProfileAvatar(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	url, err := appStore.UploadProfileImage(cmd.Context(), store.Upload{
		Name: filepath.Base(args[0]),
		R:    f,
	})
	if err != nil {
		return err
	}

	color.Green("Uploaded profile image")
	fmt.Println(url)
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	if !profileConfirm {
		fmt.Print("This permanently deletes your account. Type the account email to confirm: ")
		var input string
		fmt.Scanln(&input)
		if input != currentSession().Email {
			return fmt.Errorf("confirmation did not match, aborted")
		}
	}

	if err := appStore.DeleteProfile(cmd.Context()); err != nil {
		return err
	}

	appStore.API().ClearSession()
	if err := persistToken(""); err != nil {
		return err
	}

	color.Yellow("Account deleted")
	return nil
}
