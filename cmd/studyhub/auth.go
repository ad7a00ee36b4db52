// ABOUTME: Auth CLI commands
// ABOUTME: Implements login, register, confirm, logout, whoami, passwd, email

package main

import (
	"fmt"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/studyhub/studyhub/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in with email and password",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account",
	Long: `Create an account. The backend sends a confirmation email; once you
have the token from the link, run 'studyhub confirm <token>'.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm <token>",
	Short: "Confirm email with the token from the confirmation link",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfirm,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear the stored token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the account password",
	RunE:  runPasswd,
}

var emailCmd = &cobra.Command{
	Use:   "email <new-email>",
	Short: "Request an email address change",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmailChange,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, confirmCmd, logoutCmd, whoamiCmd, passwdCmd, emailCmd)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func persistToken(token string) error {
	cfg.AccessToken = token
	return cfg.Save()
}

func runLogin(cmd *cobra.Command, args []string) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := appStore.API().Login(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}

	if err := persistToken(resp.AccessToken); err != nil {
		return err
	}

	color.Green("Logged in as %s", resp.Email)
	if !resp.ProfileComplete {
		fmt.Println("Your profile is incomplete; run 'studyhub profile complete'.")
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	again, err := readPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != again {
		return fmt.Errorf("passwords do not match")
	}

	resp, err := appStore.API().Signup(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}

	// Some deployments log the account in immediately instead of
	// requiring confirmation.
	if resp.AccessToken != "" {
		if err := persistToken(resp.AccessToken); err != nil {
			return err
		}
		color.Green("Account created and logged in as %s", args[0])
		return nil
	}

	color.Green("Account created for %s", args[0])
	fmt.Println("Check your inbox for the confirmation link, then run 'studyhub confirm <token>'.")
	return nil
}

func runConfirm(cmd *cobra.Command, args []string) error {
	resp, err := appStore.API().Callback(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := persistToken(resp.AccessToken); err != nil {
		return err
	}

	color.Green("Email confirmed, logged in as %s", resp.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	// Best effort on the server side; the local token is cleared
	// either way.
	if err := appStore.API().Logout(cmd.Context()); err != nil {
		color.Yellow("Server logout failed: %v", err)
	}
	appStore.API().ClearSession()

	if err := persistToken(""); err != nil {
		return err
	}
	color.Green("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess := currentSession()
	switch sess.State() {
	case session.Anonymous:
		fmt.Println("Not logged in.")
	case session.IncompleteProfile:
		fmt.Printf("Logged in as %s (profile incomplete)\n", sess.Email)
	case session.Complete:
		fmt.Printf("Logged in as %s\n", sess.Email)
	}
	return nil
}

func runPasswd(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	current, err := readPassword("Current password: ")
	if err != nil {
		return err
	}
	next, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	again, err := readPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	if next != again {
		return fmt.Errorf("passwords do not match")
	}

	msg, err := appStore.API().ChangePassword(cmd.Context(), current, next)
	if err != nil {
		return err
	}

	color.Green("%s", msg)
	return nil
}

func runEmailChange(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	password, err := readPassword("Current password: ")
	if err != nil {
		return err
	}

	msg, err := appStore.API().RequestEmailChange(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}

	color.Green("%s", msg)
	return nil
}
