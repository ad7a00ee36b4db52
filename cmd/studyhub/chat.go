// ABOUTME: AI chat CLI commands
// ABOUTME: Implements chat ask, new, history, list

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studyhub/studyhub/internal/models"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the study assistant",
}

var chatAskCmd = &cobra.Command{
	Use:   "ask <question>...",
	Short: "Ask the assistant a question",
	Long: `Ask the assistant a question. With --conversation the running
history is sent along and both sides of the turn are saved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChatAsk,
}

var chatNewCmd = &cobra.Command{
	Use:   "new <first-message>...",
	Short: "Start a new conversation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChatNew,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history <conversation-id>",
	Short: "Show a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatHistory,
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations",
	RunE:  runChatList,
}

var chatConversationID string

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatAskCmd, chatNewCmd, chatHistoryCmd, chatListCmd)

	chatAskCmd.Flags().StringVar(&chatConversationID, "conversation", "", "conversation to continue")
}

func runChatAsk(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	question := strings.Join(args, " ")

	var history []models.ChatMessage
	if chatConversationID != "" {
		var err error
		history, err = appStore.Messages(cmd.Context(), chatConversationID)
		if err != nil {
			return err
		}
	}

	reply, err := appStore.Ask(cmd.Context(), chatConversationID, history, question)
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}

func runChatNew(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	message := strings.Join(args, " ")

	id, err := appStore.StartConversation(cmd.Context(), message)
	if err != nil {
		return err
	}

	color.Green("Started conversation %s", id)

	reply, err := appStore.Ask(cmd.Context(), id, nil, message)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	messages, err := appStore.Messages(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}

	bold := color.New(color.Bold)
	for _, m := range messages {
		who := "You"
		if m.Role == models.RoleAssistant {
			who = "Assistant"
		}
		bold.Printf("%s  %s\n", who, m.CreatedAt.Format("Jan 02 15:04"))
		fmt.Println(m.Content)
		fmt.Println()
	}
	return nil
}

func runChatList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	convs, err := appStore.Conversations(cmd.Context())
	if err != nil {
		return err
	}

	if len(convs) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
	for _, c := range convs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Title, c.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
