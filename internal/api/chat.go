// ABOUTME: AI chat accessors for turn exchange and history persistence
// ABOUTME: The model call and the history store are separate endpoints

package api

import (
	"context"
	"fmt"

	"github.com/studyhub/studyhub/internal/models"
)

// SendToAI sends the running conversation and returns the assistant's
// reply. History is not persisted by this call.
func (c *Client) SendToAI(ctx context.Context, messages []models.ChatMessage) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "/ai/ai-chat", messages, &out); err != nil {
		return "", fmt.Errorf("ai chat: %w", err)
	}
	return out.Reply, nil
}

// StartConversation opens a new server-side conversation seeded with
// the first user message and returns its id.
func (c *Client) StartConversation(ctx context.Context, message string) (string, error) {
	var out struct {
		ConversationID string `json:"conversation_id"`
	}
	if err := c.post(ctx, "/ai/start-conversation", map[string]string{"message": message}, &out); err != nil {
		return "", fmt.Errorf("start conversation: %w", err)
	}
	return out.ConversationID, nil
}

// SaveMessage persists one turn into a conversation.
func (c *Client) SaveMessage(ctx context.Context, conversationID, role, content string) error {
	body := map[string]string{
		"conversation_id": conversationID,
		"role":            role,
		"content":         content,
	}
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, "/ai/save-message", body, &out); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// ListConversations returns the caller's saved conversations.
func (c *Client) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := c.get(ctx, "/ai/get-conversations", &out); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return out, nil
}

// ListMessages returns a conversation's saved turns.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	if err := c.get(ctx, "/ai/get-messages/"+conversationID, &out); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}
