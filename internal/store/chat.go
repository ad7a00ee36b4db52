// ABOUTME: AI chat orchestration: turn exchange plus history persistence
// ABOUTME: Both sides of a turn are saved and appended to the message cache

package store

import (
	"context"

	"github.com/studyhub/studyhub/internal/cache"
	"github.com/studyhub/studyhub/internal/models"
)

// Conversations returns the caller's saved conversations.
func (s *Store) Conversations(ctx context.Context) ([]models.Conversation, error) {
	return cache.GetTyped(ctx, s.cache, keyConversations, cache.Medium, func(ctx context.Context) ([]models.Conversation, error) {
		return s.api.ListConversations(ctx)
	})
}

// Messages returns a conversation's saved turns.
func (s *Store) Messages(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	return cache.GetTyped(ctx, s.cache, messagesKey(conversationID), cache.Short, func(ctx context.Context) ([]models.ChatMessage, error) {
		return s.api.ListMessages(ctx, conversationID)
	})
}

// StartConversation opens a new conversation seeded with the first
// message and invalidates the conversation list so the next read
// refetches it.
func (s *Store) StartConversation(ctx context.Context, message string) (string, error) {
	id, err := s.api.StartConversation(ctx, message)
	if err != nil {
		return "", err
	}
	s.cache.Remove(keyConversations)
	return id, nil
}

// Ask sends the running conversation plus the new user message to the
// AI, persists both sides of the turn, and appends them to the
// message cache. Persistence failures do not lose the reply.
func (s *Store) Ask(ctx context.Context, conversationID string, history []models.ChatMessage, content string) (string, error) {
	userMsg := models.NewUserMessage(conversationID, content)
	reply, err := s.api.SendToAI(ctx, append(history, userMsg))
	if err != nil {
		return "", err
	}

	if conversationID != "" {
		_ = s.api.SaveMessage(ctx, conversationID, models.RoleUser, content)
		_ = s.api.SaveMessage(ctx, conversationID, models.RoleAssistant, reply)
		assistantMsg := models.ChatMessage{
			ConversationID: conversationID,
			Role:           models.RoleAssistant,
			Content:        reply,
			CreatedAt:      userMsg.CreatedAt,
		}
		patchList(s.cache, messagesKey(conversationID), cache.Short, func(old []models.ChatMessage) []models.ChatMessage {
			return append(old, userMsg, assistantMsg)
		})
	}
	return reply, nil
}
