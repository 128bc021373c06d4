package service

import (
	"context"
	"errors"
	"language_center_backend/internal/model"
	"language_center_backend/internal/repository"
	"language_center_backend/internal/util"

	"gorm.io/gorm"
)

// contextWindow is how many prior messages are replayed to the model.
const contextWindow = 20

type ChatService struct {
	Repo *repository.ChatRepository
	AI   *AIService
}

func NewChatService(repo *repository.ChatRepository, ai *AIService) *ChatService {
	return &ChatService{Repo: repo, AI: ai}
}

func (s *ChatService) CreateConversation(userID uint, title string) (*model.ChatConversation, error) {
	if title == "" {
		title = "New conversation"
	}
	conv := &model.ChatConversation{
		UserID: userID,
		Title:  title,
	}
	if err := s.Repo.CreateConversation(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) ListConversations(userID uint) ([]model.ChatConversation, error) {
	return s.Repo.ListConversations(userID)
}

func (s *ChatService) GetConversation(id string, userID uint) (*model.ChatConversation, error) {
	conv, err := s.Repo.FindConversation(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrConversationMissing
		}
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) DeleteConversation(id string, userID uint) error {
	if _, err := s.GetConversation(id, userID); err != nil {
		return err
	}
	return s.Repo.DeleteConversation(id)
}

func (s *ChatService) ListMessages(conversationID string, userID uint) ([]model.ChatMessage, error) {
	if _, err := s.GetConversation(conversationID, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListMessages(conversationID, 0)
}

// SendMessage persists the user turn, asks the model with recent context, and
// persists the assistant reply.
func (s *ChatService) SendMessage(ctx context.Context, conversationID string, userID uint, content, language string) (*model.ChatMessage, error) {
	if _, err := s.GetConversation(conversationID, userID); err != nil {
		return nil, err
	}

	history, err := s.recentHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg := &model.ChatMessage{
		ConversationID: conversationID,
		Role:           "user",
		Content:        content,
	}
	if err := s.Repo.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	reply, err := s.AI.Chat(content, language, history)
	if err != nil {
		return nil, err
	}

	assistantMsg := &model.ChatMessage{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        reply,
	}
	if err := s.Repo.AppendMessage(assistantMsg); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}

// StreamMessage is the SSE variant. The caller drains the chunk channel; once
// the stream ends the full reply is persisted via the returned finish func.
func (s *ChatService) StreamMessage(ctx context.Context, conversationID string, userID uint, content, language string) (<-chan string, <-chan error, func(full string) error, error) {
	if _, err := s.GetConversation(conversationID, userID); err != nil {
		return nil, nil, nil, err
	}

	history, err := s.recentHistory(ctx, conversationID)
	if err != nil {
		return nil, nil, nil, err
	}

	userMsg := &model.ChatMessage{
		ConversationID: conversationID,
		Role:           "user",
		Content:        content,
	}
	if err := s.Repo.AppendMessage(userMsg); err != nil {
		return nil, nil, nil, err
	}

	out, errChan := s.AI.ChatStream(content, language, history)

	finish := func(full string) error {
		if full == "" {
			return nil
		}
		return s.Repo.AppendMessage(&model.ChatMessage{
			ConversationID: conversationID,
			Role:           "assistant",
			Content:        full,
		})
	}
	return out, errChan, finish, nil
}

func (s *ChatService) recentHistory(ctx context.Context, conversationID string) ([]AIChatMessage, error) {
	msgs, err := s.Repo.RecentContext(ctx, conversationID, contextWindow)
	if err != nil {
		return nil, err
	}
	history := make([]AIChatMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, AIChatMessage{Role: m.Role, Content: m.Content})
	}
	return history, nil
}
