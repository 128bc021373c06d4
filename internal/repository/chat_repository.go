package repository

import (
	"context"
	"encoding/json"
	"language_center_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const chatContextTTL = 30 * time.Minute

type ChatRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{DB: db, Redis: rdb}
}

func (r *ChatRepository) CreateConversation(conv *model.ChatConversation) error {
	return r.DB.Create(conv).Error
}

func (r *ChatRepository) FindConversation(id string, userID uint) (*model.ChatConversation, error) {
	var conv model.ChatConversation
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) ListConversations(userID uint) ([]model.ChatConversation, error) {
	var convs []model.ChatConversation
	err := r.DB.Where("user_id = ?", userID).Order("updated_at desc").Find(&convs).Error
	return convs, err
}

func (r *ChatRepository) DeleteConversation(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ChatConversation{}, "id = ?", id).Error
	})
}

func (r *ChatRepository) AppendMessage(msg *model.ChatMessage) error {
	if err := r.DB.Create(msg).Error; err != nil {
		return err
	}
	// Stored history changed; drop the cached context.
	if r.Redis != nil {
		r.Redis.Del(context.Background(), contextKey(msg.ConversationID))
	}
	return nil
}

func (r *ChatRepository) ListMessages(conversationID string, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	query := r.DB.Where("conversation_id = ?", conversationID).Order("created_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&msgs).Error
	return msgs, err
}

func contextKey(conversationID string) string {
	return "chat:context:" + conversationID
}

// RecentContext returns the last messages of a conversation, served from
// redis when warm.
func (r *ChatRepository) RecentContext(ctx context.Context, conversationID string, n int) ([]model.ChatMessage, error) {
	if r.Redis != nil {
		cached, err := r.Redis.Get(ctx, contextKey(conversationID)).Bytes()
		if err == nil {
			var msgs []model.ChatMessage
			if json.Unmarshal(cached, &msgs) == nil {
				return msgs, nil
			}
		}
	}

	var msgs []model.ChatMessage
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at desc").Limit(n).Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	if r.Redis != nil {
		if data, err := json.Marshal(msgs); err == nil {
			r.Redis.Set(ctx, contextKey(conversationID), data, chatContextTTL)
		}
	}

	return msgs, nil
}
