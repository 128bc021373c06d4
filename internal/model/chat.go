package model

// swagger:model ChatConversation
type ChatConversation struct {
	UUIDBase
	UserID uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title  string `gorm:"size:255" json:"title"`
}

func (ChatConversation) TableName() string {
	return "chat_conversations"
}

// swagger:model ChatMessage
type ChatMessage struct {
	BaseModel
	ConversationID string `gorm:"index;type:varchar(36)" json:"conversationId"`
	Role           string `gorm:"size:20;not null" json:"role"` // user / assistant
	Content        string `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
