package dto

import "github.com/iliyamo/task-manager/internal/model"

// MessageCreate appends a message to a conversation.
type MessageCreate struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

func (in MessageCreate) ToMessage(conversationID, userID uint64) *model.Message {
	return &model.Message{ConversationID: conversationID, UserID: userID, Role: in.Role, Content: in.Content}
}

type MessageResponse struct {
	ID             uint64 `json:"id"`
	ConversationID uint64 `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

func NewMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      timestampText(m.CreatedAt),
	}
}

func NewMessageResponses(ms []*model.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

type ConversationResponse struct {
	ID        uint64            `json:"id"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	Messages  []MessageResponse `json:"messages,omitempty"`
}

func NewConversationResponse(c *model.Conversation, msgs []*model.Message) ConversationResponse {
	resp := ConversationResponse{
		ID:        c.ID,
		CreatedAt: timestampText(c.CreatedAt),
		UpdatedAt: timestampText(c.UpdatedAt),
	}
	if len(msgs) > 0 {
		resp.Messages = NewMessageResponses(msgs)
	}
	return resp
}
