package model

import "time"

// Message roles. The storage layer does not constrain the column; the
// dto layer only accepts these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups chat messages for a single user.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the conversation.
//	CreatedAt – creation timestamp.
//	UpdatedAt – refreshed whenever the conversation is touched.
type Conversation struct {
	ID        uint64    // conversations.id
	UserID    uint64    // conversations.user_id
	CreatedAt time.Time // conversations.created_at
	UpdatedAt time.Time // conversations.updated_at
}

// Message is one entry in a conversation. UserID duplicates the
// conversation owner so messages can be queried per user directly.
type Message struct {
	ID             uint64    // messages.id
	ConversationID uint64    // messages.conversation_id
	UserID         uint64    // messages.user_id
	Role           string    // messages.role
	Content        string    // messages.content
	CreatedAt      time.Time // messages.created_at
}
