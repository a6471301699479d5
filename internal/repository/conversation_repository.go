package repository

import (
	"context"
	"time"

	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/model"
)

const (
	conversationColumns = "id, user_id, created_at, updated_at"
	messageColumns      = "id, conversation_id, user_id, role, content, created_at"
)

// ConversationRepo stores chat conversations.
type ConversationRepo struct {
	db  database.Querier
	now func() time.Time
}

func NewConversationRepo(db database.Querier) *ConversationRepo {
	return &ConversationRepo{db: db, now: model.Now}
}

// Create inserts an empty conversation for c.UserID.
func (r *ConversationRepo) Create(ctx context.Context, c *model.Conversation) error {
	now := r.now()
	c.CreatedAt, c.UpdatedAt = now, now
	id, err := r.db.InsertID(ctx,
		"INSERT INTO conversations (user_id, created_at, updated_at) VALUES (?,?,?)",
		c.UserID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return classify(err)
	}
	c.ID = id
	return nil
}

// GetByIDAndOwner fetches a conversation owned by userID.
func (r *ConversationRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Conversation, error) {
	c, err := scanConversation(r.db.QueryRowContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

// ListByOwner returns conversations, most recently active first.
func (r *ConversationRepo) ListByOwner(ctx context.Context, userID uint64) ([]*model.Conversation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE user_id = ? ORDER BY updated_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanConversation)
}

// Touch refreshes updated_at of c, typically after a message was added.
func (r *ConversationRepo) Touch(ctx context.Context, c *model.Conversation) error {
	now := r.now()
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ? AND user_id = ?", now, c.ID, c.UserID)
	if err != nil {
		return classify(err)
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

// Delete removes a conversation and, by cascade, its messages.
func (r *ConversationRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return classify(err)
	}
	return checkRowsAffected(res)
}

// MessageRepo stores the messages of a conversation.
type MessageRepo struct {
	db  database.Querier
	now func() time.Time
}

func NewMessageRepo(db database.Querier) *MessageRepo {
	return &MessageRepo{db: db, now: model.Now}
}

// Create appends a message. An unknown conversation or user yields
// ErrReference.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	m.CreatedAt = r.now()
	id, err := r.db.InsertID(ctx,
		"INSERT INTO messages (conversation_id, user_id, role, content, created_at) VALUES (?,?,?,?,?)",
		m.ConversationID, m.UserID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return classify(err)
	}
	m.ID = id
	return nil
}

// ListByConversation returns messages in the order they were written.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uint64) ([]*model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE conversation_id = ? ORDER BY created_at, id", conversationID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMessage)
}
