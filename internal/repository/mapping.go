package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/task-manager/internal/model"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullTimestamp scans a timestamp column whatever the driver hands back:
// time.Time from MySQL (parseTime=true), PostgreSQL and typed SQLite
// columns, or text from SQLite columns written by older clients.
type nullTimestamp struct {
	Time  time.Time
	Valid bool
}

func (n *nullTimestamp) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = x.UTC(), true
		return nil
	case string:
		return n.parse(x)
	case []byte:
		return n.parse(string(x))
	}
	return fmt.Errorf("unsupported timestamp type %T", v)
}

func (n *nullTimestamp) parse(s string) error {
	t, err := model.ParseTimestamp(s)
	if err != nil {
		return err
	}
	n.Time, n.Valid = t, true
	return nil
}

func (n nullTimestamp) ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// nullTime converts an optional timestamp into a query argument.
func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC()
}

// ---- row-to-struct ----

func scanUser(s scanner) (*model.User, error) {
	var (
		u       model.User
		created nullTimestamp
	)
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &created); err != nil {
		return nil, err
	}
	u.CreatedAt = created.Time
	return &u, nil
}

const taskColumns = "t.id, t.user_id, t.title, t.description, t.completed, t.priority, t.due_date, t.created_at, t.updated_at"

func scanTask(s scanner) (*model.Task, error) {
	var (
		t        model.Task
		desc     sql.NullString
		priority sql.NullString
		due      nullTimestamp
		created  nullTimestamp
		updated  nullTimestamp
	)
	if err := s.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.Completed, &priority, &due, &created, &updated); err != nil {
		return nil, err
	}
	t.Description = desc.String
	t.Priority = model.Priority(priority.String)
	if !priority.Valid || t.Priority == "" {
		t.Priority = model.DefaultPriority
	}
	t.DueDate = due.ptr()
	t.CreatedAt = created.Time
	t.UpdatedAt = updated.Time
	return &t, nil
}

const tagColumns = "g.id, g.user_id, g.name, g.color, g.created_at"

func scanTag(s scanner) (*model.Tag, error) {
	var (
		g       model.Tag
		color   sql.NullString
		created nullTimestamp
	)
	if err := s.Scan(&g.ID, &g.UserID, &g.Name, &color, &created); err != nil {
		return nil, err
	}
	g.Color = color.String
	if g.Color == "" {
		g.Color = model.DefaultTagColor
	}
	g.CreatedAt = created.Time
	return &g, nil
}

func scanConversation(s scanner) (*model.Conversation, error) {
	var (
		c       model.Conversation
		created nullTimestamp
		updated nullTimestamp
	)
	if err := s.Scan(&c.ID, &c.UserID, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt = created.Time
	c.UpdatedAt = updated.Time
	return &c, nil
}

func scanMessage(s scanner) (*model.Message, error) {
	var (
		m       model.Message
		created nullTimestamp
	)
	if err := s.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Role, &m.Content, &created); err != nil {
		return nil, err
	}
	m.CreatedAt = created.Time
	return &m, nil
}

// ---- struct-to-row ----

// taskArgs returns the mutable task columns in the order
// title, description, completed, priority, due_date.
func taskArgs(t *model.Task) []any {
	return []any{t.Title, t.Description, t.Completed, string(t.Priority), nullTime(t.DueDate)}
}

// tagArgs returns name, color.
func tagArgs(g *model.Tag) []any {
	return []any{g.Name, g.Color}
}

// collect drains rows through scan.
func collect[T any](rows *sql.Rows, scan func(scanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
