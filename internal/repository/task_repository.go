// Package repository contains data access logic separated from HTTP handlers.
// Every repository works on a database.Querier, normally the Session that
// the request middleware acquired, and maps rows to model structs through
// the scan/args helpers in mapping.go.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/model"
)

// TaskRepo encapsulates all database queries related to tasks.
type TaskRepo struct {
	db  database.Querier
	now func() time.Time
}

// NewTaskRepo constructs a TaskRepo with the provided handle.
func NewTaskRepo(db database.Querier) *TaskRepo {
	return &TaskRepo{db: db, now: model.Now}
}

// Create inserts a new task. Priority defaults to medium. On success ID,
// CreatedAt and UpdatedAt are populated. An unknown UserID yields
// ErrReference.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	if t.Priority == "" {
		t.Priority = model.DefaultPriority
	}
	now := r.now()
	t.CreatedAt, t.UpdatedAt = now, now
	args := append([]any{t.UserID}, taskArgs(t)...)
	args = append(args, t.CreatedAt, t.UpdatedAt)
	id, err := r.db.InsertID(ctx,
		`INSERT INTO tasks (user_id, title, description, completed, priority, due_date, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return classify(err)
	}
	t.ID = id
	return nil
}

// GetByIDAndOwner fetches a task by id but only if it belongs to the
// specified user. Otherwise ErrNotFound is returned.
func (r *TaskRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks t WHERE t.id = ? AND t.user_id = ?", id, userID))
	if err != nil {
		return nil, classify(err)
	}
	return t, nil
}

// ListByOwner returns the user's tasks, newest first, narrowed by f.
func (r *TaskRepo) ListByOwner(ctx context.Context, userID uint64, f model.TaskFilter) ([]*model.Task, error) {
	var (
		q     strings.Builder
		where = []string{"t.user_id = ?"}
		args  = []any{userID}
	)
	q.WriteString("SELECT " + taskColumns + " FROM tasks t")
	if f.TagID != 0 {
		q.WriteString(" JOIN task_tags tt ON tt.task_id = t.id")
		where = append(where, "tt.tag_id = ?")
		args = append(args, f.TagID)
	}
	if f.Completed != nil {
		where = append(where, "t.completed = ?")
		args = append(args, *f.Completed)
	}
	if f.Priority != "" {
		where = append(where, "t.priority = ?")
		args = append(args, string(f.Priority))
	}
	q.WriteString(" WHERE " + strings.Join(where, " AND "))
	q.WriteString(" ORDER BY t.created_at DESC, t.id DESC")

	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTask)
}

// Update writes every mutable column of t and refreshes UpdatedAt. The
// row must belong to t.UserID.
func (r *TaskRepo) Update(ctx context.Context, t *model.Task) error {
	now := r.now()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	args := append(taskArgs(t), now, t.ID, t.UserID)
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, completed = ?, priority = ?, due_date = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return classify(err)
	}
	if err := checkRowsAffected(res); err != nil {
		return err
	}
	t.UpdatedAt = now
	return nil
}

// Delete removes a task owned by userID. Its task_tags rows are removed
// by the engine; the tags themselves stay.
func (r *TaskRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return classify(err)
	}
	return checkRowsAffected(res)
}
