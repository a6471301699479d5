package repository

import (
	"context"
	"time"

	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/model"
)

// TagRepo manages tags and their links to tasks.
type TagRepo struct {
	db  database.Querier
	now func() time.Time
}

func NewTagRepo(db database.Querier) *TagRepo { return &TagRepo{db: db, now: model.Now} }

// Create inserts a tag; Color defaults to DefaultTagColor.
func (r *TagRepo) Create(ctx context.Context, g *model.Tag) error {
	if g.Color == "" {
		g.Color = model.DefaultTagColor
	}
	g.CreatedAt = r.now()
	args := append([]any{g.UserID}, tagArgs(g)...)
	args = append(args, g.CreatedAt)
	id, err := r.db.InsertID(ctx,
		"INSERT INTO tags (user_id, name, color, created_at) VALUES (?,?,?,?)", args...)
	if err != nil {
		return classify(err)
	}
	g.ID = id
	return nil
}

// GetByIDAndOwner fetches a tag owned by userID.
func (r *TagRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Tag, error) {
	g, err := scanTag(r.db.QueryRowContext(ctx,
		"SELECT "+tagColumns+" FROM tags g WHERE g.id = ? AND g.user_id = ?", id, userID))
	if err != nil {
		return nil, classify(err)
	}
	return g, nil
}

// ListByOwner returns all tags of a user ordered by name.
func (r *TagRepo) ListByOwner(ctx context.Context, userID uint64) ([]*model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tagColumns+" FROM tags g WHERE g.user_id = ? ORDER BY g.name, g.id", userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTag)
}

// Update writes name and color of a tag owned by g.UserID.
func (r *TagRepo) Update(ctx context.Context, g *model.Tag) error {
	args := append(tagArgs(g), g.ID, g.UserID)
	res, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = ?, color = ? WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return classify(err)
	}
	return checkRowsAffected(res)
}

// Delete removes a tag; its task links are removed by the engine.
func (r *TagRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return classify(err)
	}
	return checkRowsAffected(res)
}

// Attach links a tag to a task. Linking the same pair twice yields
// ErrDuplicate; an unknown task or tag yields ErrReference.
func (r *TagRepo) Attach(ctx context.Context, taskID, tagID uint64) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO task_tags (task_id, tag_id) VALUES (?,?)", taskID, tagID)
	return classify(err)
}

// Detach removes the link between a task and a tag.
func (r *TagRepo) Detach(ctx context.Context, taskID, tagID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?", taskID, tagID)
	if err != nil {
		return classify(err)
	}
	return checkRowsAffected(res)
}

// ListForTask returns the tags attached to a task.
func (r *TagRepo) ListForTask(ctx context.Context, taskID uint64) ([]*model.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags g
		 JOIN task_tags tt ON tt.tag_id = g.id
		 WHERE tt.task_id = ? ORDER BY g.name, g.id`, taskID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTag)
}
