package repository

import (
	"context"
	"time"

	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/model"
)

const userColumns = "id, username, email, hashed_password, created_at"

// UserRepo persists accounts. Passwords arrive already hashed.
type UserRepo struct {
	DB  database.Querier
	now func() time.Time
}

func NewUserRepo(db database.Querier) *UserRepo { return &UserRepo{DB: db, now: model.Now} }

// Create inserts the user and fills in ID and CreatedAt. A taken
// username or email yields ErrDuplicate and nothing is written.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.CreatedAt = r.now()
	id, err := r.DB.InsertID(ctx,
		"INSERT INTO users (username, email, hashed_password, created_at) VALUES (?,?,?,?)",
		u.Username, u.Email, u.HashedPassword, u.CreatedAt)
	if err != nil {
		return classify(err)
	}
	u.ID = id
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=?", id))
	return u, classify(err)
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=?", username))
	return u, classify(err)
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=?", email))
	return u, classify(err)
}

// Delete removes the user. Tasks, tags, conversations and messages go
// with it through ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return checkRowsAffected(res)
}
