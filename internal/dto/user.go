package dto

import (
	"fmt"

	"github.com/iliyamo/task-manager/internal/model"
)

// UserCreate is the registration body. Password is plaintext; the auth
// layer hashes it before anything is stored, and it is never logged.
type UserCreate struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// String masks the password so the struct is safe to print.
func (u UserCreate) String() string {
	return fmt.Sprintf("UserCreate{Username:%q Email:%q Password:***}", u.Username, u.Email)
}

// GoString keeps %#v from printing the password either.
func (u UserCreate) GoString() string { return u.String() }

// ToUser maps the body to a record carrying the given hash.
func (u UserCreate) ToUser(hashedPassword string) *model.User {
	return &model.User{
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: hashedPassword,
	}
}

// UserResponse is the public view of an account. It never carries
// password material.
type UserResponse struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: timestampText(u.CreatedAt),
	}
}
