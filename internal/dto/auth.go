package dto

import "github.com/iliyamo/task-manager/internal/model"

// LoginRequest carries the credentials checked by the auth handler.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// Token is returned after a successful login or registration.
type Token struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func NewToken(accessToken string, u *model.User) Token {
	return Token{AccessToken: accessToken, TokenType: TokenTypeBearer, User: NewUserResponse(u)}
}
