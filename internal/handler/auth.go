package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // errors matches repository sentinels
	"net/http" // HTTP status codes and primitives
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/task-manager/internal/dto"
	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/repository"
	"github.com/iliyamo/task-manager/internal/utils" // helper functions (hashing, token issuing)
)

// dbTimeout bounds the database work of a single request.
const dbTimeout = 5 * time.Second

// Register: create user and return an access token immediately.
func (h *API) Register(c echo.Context) error {
	var in dto.UserCreate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	hash, err := utils.HashPassword(in.Password, h.Cfg.BcryptCost)
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u := in.ToUser(hash)
	if err := repository.NewUserRepo(sess).Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already registered"})
		}
		return respondError(c, err)
	}
	return h.issue(c, http.StatusCreated, u)
}

// Login: verify credentials and return a new access token.
func (h *API) Login(c echo.Context) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := repository.NewUserRepo(sess).GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return respondError(c, err)
	}
	if !utils.VerifyPassword(u.HashedPassword, in.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issue(c, http.StatusOK, u)
}

func (h *API) issue(c echo.Context, status int, u *model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status, dto.NewToken(access.Token, u))
}

// Me returns the authenticated account.
func (h *API) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	u, err := repository.NewUserRepo(sess).GetByID(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// DeleteMe removes the account. Tasks, tags and conversations go with it.
func (h *API) DeleteMe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := repository.NewUserRepo(sess).Delete(c.Request().Context(), uid); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
