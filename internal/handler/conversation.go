package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/dto"
	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/repository"
)

// CreateConversation handles POST /v1/conversations. The body is ignored;
// a conversation starts empty.
func (h *API) CreateConversation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	conv := &model.Conversation{UserID: uid}
	if err := repository.NewConversationRepo(sess).Create(c.Request().Context(), conv); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewConversationResponse(conv, nil))
}

// ListConversations handles GET /v1/conversations.
func (h *API) ListConversations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := repository.NewConversationRepo(sess).ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ConversationResponse, 0, len(items))
	for _, conv := range items {
		out = append(out, dto.NewConversationResponse(conv, nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetConversation handles GET /v1/conversations/:id with its messages.
func (h *API) GetConversation(c echo.Context) error {
	conv, sess, err := h.ownedConversation(c)
	if err != nil {
		return respondError(c, err)
	}
	msgs, err := repository.NewMessageRepo(sess).ListByConversation(c.Request().Context(), conv.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewConversationResponse(conv, msgs))
}

// DeleteConversation handles DELETE /v1/conversations/:id.
func (h *API) DeleteConversation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := repository.NewConversationRepo(sess).Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMessages handles GET /v1/conversations/:id/messages.
func (h *API) ListMessages(c echo.Context) error {
	conv, sess, err := h.ownedConversation(c)
	if err != nil {
		return respondError(c, err)
	}
	msgs, err := repository.NewMessageRepo(sess).ListByConversation(c.Request().Context(), conv.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": dto.NewMessageResponses(msgs)})
}

// CreateMessage handles POST /v1/conversations/:id/messages and bumps the
// conversation's updated_at.
func (h *API) CreateMessage(c echo.Context) error {
	var in dto.MessageCreate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	conv, sess, err := h.ownedConversation(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	m := in.ToMessage(conv.ID, conv.UserID)
	if err := repository.NewMessageRepo(sess).Create(ctx, m); err != nil {
		return respondError(c, err)
	}
	if err := repository.NewConversationRepo(sess).Touch(ctx, conv); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewMessageResponse(m))
}

func (h *API) ownedConversation(c echo.Context) (*model.Conversation, *database.Session, error) {
	uid, err := getUserID(c)
	if err != nil {
		return nil, nil, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return nil, nil, err
	}
	sess, err := session(c)
	if err != nil {
		return nil, nil, err
	}
	conv, err := repository.NewConversationRepo(sess).GetByIDAndOwner(c.Request().Context(), id, uid)
	if err != nil {
		return nil, nil, err
	}
	return conv, sess, nil
}
