package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/dto"
	"github.com/iliyamo/task-manager/internal/repository"
)

// CreateTag handles POST /v1/tags.
func (h *API) CreateTag(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TagCreate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	g := in.ToTag(uid)
	if err := repository.NewTagRepo(sess).Create(c.Request().Context(), g); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewTagResponse(g))
}

// ListTags handles GET /v1/tags.
func (h *API) ListTags(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := repository.NewTagRepo(sess).ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": dto.NewTagResponses(items)})
}

// UpdateTag handles PATCH /v1/tags/:id.
func (h *API) UpdateTag(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TagUpdate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	tags := repository.NewTagRepo(sess)
	g, err := tags.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return respondError(c, err)
	}
	in.Apply(g)
	if err := tags.Update(ctx, g); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewTagResponse(g))
}

// DeleteTag handles DELETE /v1/tags/:id. The tag is detached from every
// task; the tasks stay.
func (h *API) DeleteTag(c echo.Context) error {
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
	if err := repository.NewTagRepo(sess).Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
