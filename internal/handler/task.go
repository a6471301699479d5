package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/dto"
	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/repository"
)

// CreateTask handles POST /v1/tasks.
func (h *API) CreateTask(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TaskCreate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	t, err := in.ToTask(uid)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := repository.NewTaskRepo(sess).Create(c.Request().Context(), t); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewTaskResponse(t))
}

// ListTasks handles GET /v1/tasks?completed=&priority=&tag_id=.
func (h *API) ListTasks(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := taskFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := repository.NewTaskRepo(sess).ListByOwner(c.Request().Context(), uid, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": dto.NewTaskResponses(items)})
}

func taskFilter(c echo.Context) (model.TaskFilter, error) {
	var (
		f      model.TaskFilter
		fields []dto.FieldError
	)
	if s := c.QueryParam("completed"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			fields = append(fields, dto.FieldError{Field: "completed", Message: "must be true or false"})
		} else {
			f.Completed = &b
		}
	}
	if s := c.QueryParam("priority"); s != "" {
		if p := model.Priority(s); p.Valid() {
			f.Priority = p
		} else {
			fields = append(fields, dto.FieldError{Field: "priority", Message: "must be one of: low, medium, high"})
		}
	}
	if s := c.QueryParam("tag_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			fields = append(fields, dto.FieldError{Field: "tag_id", Message: "must be a positive integer"})
		}
		f.TagID = id
	}
	if len(fields) > 0 {
		return f, &dto.ValidationError{Fields: fields}
	}
	return f, nil
}

// GetTask handles GET /v1/tasks/:id and includes the task's tags.
func (h *API) GetTask(c echo.Context) error {
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
	ctx := c.Request().Context()
	t, err := repository.NewTaskRepo(sess).GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return respondError(c, err)
	}
	tags, err := repository.NewTagRepo(sess).ListForTask(ctx, t.ID)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.NewTaskResponse(t)
	resp.Tags = dto.NewTagResponses(tags)
	return c.JSON(http.StatusOK, resp)
}

// UpdateTask handles PATCH /v1/tasks/:id. Only the fields present in the
// body change; updated_at is refreshed.
func (h *API) UpdateTask(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TaskUpdate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	tasks := repository.NewTaskRepo(sess)
	t, err := tasks.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return respondError(c, err)
	}
	if in.Empty() {
		return c.JSON(http.StatusOK, dto.NewTaskResponse(t))
	}
	if err := in.Apply(t); err != nil {
		return respondError(c, err)
	}
	if err := tasks.Update(ctx, t); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(t))
}

// DeleteTask handles DELETE /v1/tasks/:id.
func (h *API) DeleteTask(c echo.Context) error {
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
	if err := repository.NewTaskRepo(sess).Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTaskTags handles GET /v1/tasks/:id/tags.
func (h *API) ListTaskTags(c echo.Context) error {
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
	ctx := c.Request().Context()
	if _, err := repository.NewTaskRepo(sess).GetByIDAndOwner(ctx, id, uid); err != nil {
		return respondError(c, err)
	}
	tags, err := repository.NewTagRepo(sess).ListForTask(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": dto.NewTagResponses(tags)})
}

// AttachTag handles PUT /v1/tasks/:id/tags/:tag_id. Attaching a tag that
// is already attached succeeds.
func (h *API) AttachTag(c echo.Context) error {
	return h.linkTag(c, true)
}

// DetachTag handles DELETE /v1/tasks/:id/tags/:tag_id.
func (h *API) DetachTag(c echo.Context) error {
	return h.linkTag(c, false)
}

func (h *API) linkTag(c echo.Context, attach bool) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := pathID(c, "tag_id")
	if err != nil {
		return respondError(c, err)
	}
	sess, err := session(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	// both ends must belong to the caller
	if _, err := repository.NewTaskRepo(sess).GetByIDAndOwner(ctx, taskID, uid); err != nil {
		return respondError(c, err)
	}
	tags := repository.NewTagRepo(sess)
	if _, err := tags.GetByIDAndOwner(ctx, tagID, uid); err != nil {
		return respondError(c, err)
	}
	if attach {
		err = tags.Attach(ctx, taskID, tagID)
		if errors.Is(err, repository.ErrDuplicate) {
			err = nil
		}
	} else {
		err = tags.Detach(ctx, taskID, tagID)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
