package handler // handler defines http handlers

import (
	"errors"   // errors matches sentinel values returned by repositories
	"io"       // io reads request bodies
	"net/http" // net/http provides status codes
	"strconv"  // strconv parses path parameters

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/task-manager/internal/config"
	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/dto"
	"github.com/iliyamo/task-manager/internal/middleware"
	"github.com/iliyamo/task-manager/internal/repository"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var (
	errUnauthorized = errors.New("unauthorized")
	errNoSession    = errors.New("no database session on request")
)

// API bundles the configuration shared by all handlers. Repositories are
// built per request on top of the request's session.
type API struct {
	Cfg config.Config
}

func NewAPI(cfg config.Config) *API {
	return &API{Cfg: cfg}
}

// getUserID extracts the authenticated user from echo.Context.
func getUserID(c echo.Context) (uint64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, errUnauthorized
	}
	return id, nil
}

// session returns the request-scoped database session.
func session(c echo.Context) (*database.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &dto.ValidationError{Fields: []dto.FieldError{{Field: name, Message: "must be a positive integer"}}}
	}
	return id, nil
}

// bind decodes and validates the JSON body into v. Wrong JSON types are
// reported as field errors rather than silently dropped.
func bind(c echo.Context, v any) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read body")
	}
	return dto.Parse(data, v)
}

// respondError maps domain errors onto HTTP responses. Anything it does not
// recognise is logged and reported as a 500 without details.
func respondError(c echo.Context, err error) error {
	var ve *dto.ValidationError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "errors": ve.Fields})
	case errors.As(err, &he):
		return c.JSON(he.Code, echo.Map{"error": he.Message})
	case errors.Is(err, errUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
	case errors.Is(err, repository.ErrReference):
		return c.JSON(http.StatusConflict, echo.Map{"error": "referenced resource does not exist"})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
