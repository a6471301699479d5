package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project

	"github.com/iliyamo/task-manager/internal/database"
)

// Health reports liveness for load balancers. When a store is given it
// also acquires and releases a session, which pings client-server
// databases, and answers 503 if that fails.
func Health(store *database.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if store == nil {
			return c.String(http.StatusOK, "ok")
		}
		if err := store.WithSession(c.Request().Context(), func(*database.Session) error { return nil }); err != nil {
			c.Logger().Warnf("healthz: %v", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "database": string(store.Kind())})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "database": string(store.Kind())})
	}
}
