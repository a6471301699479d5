package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/database"
)

// Session scopes one database session to each request. The session is
// released after the handler returns, including when it panics; Recover
// further up the chain turns the panic into a 500.
func Session(store *database.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := store.Acquire(c.Request().Context())
			if err != nil {
				c.Logger().Errorf("session: %v", err)
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "database unavailable"})
			}
			defer func() {
				if err := sess.Release(); err != nil {
					c.Logger().Warnf("session: release: %v", err)
				}
			}()
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Session, or nil when the
// route is not wrapped by it.
func SessionFrom(c echo.Context) *database.Session {
	sess, _ := c.Get(sessionKey).(*database.Session)
	return sess
}
