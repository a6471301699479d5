package middleware

// identity.go holds the accessors for values the middleware chain stores on
// the echo context, so handlers never depend on the raw keys.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey  = "user_id"
	sessionKey = "session"
)

// UserID returns the authenticated user set by JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(userIDKey).(uint64)
	return id, ok && id != 0
}

// userKey identifies the caller for rate limiting; "anon" before JWTAuth
// has run or on public routes.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
