package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/task-manager/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject into the request context. The provided secret
// must match the one used when issuing tokens. Handlers read the
// authenticated user through UserID.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(userIDKey, uid)
			return next(c)
		}
	}
}
