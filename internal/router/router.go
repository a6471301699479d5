package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // request logging and panic recovery
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/task-manager/internal/config"
	"github.com/iliyamo/task-manager/internal/database"
	"github.com/iliyamo/task-manager/internal/dto"
	"github.com/iliyamo/task-manager/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/task-manager/internal/middleware" // import middleware for JWT authentication and sessions
)

// New builds the Echo instance with every route registered. rdb may be nil,
// in which case rate limiting is off.
func New(cfg config.Config, store *database.Store, rl config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = dto.NewValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := handler.NewAPI(cfg)
	limiter := middleware.NewTokenBucket(rl, rdb)

	RegisterRoutes(e, store)
	RegisterAuth(e, api, store, limiter)
	RegisterAPI(e, api, store, cfg.JWTSecret, limiter)
	return e
}

// RegisterRoutes registers routes that do not require authentication or a
// session. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, store *database.Store) {
	e.GET("/healthz", handler.Health(store))
}

// RegisterAuth registers the unauthenticated account endpoints under
// /v1/auth. They still need a database session.
func RegisterAuth(e *echo.Echo, a *handler.API, store *database.Store, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter, middleware.Session(store))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterAPI registers the protected endpoints under /v1. JWTAuth runs
// first so the limiter can key on the user and no session is acquired for
// rejected requests.
func RegisterAPI(e *echo.Echo, a *handler.API, store *database.Store, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), limiter, middleware.Session(store))

	g.GET("/me", a.Me)
	g.DELETE("/me", a.DeleteMe)

	g.GET("/tasks", a.ListTasks)
	g.POST("/tasks", a.CreateTask)
	g.GET("/tasks/:id", a.GetTask)
	g.PATCH("/tasks/:id", a.UpdateTask)
	g.DELETE("/tasks/:id", a.DeleteTask)
	g.GET("/tasks/:id/tags", a.ListTaskTags)
	g.PUT("/tasks/:id/tags/:tag_id", a.AttachTag)
	g.DELETE("/tasks/:id/tags/:tag_id", a.DetachTag)

	g.GET("/tags", a.ListTags)
	g.POST("/tags", a.CreateTag)
	g.PATCH("/tags/:id", a.UpdateTag)
	g.DELETE("/tags/:id", a.DeleteTag)

	g.GET("/conversations", a.ListConversations)
	g.POST("/conversations", a.CreateConversation)
	g.GET("/conversations/:id", a.GetConversation)
	g.DELETE("/conversations/:id", a.DeleteConversation)
	g.GET("/conversations/:id/messages", a.ListMessages)
	g.POST("/conversations/:id/messages", a.CreateMessage)
}
