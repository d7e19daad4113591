package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/speernotes/notes-system/internal/api/handler"
	"github.com/speernotes/notes-system/internal/api/middleware"
	"github.com/speernotes/notes-system/internal/core/ports"
	"github.com/speernotes/notes-system/internal/ratelimit"
)

// Deps carries everything the router needs; all wiring happens in main.
type Deps struct {
	AuthService  ports.AuthService
	NotesService ports.NotesService
	Resolver     ports.PrincipalResolver
	Limiter      *ratelimit.Limiter
	Mongo        *mongo.Database
	Redis        *redis.Client
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The rate limiter runs before authentication so blocked clients never reach
// token validation; health and metrics endpoints sit outside both.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("notes"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	noteHandler := handler.NewNoteHandler(deps.NotesService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	// --- Health probes and metrics (no auth, no rate limit) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes, rate limited by client IP ---
	apiGroup := e.Group("/api", middleware.RateLimit(deps.Limiter))

	apiGroup.POST("/auth/signup", authHandler.Signup)
	apiGroup.POST("/auth/login", authHandler.Login)

	notes := apiGroup.Group("/notes", middleware.Auth(deps.Resolver))
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.GET("/search", noteHandler.Search)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)
	notes.POST("/:id/share", noteHandler.Share)

	return e
}
