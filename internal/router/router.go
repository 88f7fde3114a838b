// Package router assembles the HTTP pipeline. Public routes are registered
// first; every task route sits behind the identity middleware.
package router

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/apidocs"
	"github.com/yukikurage/task-tracker/internal/auth"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/constants"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"gorm.io/gorm"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Logger         *slog.Logger
	DB             *gorm.DB
	Tokens         auth.TokenService
	AuthService    *services.AuthService
	TaskService    *services.TaskService
	Docs           *apidocs.Docs
	RequestTimeout time.Duration
}

// Build constructs the full dependency graph from configuration.
func Build(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*gin.Engine, error) {
	tokens, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create token service: %w", err)
	}

	docs, err := apidocs.Load()
	if err != nil {
		return nil, err
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return New(Deps{
		Logger:         logger,
		DB:             db,
		Tokens:         tokens,
		AuthService:    services.NewAuthService(userRepo, hasher, tokens),
		TaskService:    services.NewTaskService(taskRepo),
		Docs:           docs,
		RequestTimeout: cfg.RequestTimeout,
	}), nil
}

// New registers all routes on a fresh engine.
func New(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
			apierrors.InternalError(c, "")
		}),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.RequestLogger(logger),
		middleware.Timeout(deps.RequestTimeout),
	)

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	requireAuth := middleware.RequireAuth(deps.Tokens)

	// Public routes
	if deps.DB != nil {
		r.GET("/health", handlers.NewHealthHandler(deps.DB).Health)
	}
	if deps.Docs != nil {
		deps.Docs.Register(r, "/api-docs")
	}
	users := r.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}

	// Everything below requires a valid bearer token
	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:"+constants.ParamTaskID, middleware.TaskIDParam(), taskHandler.GetTask)
		tasks.PUT("/:"+constants.ParamTaskID, middleware.TaskIDParam(), taskHandler.UpdateTask)
		tasks.DELETE("/:"+constants.ParamTaskID, middleware.TaskIDParam(), taskHandler.DeleteTask)
	}

	// Unmatched routes are protected too, so probing them without a token
	// reveals nothing.
	r.NoRoute(requireAuth, func(c *gin.Context) {
		apierrors.NotFound(c, "")
	})

	return r
}
