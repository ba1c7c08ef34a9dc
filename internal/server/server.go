// Package server contains the HTTP handlers for the ModelHub API.
package server

import (
	"context"
	"errors"
	"log"
	"time"

	_ "modelhub/docs" // swagger docs
	"modelhub/internal/bootstrap"
	"modelhub/internal/cache"
	"modelhub/internal/config"
	"modelhub/internal/middleware"
	"modelhub/internal/models"
	"modelhub/internal/observability"
	"modelhub/internal/repository"
	"modelhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// APIVersion is reported by the root banner.
const APIVersion = "1.0.0"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	modelRepo      repository.ModelRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	credentials    *service.CredentialService
	userService    *service.UserService
	modelService   *service.ModelService
	commentService *service.CommentService
	likeService    *service.LikeService
}

// NewServer connects to the database and Redis and builds a server on them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedCategories: true})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case logout does not revoke tokens.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		userRepo:       repository.NewUserRepository(db),
		modelRepo:      repository.NewModelRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
	}

	credentials, err := service.NewCredentialService(cfg, s.userRepo, cache.NewDenylist(redisClient))
	if err != nil {
		return nil, err
	}
	s.credentials = credentials
	s.userService = service.NewUserService(s.userRepo, credentials)
	s.modelService = service.NewModelService(s.modelRepo)
	s.commentService = service.NewCommentService(s.commentRepo)
	s.likeService = service.NewLikeService(s.likeRepo)

	return s, nil
}

// NewApp builds the Fiber application with all middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AI Model Hub",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler answers errors that escaped a handler in the same
// {"detail", "code"} shape the handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := models.CodeInternal
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			code = models.CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = models.CodeValidation
		}
		return models.RespondWithError(c, fiberErr.Code, &models.AppError{Code: code, Message: fiberErr.Message})
	}

	status := models.StatusForError(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	}
	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Server span; must run before ContextMiddleware so the trace ID reaches the logs
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// Credentials cannot be combined with a wildcard origin.
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	app.Get("/docs/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "AI Model Hub Metrics Dashboard",
	}))

	authRequired := s.AuthRequired()

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Get("/me", authRequired, s.GetMe)
	auth.Put("/me", authRequired, s.UpdateMe)
	auth.Post("/logout", authRequired, s.Logout)

	// Model routes
	catalog := api.Group("/models")
	catalog.Get("/", s.ListModels)
	catalog.Post("/", authRequired, s.CreateModel)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	catalog.Get("/:id/comments", s.ListComments)
	catalog.Post("/:id/comments", authRequired, s.CreateComment)
	catalog.Get("/:id/like/status", authRequired, s.LikeStatus)
	catalog.Post("/:id/like", authRequired, s.LikeModel)
	catalog.Delete("/:id/like", authRequired, s.UnlikeModel)
	catalog.Post("/:id/download", s.DownloadModel)
	catalog.Get("/:id", s.GetModel)
	catalog.Put("/:id", authRequired, s.UpdateModel)
	catalog.Delete("/:id", authRequired, s.DeleteModel)

	api.Delete("/comments/:id", authRequired, s.DeleteComment)
}

// Root handles GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "AI Model Hub API",
		"docs":    "/docs",
		"version": APIVersion,
	})
}

// HealthCheck handles GET /health. It reports unhealthy when the database
// does not answer a ping.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		middleware.Logger.WarnContext(ctx, "health check failed", "error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy"})
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}

// AuthRequired resolves the bearer token to an active user. On success the
// user, its ID and the token claims are stored in the "user", "userID" and
// "claims" locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := middleware.BearerToken(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Not authenticated"))
		}

		claims, err := s.credentials.ParseToken(token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		user, err := s.credentials.ResolveClaims(c.UserContext(), claims)
		if err != nil {
			return respond(c, err)
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.Locals("claims", claims)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
