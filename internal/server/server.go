// Package server contains the HTTP handlers for the users and posts API.
package server

import (
	"context"
	"fmt"

	_ "postapi/docs" // swagger docs
	"postapi/internal/config"
	"postapi/internal/database"
	"postapi/internal/middleware"
	"postapi/internal/repository"
	"postapi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceName identifies the service in metrics and traces.
const ServiceName = "postapi"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	userService    *service.UserService
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server over an already-opened pool.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics(ServiceName),
		userRepo:       userRepo,
		postRepo:       postRepo,
		userService:    service.NewUserService(userRepo),
		postService:    service.NewPostService(postRepo),
	}
}

// FiberConfig returns the Fiber settings the API is served with.
func FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:      "API Service",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	}
}

// App builds a Fiber app with the full middleware stack and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(FiberConfig())
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Tracing runs before the context middleware so the trace ID reaches the logger.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := "*"
	if s.config != nil && s.config.AllowedOrigins != "" {
		origins = s.config.AllowedOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.All("/", s.MethodNotAllowed(fiber.MethodGet))

	app.Get("/health", s.HealthCheck)
	app.All("/health", s.MethodNotAllowed(fiber.MethodGet))
	app.Get("/health/live", s.LivenessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	users := app.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", s.CreateUser)
	users.All("/", s.MethodNotAllowed(fiber.MethodGet, fiber.MethodPost))
	// Specific /:id/posts route before generic /:id
	users.Get("/:id<int;min(1)>/posts", s.GetUserPosts)
	users.All("/:id<int;min(1)>/posts", s.MethodNotAllowed(fiber.MethodGet))
	users.Get("/:id<int;min(1)>", s.GetUser)
	users.All("/:id<int;min(1)>", s.MethodNotAllowed(fiber.MethodGet))

	posts := app.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.CreatePost)
	posts.All("/", s.MethodNotAllowed(fiber.MethodGet, fiber.MethodPost))
	posts.Get("/:id<int;min(1)>", s.GetPost)
	posts.All("/:id<int;min(1)>", s.MethodNotAllowed(fiber.MethodGet))

	// Anything unmatched, including non-integer ids.
	app.Use(s.NotFound)
}

// Shutdown releases the store pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	middleware.Logger.InfoContext(ctx, "Closing database pool")
	return database.Close(s.db)
}

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo)
	}
	return s.userService
}

func (s *Server) postSvc() *service.PostService {
	if s.postService == nil {
		s.postService = service.NewPostService(s.postRepo)
	}
	return s.postService
}
