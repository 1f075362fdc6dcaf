package server

import (
	"time"

	"postapi/internal/database"
	"postapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// endpointIndex is the static description served at the root path.
var endpointIndex = fiber.Map{
	"service": "API Service",
	"version": "1.0.0",
	"endpoints": fiber.Map{
		"health": "/health",
		"users": fiber.Map{
			"list":   "GET /users",
			"get":    "GET /users/<id>",
			"create": "POST /users",
		},
		"posts": fiber.Map{
			"list":    "GET /posts",
			"get":     "GET /posts/<id>",
			"create":  "POST /posts",
			"by_user": "GET /users/<id>/posts",
		},
	},
}

// Root handles GET /
// @Summary Service description
// @Tags meta
// @Produce json
// @Success 200 {object} object{service=string,version=string,endpoints=object}
// @Router / [get]
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(endpointIndex)
}

// HealthCheck handles GET /health. It takes a connection from the pool and
// hands it straight back; no query is run.
// @Summary Store connectivity check
// @Tags meta
// @Produce json
// @Success 200 {object} object{status=string,database=string}
// @Failure 503 {object} object{status=string,error=string}
// @Router /health [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	if err := database.Acquire(c.UserContext(), s.db); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "health check failed", "error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}
