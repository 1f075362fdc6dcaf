package server

import (
	"errors"
	"strconv"
	"strings"

	"postapi/internal/middleware"
	"postapi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const msgInvalidBody = "Invalid request body"

// parseID extracts a route parameter as a positive uint. Routes constrain ids
// to positive integers, so a failure here answers like an unmatched route.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		_ = s.NotFound(c)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// decodeBody unmarshals a JSON request body into dst. An empty body leaves dst
// untouched so the required-field checks report what is missing.
func (s *Server) decodeBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(msgInvalidBody))
		return errResponseWritten
	}
	return nil
}

// mapServiceError writes the status and body for an error returned by the service layer.
func (s *Server) mapServiceError(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	status := appErr.Status()

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed on store access",
			"path", c.Path(),
			"error", appErr.Error(),
		)
	}
	return models.RespondWithError(c, status, appErr)
}

// NotFound answers any request no route matched.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Not found"})
}

// MethodNotAllowed answers a known path requested with a method it does not serve.
// Registered after the path's real handlers, so it only sees the other methods.
func (s *Server) MethodNotAllowed(allowed ...string) fiber.Handler {
	allow := strings.Join(allowed, ", ")
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allow)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(models.ErrorResponse{Error: "Method not allowed"})
	}
}

// ErrorHandler renders errors that escape handlers and middleware as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		code = appErr.Status()
		message = appErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	}
	return c.Status(code).JSON(models.ErrorResponse{Error: message})
}
