package server

import (
	"context"
	"errors"
	"net"
	"time"

	"postapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ServeUntil serves app on ln until ctx is cancelled. It then stops accepting
// connections, waits up to timeout for in-flight requests, closes the pool and
// runs cleanups in order. It returns only after every step has finished.
func (s *Server) ServeUntil(ctx context.Context, app *fiber.App, ln net.Listener, timeout time.Duration, cleanups ...func(context.Context) error) error {
	served := make(chan error, 1)
	go func() {
		served <- app.Listener(ln)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	middleware.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	// Serving may not have started yet when ctx was already done.
	_ = ln.Close()
	if err := <-served; err != nil {
		middleware.Logger.Warn("Listener stopped with error", "error", err)
	}

	if err := s.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, cleanup := range cleanups {
		if err := cleanup(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
