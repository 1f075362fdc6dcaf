package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"postapi/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedApp(t *testing.T) (*fiber.App, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previousTracer := observability.Tracer
	previousPropagator := otel.GetTextMapPropagator()
	observability.Tracer = tp.Tracer("test")
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		observability.Tracer = previousTracer
		otel.SetTextMapPropagator(previousPropagator)
	})

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Use(ContextMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		fromCtx, _ := c.UserContext().Value(TraceIDKey).(string)
		return c.SendString(fromCtx)
	})
	return app, recorder
}

func TestTracingMiddleware_ExposesTraceID(t *testing.T) {
	app, recorder := tracedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	traceID := resp.Header.Get("X-Trace-ID")
	assert.Len(t, traceID, 32)
	assert.Equal(t, traceID, string(body), "trace id reaches the request context")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /ping", spans[0].Name())
	assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())
}

func TestTracingMiddleware_ContinuesIncomingTrace(t *testing.T) {
	app, _ := tracedApp(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", resp.Header.Get("X-Trace-ID"))
}

func TestTracingMiddleware_NoopTracer(t *testing.T) {
	previous := observability.Tracer
	observability.Tracer = otel.GetTracerProvider().Tracer("noop")
	t.Cleanup(func() { observability.Tracer = previous })

	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("X-Trace-ID"))
}
