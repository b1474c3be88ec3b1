// Package context carries request-scoped values between the delivery layer
// and the services below it: the request ID minted by the middleware and the
// logger derived from it.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header the request ID travels in, both inbound
// (client-supplied) and outbound (echoed on every response).
const HeaderXRequestID = "X-Request-Id"

// echoKeyRequestID keys the request ID inside echo's per-request store.
const echoKeyRequestID = "request_id"

// ctxKey keeps context values private to this package so no other package
// can overwrite them.
type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyLogger
)

// SetRequestID stores the request ID in echo's per-request store for
// response rendering.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestID reads the request ID from echo's per-request store. Returns
// the empty string when the middleware has not run.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// WithRequestID returns a context carrying the request ID down into the
// service layer.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// GetRequestIDFromContext extracts the request ID from a context.Context.
// Returns the empty string for background contexts, e.g. the worker sweeps.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)

	return id
}

// WithLogger returns a context carrying the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// GetLoggerOrDefault extracts the request-scoped logger from the context,
// falling back to the supplied logger when there is none. Services call this
// so order and reconcile logs keep the request ID attached without threading
// loggers through every signature.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
