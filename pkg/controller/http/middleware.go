package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"

	"github.com/cutover-io/cutover/pkg/domain/types"
)

// LoggingMiddleware returns a middleware that logs HTTP requests
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// statusFromError maps the workflow error taxonomy onto HTTP status codes.
// Remote failures become 502 since the provider, not this service, failed.
func statusFromError(err error) int {
	switch {
	case types.IsPrecondition(err):
		return http.StatusPreconditionFailed
	case types.IsConflict(err):
		return http.StatusConflict
	case types.IsParse(err):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// reportServerError forwards failures the caller cannot be blamed for to the
// error tracker. A no-op until sentry is initialized.
var reportServerError = func(err error) {
	sentry.CaptureException(err)
}

// writeError writes an error response. Server-side failures (5xx) are also
// reported to the error tracker when one is configured.
func writeError(w http.ResponseWriter, err error, status int) {
	if status >= http.StatusInternalServerError {
		reportServerError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}
