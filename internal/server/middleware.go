package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// responseWriter captures the status code written by a handler and stamps
// the processing-time header just before the response is flushed.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	start      time.Time
}

func (w *responseWriter) WriteHeader(code int) {
	w.Header().Set("X-Process-Time", fmt.Sprintf("%.3f", time.Since(w.start).Seconds()))
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// withInstrumentation wraps a handler with request logging, a processing-time
// response header and per-endpoint request metrics.
func withInstrumentation(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			start:          time.Now(),
		}

		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(wrapped.start)
		httpRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"elapsed", elapsed,
		)
	}
}
