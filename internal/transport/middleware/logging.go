package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// sensitiveParams are form/query field names never echoed into logs.
var sensitiveParams = []string{
	"senha",
	"password",
	"token",
	"authorization",
	"secret",
	"api_key",
	"session",
}

// LoggingMiddleware logs one line per request with method, path, status,
// and duration. Bodies are never logged: form posts on this surface carry
// passwords.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(ww, r)

			status := ww.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			} else if status >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", filterQuery(r.URL.RawQuery),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func filterQuery(raw string) string {
	if raw == "" {
		return ""
	}
	pairs := strings.Split(raw, "&")
	for i, pair := range pairs {
		name := pair
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			name = pair[:idx]
		}
		lower := strings.ToLower(name)
		for _, sensitive := range sensitiveParams {
			if strings.Contains(lower, sensitive) {
				pairs[i] = name + "=[FILTERED]"
				break
			}
		}
	}
	return strings.Join(pairs, "&")
}
