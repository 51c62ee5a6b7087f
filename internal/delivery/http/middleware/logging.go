package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging emits one structured line per request, including the response
// status. Crawl-all requests legitimately run for minutes, so duration
// is logged in milliseconds rather than sampled into buckets here.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}
