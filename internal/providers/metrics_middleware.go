package providers

import (
	"net/http"
	"time"
)

const eventStreamType = "text/event-stream"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware counts requests per path and status. Event streams are
// counted but their lifetime is not observed as a request duration.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.URL.Path
		metrics.IncRequestsTotal(endpoint, sw.status)
		if sw.Header().Get("Content-Type") == eventStreamType {
			return
		}
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
