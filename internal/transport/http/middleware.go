package http

import (
	"log"
	"net/http"
	"time"

	"github.com/Golffzza/wellness-server/internal/metrics"
)

// RequestLogger logs basic request details and latency, and records request
// metrics when m is non-nil.
func RequestLogger(next http.Handler, logger *log.Logger, m *metrics.Metrics) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		m.ObserveRequest(r.URL.Path, rec.status, elapsed)
		logger.Printf(
			"request method=%s path=%s status=%d duration=%s",
			r.Method,
			r.URL.Path,
			rec.status,
			elapsed,
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
