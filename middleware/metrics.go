package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics collects HTTP request metrics. The path label is the chi route pattern, so
// tournament ids do not blow up the label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.Method
		metrics.RequestInProgress.WithLabelValues(method).Inc()
		defer metrics.RequestInProgress.WithLabelValues(method).Dec()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		path := routePattern(r)
		labels := []string{strconv.Itoa(status), method, path}
		metrics.RequestCounter.WithLabelValues(labels...).Inc()
		metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
