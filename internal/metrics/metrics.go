package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fyyur/internal/apperrors"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyyur",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fyyur",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyyur",
		Name:      "store_operations_total",
		Help:      "Directory operations by name and outcome kind.",
	}, []string{"operation", "outcome"})

	ChangeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fyyur",
		Name:      "change_events_total",
		Help:      "Change feed publish attempts by event type and outcome.",
	}, []string{"type", "outcome"})
)

// ObserveStoreOperation counts one directory operation under the kind of
// its error ("ok" on success).
func ObserveStoreOperation(operation string, err error) {
	StoreOperations.WithLabelValues(operation, apperrors.Kind(err)).Inc()
}

func ObserveChangeEvent(eventType string, err error) {
	outcome := "published"
	if err != nil {
		outcome = "failed"
	}
	ChangeEvents.WithLabelValues(eventType, outcome).Inc()
}

// Middleware records count and latency per chi route pattern, so
// /venues/1 and /venues/2 share one series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
