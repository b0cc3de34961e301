package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"fyyur/internal/apperrors"
)

func TestObserveStoreOperation(t *testing.T) {
	okBefore := testutil.ToFloat64(StoreOperations.WithLabelValues("create_venue", "ok"))
	nfBefore := testutil.ToFloat64(StoreOperations.WithLabelValues("get_venue", "not_found"))

	ObserveStoreOperation("create_venue", nil)
	ObserveStoreOperation("get_venue", apperrors.NotFound("venue", 3))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(StoreOperations.WithLabelValues("create_venue", "ok")))
	assert.Equal(t, nfBefore+1, testutil.ToFloat64(StoreOperations.WithLabelValues("get_venue", "not_found")))
}

func TestObserveChangeEvent(t *testing.T) {
	before := testutil.ToFloat64(ChangeEvents.WithLabelValues("show.listed", "failed"))
	ObserveChangeEvent("show.listed", errors.New("broker down"))
	assert.Equal(t, before+1, testutil.ToFloat64(ChangeEvents.WithLabelValues("show.listed", "failed")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/venues/{venueID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", Handler())

	counter := HTTPRequests.WithLabelValues(http.MethodGet, "/venues/{venueID}", "404")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/venues/1", "/venues/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fyyur_http_requests_total")
}
