package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	counted := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/version", "418"))
	assert.Equal(t, 1.0, counted)
}

func TestMiddlewareSkipsProbePaths(t *testing.T) {
	served := 0
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		counted := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, "200"))
		assert.Zero(t, counted, "probe path %s must stay uncounted", path)
	}
	assert.Equal(t, 3, served)
}
