package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter(skip ...string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware(skip...))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/v1/postal-codes/{code}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "code") == "00000" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	r.Post("/api/v1/locations/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, http.NoBody))
	return rr
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := newRouter()
	const route = "/api/v1/postal-codes/{code}"

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", route, "200"))
	serve(r, "GET", "/api/v1/postal-codes/10001")
	serve(r, "GET", "/api/v1/postal-codes/60601")
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", route, "200"))

	if after-before != 2 {
		t.Errorf("expected 2 requests under %s, got %v", route, after-before)
	}
	if testutil.CollectAndCount(HTTPRequestDuration) == 0 {
		t.Error("expected latency observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method, path, route, status string
	}{
		{"GET", "/api/v1/postal-codes/10001", "/api/v1/postal-codes/{code}", "200"},
		{"GET", "/api/v1/postal-codes/00000", "/api/v1/postal-codes/{code}", "404"},
		{"POST", "/api/v1/locations/search", "/api/v1/locations/search", "400"},
	}
	for _, tc := range tests {
		t.Run(tc.path+" "+tc.status, func(t *testing.T) {
			before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			serve(r, tc.method, tc.path)
			after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			if after-before != 1 {
				t.Errorf("expected one request with status %s, got %v", tc.status, after-before)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoutesShareOneLabel(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))
	serve(r, "GET", "/wp-login.php")
	serve(r, "GET", "/.env")
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404"))

	if after-before != 2 {
		t.Errorf("expected 2 unmatched requests, got %v", after-before)
	}
}

func TestMiddleware_SkipsProbePaths(t *testing.T) {
	r := newRouter("/health")

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	if rr := serve(r, "GET", "/health"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))

	if after != before {
		t.Errorf("skipped path was recorded: %v -> %v", before, after)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	serve(newRouter(), "GET", "/api/v1/postal-codes/10001")
	if v := testutil.ToFloat64(HTTPRequestsInFlight); v != 0 {
		t.Errorf("expected no requests in flight, got %v", v)
	}
}
