package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interlink/internal/domain"
	"interlink/internal/domain/models/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/httputil"
)

func TestRecovery(t *testing.T) {
	handler := Recovery(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"internal server error"`)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := metrics.Middleware(mux)

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET /items/{id}", "GET", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.inFlight))

	count, err := testutil.GatherAndCount(reg, "interlink_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

type stubProjects struct {
	projects map[string]*catalog.Project
	err      error
}

func (s stubProjects) CreateProject(context.Context, *catalogSvc.CreateProjectRequest) (*catalog.Project, error) {
	return nil, errors.New("not implemented")
}

func (s stubProjects) ListProjects(context.Context) ([]catalog.Project, error) {
	return nil, errors.New("not implemented")
}

func (s stubProjects) GetProject(_ context.Context, id string) (*catalog.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.projects[id]; ok {
		return p, nil
	}
	return nil, &domain.NotFoundError{Message: "project " + id + " not found"}
}

func TestRequireProject(t *testing.T) {
	demo := &catalog.Project{ID: "p1", Name: "demo"}

	tests := []struct {
		name       string
		projects   stubProjects
		path       string
		wantStatus int
	}{
		{name: "known project", projects: stubProjects{projects: map[string]*catalog.Project{"p1": demo}}, path: "/projects/p1", wantStatus: http.StatusOK},
		{name: "unknown project", projects: stubProjects{}, path: "/projects/p2", wantStatus: http.StatusNotFound},
		{name: "store failure", projects: stubProjects{err: errors.New("connection reset")}, path: "/projects/p1", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *catalog.Project
			mux := http.NewServeMux()
			mux.HandleFunc("GET /projects/{projectID}", RequireProject(tt.projects, slog.New(slog.DiscardHandler))(
				func(w http.ResponseWriter, r *http.Request) {
					seen = httputil.GetProject(r)
					w.WriteHeader(http.StatusOK)
				},
			))

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, demo, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRecovery_ReraisesAbort(t *testing.T) {
	handler := Recovery(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestCORS_Preflight(t *testing.T) {
	const origin = "http://localhost:3000"
	handler := CORS([]string{origin})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name        string
		origin      string
		method      string
		wantAllowed bool
	}{
		{name: "put id scheme", origin: origin, method: http.MethodPut, wantAllowed: true},
		{name: "patch", origin: origin, method: http.MethodPatch, wantAllowed: true},
		{name: "delete", origin: origin, method: http.MethodDelete, wantAllowed: true},
		{name: "unsupported method", origin: origin, method: http.MethodTrace, wantAllowed: false},
		{name: "foreign origin", origin: "http://evil.test", method: http.MethodPut, wantAllowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/projects/p1/idschemes", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", tt.method)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusTeapot, rec.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
