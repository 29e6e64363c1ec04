package httputil

import (
	"context"
	"net/http"

	"interlink/internal/domain/models/catalog"
)

// Context key type to avoid collisions
type contextKey string

const (
	projectKey contextKey = "project"
)

// WithProject adds the resolved project to the request context
func WithProject(r *http.Request, project *catalog.Project) *http.Request {
	ctx := context.WithValue(r.Context(), projectKey, project)
	return r.WithContext(ctx)
}

// GetProject retrieves the project resolved by middleware.RequireProject,
// or nil when the route is not project-scoped
func GetProject(r *http.Request) *catalog.Project {
	project, _ := r.Context().Value(projectKey).(*catalog.Project)
	return project
}
