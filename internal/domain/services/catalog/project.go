package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*catalog.Project, error)

	// GetProject retrieves a project by ID, failing with a NotFoundError when absent
	GetProject(ctx context.Context, id string) (*catalog.Project, error)

	// ListProjects retrieves all projects
	ListProjects(ctx context.Context) ([]catalog.Project, error)
}
