package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create inserts a project and returns it with its generated ID
	Create(ctx context.Context, name string) (*catalog.Project, error)

	// List returns every project, in no particular order
	List(ctx context.Context) ([]catalog.Project, error)

	// GetByID returns the project, or nil (and no error) when it does not exist
	GetByID(ctx context.Context, id string) (*catalog.Project, error)
}
