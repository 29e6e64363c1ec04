package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// ConnectorTypeRepository defines data access operations for connector types
type ConnectorTypeRepository interface {
	// UpsertByName finds the connector type called name and adds relationID
	// to its relation set, creating it when missing. The match is on name
	// only; projectID is written but not matched.
	UpsertByName(ctx context.Context, projectID, name, relationID string) error

	// GetByID returns the connector type or a NotFoundError
	GetByID(ctx context.Context, id string) (*catalog.ConnectorType, error)

	// FindByName returns the connector type called name in any project,
	// or nil, nil when there is none
	FindByName(ctx context.Context, name string) (*catalog.ConnectorType, error)

	ListByProject(ctx context.Context, projectID string) ([]catalog.ConnectorType, error)

	// Update applies a partial patch. An empty patch only checks existence.
	// A rename onto a taken name fails with a ConflictError.
	Update(ctx context.Context, id string, patch catalog.ConnectorTypePatch) error

	Delete(ctx context.Context, id string) error
}
