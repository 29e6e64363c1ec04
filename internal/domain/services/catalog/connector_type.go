package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// CreateConnectorTypeRequest attaches the relation identified by
// (Language, TargetModule) to the connector type called Name
type CreateConnectorTypeRequest struct {
	Language     string `json:"language"`
	TargetModule string `json:"targetModule"`
	Name         string `json:"name"`
}

// UpdateConnectorTypeRequest is a partial update; nil fields are left unchanged
type UpdateConnectorTypeRequest struct {
	Name     *string             `json:"name"`
	Relation *catalog.RelationOp `json:"relation"`
}

// ConnectorTypeService defines business logic operations for connector types
type ConnectorTypeService interface {
	// CreateConnectorType looks up the relation and upserts the connector type by name.
	// Fails with domain.ErrNoSuchRelation when the relation does not exist.
	CreateConnectorType(ctx context.Context, projectID string, req *CreateConnectorTypeRequest) error

	// ListConnectorTypes returns the project's connector types with their relations resolved
	ListConnectorTypes(ctx context.Context, projectID string) ([]catalog.ConnectorTypeWithRelations, error)

	// GetConnectorType returns one connector type with its relations resolved
	GetConnectorType(ctx context.Context, projectID, id string) (*catalog.ConnectorTypeWithRelations, error)

	UpdateConnectorType(ctx context.Context, projectID, id string, req *UpdateConnectorTypeRequest) error

	DeleteConnectorType(ctx context.Context, projectID, id string) error
}
