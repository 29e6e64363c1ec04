package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// CIPRepository defines data access operations for CIPs
type CIPRepository interface {
	// Create validates the CIP before writing anything and returns the
	// stored copy with its new ID
	Create(ctx context.Context, cip *catalog.CIP) (*catalog.CIP, error)

	ListByConnectorType(ctx context.Context, projectID, connectorType string) ([]catalog.CIP, error)

	// Update applies an unvalidated partial patch. A CIP outside projectID
	// is reported as not found.
	Update(ctx context.Context, projectID, id string, patch catalog.CIPPatch) error

	// Delete removes a CIP owned by projectID
	Delete(ctx context.Context, projectID, id string) error
}
