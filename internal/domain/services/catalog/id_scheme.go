package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// UpsertIDSchemeRequest is transport-agnostic (no JSON tags); the handler
// maps the tri-state howTo onto HowTo: nil keeps, "" clears, other sets.
type UpsertIDSchemeRequest struct {
	Name  string
	HowTo *string
}

// IDSchemeService defines business logic operations for ID schemes
type IDSchemeService interface {
	ListIDSchemes(ctx context.Context, projectID string) ([]catalog.IDScheme, error)

	UpsertIDScheme(ctx context.Context, projectID string, req *UpsertIDSchemeRequest) error
}
