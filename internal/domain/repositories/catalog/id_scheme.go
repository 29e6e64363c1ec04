package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// IDSchemeRepository defines data access operations for ID schemes
type IDSchemeRepository interface {
	// Upsert writes the scheme keyed by (projectID, name). A nil howTo keeps
	// the stored description; an empty one clears it.
	Upsert(ctx context.Context, projectID, name string, howTo *string) error

	// UpsertMany upserts each name in order. It is not atomic: the first
	// failure stops the batch and earlier names stay written.
	UpsertMany(ctx context.Context, names []string, projectID string) error

	ListByProject(ctx context.Context, projectID string) ([]catalog.IDScheme, error)
}
