package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// RelationService exposes relations to clients and to ingestion
type RelationService interface {
	// ListRelations returns relations ordered by language, then target module
	ListRelations(ctx context.Context, projectID string) ([]catalog.Relation, error)

	// LookupRelation finds the relation for (language, targetModule).
	// An unsupported language is a validation error; no match is a NotFoundError.
	LookupRelation(ctx context.Context, projectID, language, targetModule string) (*catalog.Relation, error)

	// ImportRelations validates and stores relations discovered outside the API
	ImportRelations(ctx context.Context, projectID string, relations []catalog.Relation) ([]catalog.Relation, error)
}
