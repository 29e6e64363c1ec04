package catalog

import (
	"context"

	"interlink/internal/domain/models/catalog"
)

// RelationRepository reads relations. Relations are written by ingestion
// (see the seed tool), never through the API.
type RelationRepository interface {
	// ListByProject returns the project's relations ordered by language, then target module
	ListByProject(ctx context.Context, projectID string) ([]catalog.Relation, error)

	// FindByTargetModule returns the exact match, or nil when there is none
	FindByTargetModule(ctx context.Context, projectID string, language catalog.Language, targetModule string) (*catalog.Relation, error)

	// ListByIDs fetches relations in one batch; unknown ids are omitted
	ListByIDs(ctx context.Context, ids []string) ([]catalog.Relation, error)

	// Insert stores a relation as-is. Used by ingestion only.
	Insert(ctx context.Context, relation *catalog.Relation) (*catalog.Relation, error)
}
