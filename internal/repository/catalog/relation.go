package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	"interlink/internal/repository/docstore"
)

type relationDocument struct {
	ProjectID    string           `json:"projectID"`
	TargetModule string           `json:"targetModule"`
	Language     catalog.Language `json:"language"`
	Calls        []catalog.Call   `json:"calls"`
}

// DocstoreRelationRepository implements the RelationRepository interface
type DocstoreRelationRepository struct {
	provider   *docstore.Provider
	collection string
	logger     *slog.Logger
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(config *RepositoryConfig) catalogRepo.RelationRepository {
	return &DocstoreRelationRepository{
		provider:   config.Provider,
		collection: config.Collections.Relations,
		logger:     config.Logger,
	}
}

// ListByProject lists relations ordered by (language, targetModule).
// The order is what clients display, so it is part of the contract.
func (r *DocstoreRelationRepository) ListByProject(ctx context.Context, projectID string) ([]catalog.Relation, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	docs, err := coll.Find(ctx,
		docstore.Where(fieldProjectID, projectID),
		docstore.Asc(fieldLanguage),
		docstore.Asc(fieldTargetModule),
	)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}

	return docstore.ExportAll[catalog.Relation](docs)
}

// FindByTargetModule returns nil when no relation matches all three fields
func (r *DocstoreRelationRepository) FindByTargetModule(ctx context.Context, projectID string, language catalog.Language, targetModule string) (*catalog.Relation, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	filter := docstore.Where(fieldProjectID, projectID).
		And(fieldLanguage, string(language)).
		And(fieldTargetModule, targetModule)

	doc, err := coll.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find relation: %w", err)
	}

	relation, err := docstore.Export[catalog.Relation](doc, nil)
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

// ListByIDs fetches relations in a single query. Malformed and unknown IDs
// are skipped; the result order is unspecified.
func (r *DocstoreRelationRepository) ListByIDs(ctx context.Context, ids []string) ([]catalog.Relation, error) {
	internalIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if parsed, ok := parseID(id); ok {
			internalIDs = append(internalIDs, parsed)
		} else {
			r.logger.Debug("skipping malformed relation id", "id", id)
		}
	}
	if len(internalIDs) == 0 {
		return []catalog.Relation{}, nil
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	docs, err := coll.Find(ctx, docstore.ByIDs(internalIDs))
	if err != nil {
		return nil, fmt.Errorf("list relations by id: %w", err)
	}

	return docstore.ExportAll[catalog.Relation](docs)
}

// Insert stores a relation
func (r *DocstoreRelationRepository) Insert(ctx context.Context, relation *catalog.Relation) (*catalog.Relation, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	body := relationDocument{
		ProjectID:    relation.ProjectID,
		TargetModule: relation.TargetModule,
		Language:     relation.Language,
		Calls:        relation.Calls,
	}
	if body.Calls == nil {
		body.Calls = []catalog.Call{}
	}

	id, err := coll.InsertOne(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("insert relation: %w", err)
	}

	stored := *relation
	stored.ID = id.String()
	stored.Calls = body.Calls
	return &stored, nil
}
