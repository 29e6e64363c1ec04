package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	"interlink/internal/repository/docstore"
)

// DocstoreIDSchemeRepository implements the IDSchemeRepository interface
type DocstoreIDSchemeRepository struct {
	provider   *docstore.Provider
	collection string
	logger     *slog.Logger
}

// NewIDSchemeRepository creates a new ID scheme repository
func NewIDSchemeRepository(config *RepositoryConfig) catalogRepo.IDSchemeRepository {
	return &DocstoreIDSchemeRepository{
		provider:   config.Provider,
		collection: config.Collections.IDSchemes,
		logger:     config.Logger,
	}
}

// Upsert creates or replaces the scheme keyed by (projectID, name)
func (r *DocstoreIDSchemeRepository) Upsert(ctx context.Context, projectID, name string, howTo *string) error {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return err
	}

	update := docstore.Set(fieldProjectID, projectID).Set(fieldName, name)
	if howTo != nil {
		if *howTo == "" {
			update = update.Unset(fieldHowTo)
		} else {
			update = update.Set(fieldHowTo, *howTo)
		}
	}

	filter := docstore.Where(fieldProjectID, projectID).And(fieldName, name)
	if _, err := coll.UpdateOne(ctx, filter, update, docstore.Upsert()); err != nil {
		return fmt.Errorf("upsert id scheme %q: %w", name, err)
	}
	return nil
}

// UpsertMany upserts each name in order, stopping at the first failure.
// Names before the failing one stay written.
func (r *DocstoreIDSchemeRepository) UpsertMany(ctx context.Context, names []string, projectID string) error {
	for i, name := range names {
		if err := r.Upsert(ctx, projectID, name, nil); err != nil {
			r.logger.Warn("id scheme batch stopped",
				"project_id", projectID,
				"written", i,
				"total", len(names),
			)
			return err
		}
	}
	return nil
}

// ListByProject lists a project's ID schemes ordered by name
func (r *DocstoreIDSchemeRepository) ListByProject(ctx context.Context, projectID string) ([]catalog.IDScheme, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	docs, err := coll.Find(ctx, docstore.Where(fieldProjectID, projectID), docstore.Asc(fieldName))
	if err != nil {
		return nil, fmt.Errorf("list id schemes: %w", err)
	}

	return docstore.ExportAll[catalog.IDScheme](docs)
}
