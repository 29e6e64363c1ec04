package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	"interlink/internal/repository/docstore"
)

type projectDocument struct {
	Name string `json:"name"`
}

// DocstoreProjectRepository implements the ProjectRepository interface
type DocstoreProjectRepository struct {
	provider   *docstore.Provider
	collection string
	logger     *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) catalogRepo.ProjectRepository {
	return &DocstoreProjectRepository{
		provider:   config.Provider,
		collection: config.Collections.Projects,
		logger:     config.Logger,
	}
}

// Create creates a new project
func (r *DocstoreProjectRepository) Create(ctx context.Context, name string) (*catalog.Project, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	id, err := coll.InsertOne(ctx, projectDocument{Name: name})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return &catalog.Project{ID: id.String(), Name: name}, nil
}

// List retrieves all projects
func (r *DocstoreProjectRepository) List(ctx context.Context) ([]catalog.Project, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	docs, err := coll.Find(ctx, docstore.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return docstore.ExportAll[catalog.Project](docs)
}

// GetByID retrieves a project by ID. A malformed or unknown ID yields nil.
func (r *DocstoreProjectRepository) GetByID(ctx context.Context, id string) (*catalog.Project, error) {
	internalID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	doc, err := coll.FindOne(ctx, docstore.ByID(internalID))
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	project, err := docstore.Export[catalog.Project](doc, nil)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
