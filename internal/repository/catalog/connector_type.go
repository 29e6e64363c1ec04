package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"interlink/internal/domain"
	"interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	"interlink/internal/repository/docstore"
)

// DocstoreConnectorTypeRepository implements the ConnectorTypeRepository interface
type DocstoreConnectorTypeRepository struct {
	provider   *docstore.Provider
	collection string
	logger     *slog.Logger
}

// NewConnectorTypeRepository creates a new connector type repository
func NewConnectorTypeRepository(config *RepositoryConfig) catalogRepo.ConnectorTypeRepository {
	return &DocstoreConnectorTypeRepository{
		provider:   config.Provider,
		collection: config.Collections.ConnectorTypes,
		logger:     config.Logger,
	}
}

// UpsertByName merges relationID into the connector type called name.
// The relation set is mutated with add-to-set in the store, so concurrent
// upserts of the same name never lose a relation.
func (r *DocstoreConnectorTypeRepository) UpsertByName(ctx context.Context, projectID, name, relationID string) error {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return err
	}

	// Matched on name alone; two projects sharing a name share the document.
	update := docstore.Set(fieldProjectID, projectID).
		Set(fieldName, name).
		AddToSet(fieldRelationIDs, relationID)

	result, err := coll.UpdateOne(ctx, docstore.Where(fieldName, name), update, docstore.Upsert())
	if err != nil {
		return fmt.Errorf("upsert connector type: %w", err)
	}

	if result.UpsertedID != uuid.Nil {
		r.logger.Debug("connector type inserted", "id", result.UpsertedID.String(), "name", name)
	}
	return nil
}

// GetByID retrieves a connector type by ID
func (r *DocstoreConnectorTypeRepository) GetByID(ctx context.Context, id string) (*catalog.ConnectorType, error) {
	internalID, ok := parseID(id)
	if !ok {
		return nil, connectorTypeNotFound(id)
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	doc, err := coll.FindOne(ctx, docstore.ByID(internalID))
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return nil, connectorTypeNotFound(id)
		}
		return nil, fmt.Errorf("get connector type: %w", err)
	}

	connectorType, err := docstore.Export[catalog.ConnectorType](doc, nil)
	if err != nil {
		return nil, err
	}
	normalizeConnectorType(&connectorType)
	return &connectorType, nil
}

// ListByProject lists the connector types of a project
func (r *DocstoreConnectorTypeRepository) ListByProject(ctx context.Context, projectID string) ([]catalog.ConnectorType, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	docs, err := coll.Find(ctx, docstore.Where(fieldProjectID, projectID))
	if err != nil {
		return nil, fmt.Errorf("list connector types: %w", err)
	}

	connectorTypes, err := docstore.ExportAll[catalog.ConnectorType](docs)
	if err != nil {
		return nil, err
	}
	for i := range connectorTypes {
		normalizeConnectorType(&connectorTypes[i])
	}
	return connectorTypes, nil
}

// FindByName returns the connector type called name, or nil when absent
func (r *DocstoreConnectorTypeRepository) FindByName(ctx context.Context, name string) (*catalog.ConnectorType, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	doc, err := coll.FindOne(ctx, docstore.Where(fieldName, name))
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find connector type by name: %w", err)
	}

	ct, err := docstore.Export[catalog.ConnectorType](doc, nil)
	if err != nil {
		return nil, err
	}
	normalizeConnectorType(&ct)
	return &ct, nil
}

// Update renames the connector type and/or adds or removes one relation id
func (r *DocstoreConnectorTypeRepository) Update(ctx context.Context, id string, patch catalog.ConnectorTypePatch) error {
	internalID, ok := parseID(id)
	if !ok {
		return connectorTypeNotFound(id)
	}

	var update docstore.Update
	if patch.Name != nil {
		update = update.Set(fieldName, *patch.Name)
	}
	if op := patch.Relation; op != nil {
		switch op.Op {
		case catalog.RelationOpAdd:
			update = update.AddToSet(fieldRelationIDs, op.ID)
		case catalog.RelationOpDelete:
			update = update.Pull(fieldRelationIDs, op.ID)
		default:
			return &domain.ValidationError{Message: fmt.Sprintf("unknown relation op %q", op.Op)}
		}
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return err
	}

	result, err := coll.UpdateOne(ctx, docstore.ByID(internalID), update)
	if err != nil {
		if errors.Is(err, docstore.ErrDuplicateKey) && patch.Name != nil {
			return nameTaken(*patch.Name)
		}
		return fmt.Errorf("update connector type: %w", err)
	}
	if result.Matched == 0 {
		return connectorTypeNotFound(id)
	}
	return nil
}

// Delete deletes a connector type
func (r *DocstoreConnectorTypeRepository) Delete(ctx context.Context, id string) error {
	internalID, ok := parseID(id)
	if !ok {
		return connectorTypeNotFound(id)
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return err
	}

	deleted, err := coll.DeleteOne(ctx, docstore.ByID(internalID))
	if err != nil {
		return fmt.Errorf("delete connector type: %w", err)
	}
	if deleted == 0 {
		return connectorTypeNotFound(id)
	}
	return nil
}

func connectorTypeNotFound(id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("connector type %s not found", id)}
}

func nameTaken(name string) error {
	return &domain.ConflictError{Message: fmt.Sprintf("connector type %q already exists", name)}
}

func normalizeConnectorType(c *catalog.ConnectorType) {
	if c.RelationIDs == nil {
		c.RelationIDs = []string{}
	}
}
