package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"interlink/internal/config"
	"interlink/internal/domain"
	"interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	"interlink/internal/repository/docstore"
)

type cipDocument struct {
	ProjectID          string   `json:"projectID"`
	ConnectorType      string   `json:"connectorType"`
	SourceIDScheme     []string `json:"sourceIDScheme"`
	TargetIDScheme     []string `json:"targetIDScheme"`
	FunctionCondition  string   `json:"functionCondition"`
	VariableConditions []string `json:"variableConditions"`
}

// DocstoreCIPRepository implements the CIPRepository interface
type DocstoreCIPRepository struct {
	provider   *docstore.Provider
	collection string
	logger     *slog.Logger
}

// NewCIPRepository creates a new CIP repository
func NewCIPRepository(config *RepositoryConfig) catalogRepo.CIPRepository {
	return &DocstoreCIPRepository{
		provider:   config.Provider,
		collection: config.Collections.CIPs,
		logger:     config.Logger,
	}
}

// Create validates and inserts a CIP. Nothing is written when validation fails.
func (r *DocstoreCIPRepository) Create(ctx context.Context, cip *catalog.CIP) (*catalog.CIP, error) {
	if err := validateCIP(cip); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	body := cipDocument{
		ProjectID:          cip.ProjectID,
		ConnectorType:      cip.ConnectorType,
		SourceIDScheme:     cip.SourceIDScheme,
		TargetIDScheme:     cip.TargetIDScheme,
		FunctionCondition:  cip.FunctionCondition,
		VariableConditions: cip.VariableConditions,
	}
	if body.VariableConditions == nil {
		body.VariableConditions = []string{}
	}

	id, err := coll.InsertOne(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("create cip: %w", err)
	}

	stored := *cip
	stored.ID = id.String()
	stored.SourceIDScheme = slices.Clone(cip.SourceIDScheme)
	stored.TargetIDScheme = slices.Clone(cip.TargetIDScheme)
	stored.VariableConditions = slices.Clone(body.VariableConditions)
	return &stored, nil
}

// ListByConnectorType lists the CIPs of one connector type within a project
func (r *DocstoreCIPRepository) ListByConnectorType(ctx context.Context, projectID, connectorType string) ([]catalog.CIP, error) {
	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return nil, err
	}

	filter := docstore.Where(fieldProjectID, projectID).And(fieldConnectorType, connectorType)
	docs, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list cips: %w", err)
	}

	return docstore.ExportAll[catalog.CIP](docs)
}

// Update applies the present fields of patch without validating them
func (r *DocstoreCIPRepository) Update(ctx context.Context, projectID, id string, patch catalog.CIPPatch) error {
	internalID, ok := parseID(id)
	if !ok {
		return cipNotFound(id)
	}

	var update docstore.Update
	if patch.ConnectorType != nil {
		update = update.Set(fieldConnectorType, *patch.ConnectorType)
	}
	if patch.SourceIDScheme != nil {
		update = update.Set(fieldSourceIDScheme, *patch.SourceIDScheme)
	}
	if patch.TargetIDScheme != nil {
		update = update.Set(fieldTargetIDScheme, *patch.TargetIDScheme)
	}
	if patch.FunctionCondition != nil {
		update = update.Set(fieldFunctionCondition, *patch.FunctionCondition)
	}
	if patch.VariableConditions != nil {
		update = update.Set(fieldVariableConditions, *patch.VariableConditions)
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return err
	}

	result, err := coll.UpdateOne(ctx, docstore.ByID(internalID).And(fieldProjectID, projectID), update)
	if err != nil {
		return fmt.Errorf("update cip: %w", err)
	}
	if result.Matched == 0 {
		return cipNotFound(id)
	}
	return nil
}

// Delete deletes a CIP
func (r *DocstoreCIPRepository) Delete(ctx context.Context, projectID, id string) error {
	internalID, ok := parseID(id)
	if !ok {
		return cipNotFound(id)
	}

	coll, err := r.provider.Collection(ctx, r.collection)
	if err != nil {
		return err
	}

	deleted, err := coll.DeleteOne(ctx, docstore.ByID(internalID).And(fieldProjectID, projectID))
	if err != nil {
		return fmt.Errorf("delete cip: %w", err)
	}
	if deleted == 0 {
		return cipNotFound(id)
	}
	return nil
}

func validateCIP(cip *catalog.CIP) error {
	if cip == nil {
		return fmt.Errorf("cip is required")
	}
	return validation.ValidateStruct(cip,
		validation.Field(&cip.ConnectorType, validation.Required),
		validation.Field(&cip.SourceIDScheme,
			validation.Required,
			validation.Length(1, config.MaxSchemesPerCIP),
			validation.Each(validation.Required),
		),
		validation.Field(&cip.TargetIDScheme,
			validation.Required,
			validation.Length(1, config.MaxSchemesPerCIP),
			validation.Each(validation.Required),
		),
		validation.Field(&cip.FunctionCondition, validation.Required),
	)
}

func cipNotFound(id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("cip %s not found", id)}
}
