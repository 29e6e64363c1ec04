package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"interlink/internal/config"
	"interlink/internal/domain"
	models "interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
)

// connectorTypeService implements the ConnectorTypeService interface
type connectorTypeService struct {
	connectorTypeRepo catalogRepo.ConnectorTypeRepository
	relationRepo      catalogRepo.RelationRepository
	logger            *slog.Logger
}

// NewConnectorTypeService creates a new connector type service
func NewConnectorTypeService(
	connectorTypeRepo catalogRepo.ConnectorTypeRepository,
	relationRepo catalogRepo.RelationRepository,
	logger *slog.Logger,
) catalogSvc.ConnectorTypeService {
	return &connectorTypeService{
		connectorTypeRepo: connectorTypeRepo,
		relationRepo:      relationRepo,
		logger:            logger,
	}
}

// CreateConnectorType attaches an existing relation to a named connector type
func (s *connectorTypeService) CreateConnectorType(ctx context.Context, projectID string, req *catalogSvc.CreateConnectorTypeRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxConnectorTypeNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.TargetModule,
			validation.Required,
			validation.Length(1, config.MaxTargetModuleLength),
		),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	language, err := models.ParseLanguage(req.Language)
	if err != nil {
		return err
	}

	relation, err := s.relationRepo.FindByTargetModule(ctx, projectID, language, req.TargetModule)
	if err != nil {
		return err
	}
	if relation == nil {
		s.logger.Debug("connector type create without relation",
			"project_id", projectID,
			"language", language,
			"target_module", req.TargetModule,
		)
		return fmt.Errorf("%s %s: %w", language, req.TargetModule, domain.ErrNoSuchRelation)
	}

	name := strings.TrimSpace(req.Name)
	if err := s.connectorTypeRepo.UpsertByName(ctx, projectID, name, relation.ID); err != nil {
		return err
	}

	s.logger.Info("connector type upserted",
		"project_id", projectID,
		"name", name,
		"relation_id", relation.ID,
	)

	return nil
}

// ListConnectorTypes lists connector types with their relations resolved.
// Relation sets are fetched concurrently, one batch per connector type,
// and the result keeps the connector types' order.
func (s *connectorTypeService) ListConnectorTypes(ctx context.Context, projectID string) ([]models.ConnectorTypeWithRelations, error) {
	connectorTypes, err := s.connectorTypeRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConnectorTypeWithRelations, len(connectorTypes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.MaxRelationFetchConcurrency)

	for i, ct := range connectorTypes {
		g.Go(func() error {
			relations, err := s.relationRepo.ListByIDs(gctx, ct.RelationIDs)
			if err != nil {
				return fmt.Errorf("resolve relations of %s: %w", ct.ID, err)
			}
			out[i] = models.ConnectorTypeWithRelations{ConnectorType: ct, Relations: relations}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConnectorType retrieves one connector type of the project with its relations
func (s *connectorTypeService) GetConnectorType(ctx context.Context, projectID, id string) (*models.ConnectorTypeWithRelations, error) {
	ct, err := s.getInProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	relations, err := s.relationRepo.ListByIDs(ctx, ct.RelationIDs)
	if err != nil {
		return nil, err
	}

	return &models.ConnectorTypeWithRelations{ConnectorType: *ct, Relations: relations}, nil
}

// UpdateConnectorType renames a connector type and/or changes its relation set
func (s *connectorTypeService) UpdateConnectorType(ctx context.Context, projectID, id string, req *catalogSvc.UpdateConnectorTypeRequest) error {
	if err := validateConnectorTypeUpdate(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	ct, err := s.getInProject(ctx, projectID, id)
	if err != nil {
		return err
	}

	patch := models.ConnectorTypePatch{Relation: req.Relation}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != ct.Name {
			patch.Name = &name
		}
	}
	if patch.IsEmpty() {
		return nil
	}

	// name is the upsert key, so a rename must not land on a taken name
	if patch.Name != nil {
		existing, err := s.connectorTypeRepo.FindByName(ctx, *patch.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return &domain.ConflictError{Message: fmt.Sprintf("connector type %q already exists", *patch.Name)}
		}
	}

	if err := s.connectorTypeRepo.Update(ctx, id, patch); err != nil {
		return err
	}

	s.logger.Info("connector type updated",
		"id", id,
		"project_id", projectID,
		"renamed", patch.Name != nil,
		"relation_op", relationOpLabel(patch.Relation),
	)

	return nil
}

// DeleteConnectorType deletes a connector type of the project
func (s *connectorTypeService) DeleteConnectorType(ctx context.Context, projectID, id string) error {
	if _, err := s.getInProject(ctx, projectID, id); err != nil {
		return err
	}

	if err := s.connectorTypeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("connector type deleted",
		"id", id,
		"project_id", projectID,
	)

	return nil
}

// getInProject hides connector types owned by another project behind a NotFoundError.
func (s *connectorTypeService) getInProject(ctx context.Context, projectID, id string) (*models.ConnectorType, error) {
	ct, err := s.connectorTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct.ProjectID != projectID {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("connector type %s not found", id)}
	}
	return ct, nil
}

func validateConnectorTypeUpdate(req *catalogSvc.UpdateConnectorTypeRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxConnectorTypeNameLength),
			validation.By(optionalNotBlank),
		),
	); err != nil {
		return err
	}

	if op := req.Relation; op != nil {
		return validation.ValidateStruct(op,
			validation.Field(&op.ID, validation.Required),
			validation.Field(&op.Op,
				validation.Required,
				validation.In(models.RelationOpAdd, models.RelationOpDelete),
			),
		)
	}
	return nil
}

func relationOpLabel(op *models.RelationOp) string {
	if op == nil {
		return ""
	}
	return string(op.Op)
}
