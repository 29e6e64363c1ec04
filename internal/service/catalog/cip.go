package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"interlink/internal/config"
	"interlink/internal/domain"
	models "interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
)

// cipService implements the CIPService interface
type cipService struct {
	cipRepo      catalogRepo.CIPRepository
	idSchemeRepo catalogRepo.IDSchemeRepository
	logger       *slog.Logger
}

// NewCIPService creates a new CIP service
func NewCIPService(
	cipRepo catalogRepo.CIPRepository,
	idSchemeRepo catalogRepo.IDSchemeRepository,
	logger *slog.Logger,
) catalogSvc.CIPService {
	return &cipService{
		cipRepo:      cipRepo,
		idSchemeRepo: idSchemeRepo,
		logger:       logger,
	}
}

// CreateCIP validates the request, registers its ID schemes, then stores the CIP.
// Scheme registration is best-effort: a failure there leaves earlier schemes
// written and no CIP.
func (s *cipService) CreateCIP(ctx context.Context, projectID string, req *catalogSvc.CreateCIPRequest) (*models.CIP, error) {
	if err := validateCreateCIP(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	source := schemeNames(req.SourceIDScheme)
	target := schemeNames(req.TargetIDScheme)

	if err := s.registerSchemes(ctx, projectID, req.SourceIDScheme, req.TargetIDScheme); err != nil {
		return nil, err
	}

	cip, err := s.cipRepo.Create(ctx, &models.CIP{
		ProjectID:          projectID,
		ConnectorType:      strings.TrimSpace(req.ConnectorType),
		SourceIDScheme:     source,
		TargetIDScheme:     target,
		FunctionCondition:  string(req.FunctionCondition),
		VariableConditions: req.VariableConditions,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cip created",
		"id", cip.ID,
		"project_id", projectID,
		"connector_type", cip.ConnectorType,
	)

	return cip, nil
}

// ListCIPs lists the CIPs of a connector type
func (s *cipService) ListCIPs(ctx context.Context, projectID, connectorType string) ([]models.CIP, error) {
	if strings.TrimSpace(connectorType) == "" {
		return nil, &domain.ValidationError{Message: "no connector type specified"}
	}
	return s.cipRepo.ListByConnectorType(ctx, projectID, connectorType)
}

// UpdateCIP applies a partial patch. Patches are stored as given.
func (s *cipService) UpdateCIP(ctx context.Context, projectID, id string, patch *models.CIPPatch) error {
	if patch == nil {
		patch = &models.CIPPatch{}
	}
	if err := s.cipRepo.Update(ctx, projectID, id, *patch); err != nil {
		return err
	}

	s.logger.Info("cip updated",
		"id", id,
		"project_id", projectID,
	)

	return nil
}

// DeleteCIP deletes a CIP
func (s *cipService) DeleteCIP(ctx context.Context, projectID, id string) error {
	if err := s.cipRepo.Delete(ctx, projectID, id); err != nil {
		return err
	}

	s.logger.Info("cip deleted",
		"id", id,
		"project_id", projectID,
	)

	return nil
}

// registerSchemes upserts every referenced scheme. Schemes carrying a
// how-to are written one by one so the description is kept; bare names go
// through the bulk path.
func (s *cipService) registerSchemes(ctx context.Context, projectID string, groups ...[]catalogSvc.SchemeRef) error {
	var bare []string
	for _, group := range groups {
		for _, ref := range group {
			name := strings.TrimSpace(ref.Name)
			if ref.HowTo == nil {
				bare = append(bare, name)
				continue
			}
			if err := s.idSchemeRepo.Upsert(ctx, projectID, name, ref.HowTo); err != nil {
				return err
			}
		}
	}

	if len(bare) == 0 {
		return nil
	}
	return s.idSchemeRepo.UpsertMany(ctx, bare, projectID)
}

func validateCreateCIP(req *catalogSvc.CreateCIPRequest) error {
	schemeRules := []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxSchemesPerCIP),
		validation.Each(validation.By(validateSchemeRef)),
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.ConnectorType, validation.Required, validation.By(notBlank)),
		validation.Field(&req.SourceIDScheme, schemeRules...),
		validation.Field(&req.TargetIDScheme, schemeRules...),
		validation.Field(&req.FunctionCondition, validation.Required),
		validation.Field(&req.VariableConditions, validation.Empty.Error("variable conditions are not supported")),
	)
}

func validateSchemeRef(value interface{}) error {
	ref, ok := value.(catalogSvc.SchemeRef)
	if !ok {
		return nil
	}
	return validation.ValidateStruct(&ref,
		validation.Field(&ref.Name,
			validation.Required,
			validation.Length(1, config.MaxIDSchemeNameLength),
			validation.By(notBlank),
		),
	)
}

func schemeNames(refs []catalogSvc.SchemeRef) []string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = strings.TrimSpace(ref.Name)
	}
	return names
}
