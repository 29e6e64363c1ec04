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

// idSchemeService implements the IDSchemeService interface
type idSchemeService struct {
	idSchemeRepo catalogRepo.IDSchemeRepository
	logger       *slog.Logger
}

// NewIDSchemeService creates a new ID scheme service
func NewIDSchemeService(
	idSchemeRepo catalogRepo.IDSchemeRepository,
	logger *slog.Logger,
) catalogSvc.IDSchemeService {
	return &idSchemeService{
		idSchemeRepo: idSchemeRepo,
		logger:       logger,
	}
}

func (s *idSchemeService) ListIDSchemes(ctx context.Context, projectID string) ([]models.IDScheme, error) {
	return s.idSchemeRepo.ListByProject(ctx, projectID)
}

// UpsertIDScheme creates or replaces a scheme by name
func (s *idSchemeService) UpsertIDScheme(ctx context.Context, projectID string, req *catalogSvc.UpsertIDSchemeRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxIDSchemeNameLength),
			validation.By(notBlank),
		),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)
	if err := s.idSchemeRepo.Upsert(ctx, projectID, name, req.HowTo); err != nil {
		return err
	}

	s.logger.Info("id scheme upserted",
		"project_id", projectID,
		"name", name,
	)

	return nil
}
