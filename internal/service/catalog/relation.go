package catalog

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"interlink/internal/config"
	"interlink/internal/domain"
	models "interlink/internal/domain/models/catalog"
	catalogRepo "interlink/internal/domain/repositories/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
)

// relationService implements the RelationService interface
type relationService struct {
	relationRepo catalogRepo.RelationRepository
	logger       *slog.Logger
}

// NewRelationService creates a new relation service
func NewRelationService(
	relationRepo catalogRepo.RelationRepository,
	logger *slog.Logger,
) catalogSvc.RelationService {
	return &relationService{
		relationRepo: relationRepo,
		logger:       logger,
	}
}

// ListRelations lists a project's relations in display order
func (s *relationService) ListRelations(ctx context.Context, projectID string) ([]models.Relation, error) {
	return s.relationRepo.ListByProject(ctx, projectID)
}

// LookupRelation finds a relation by language and target module
func (s *relationService) LookupRelation(ctx context.Context, projectID, language, targetModule string) (*models.Relation, error) {
	lang, err := models.ParseLanguage(language)
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(targetModule,
		validation.Required,
		validation.Length(1, config.MaxTargetModuleLength),
	); err != nil {
		return nil, fmt.Errorf("%w: targetModule: %v", domain.ErrValidation, err)
	}

	relation, err := s.relationRepo.FindByTargetModule(ctx, projectID, lang, targetModule)
	if err != nil {
		return nil, err
	}
	if relation == nil {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("no %s relation for %s", lang, targetModule),
		}
	}
	return relation, nil
}

// ImportRelations stores relations for a project. Every relation is
// validated before the first one is written; relations that already exist
// for (language, targetModule) are returned as stored and not duplicated.
func (s *relationService) ImportRelations(ctx context.Context, projectID string, relations []models.Relation) ([]models.Relation, error) {
	for i := range relations {
		if err := validateRelation(&relations[i]); err != nil {
			return nil, fmt.Errorf("%w: relation %d: %v", domain.ErrValidation, i, err)
		}
	}

	stored := make([]models.Relation, 0, len(relations))
	inserted := 0
	for _, rel := range relations {
		existing, err := s.relationRepo.FindByTargetModule(ctx, projectID, rel.Language, rel.TargetModule)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			stored = append(stored, *existing)
			continue
		}

		rel.ProjectID = projectID
		created, err := s.relationRepo.Insert(ctx, &rel)
		if err != nil {
			return nil, err
		}
		stored = append(stored, *created)
		inserted++
	}

	s.logger.Info("relations imported",
		"project_id", projectID,
		"inserted", inserted,
		"skipped", len(relations)-inserted,
	)

	return stored, nil
}

func validateRelation(rel *models.Relation) error {
	return validation.ValidateStruct(rel,
		validation.Field(&rel.Language,
			validation.Required,
			validation.By(supportedLanguage),
		),
		validation.Field(&rel.TargetModule,
			validation.Required,
			validation.Length(1, config.MaxTargetModuleLength),
		),
		validation.Field(&rel.Calls, validation.Each(validation.By(validateCall))),
	)
}

func validateCall(value interface{}) error {
	call, ok := value.(models.Call)
	if !ok {
		return nil
	}
	return validation.ValidateStruct(&call,
		validation.Field(&call.SourceModule, validation.Required),
	)
}
