package seed

import (
	"context"
	"fmt"
	"log/slog"

	models "interlink/internal/domain/models/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
)

// Seeder writes fixtures through the catalog services, so fixtures get the
// same validation and relation de-duplication as any other client.
type Seeder struct {
	projects  catalogSvc.ProjectService
	relations catalogSvc.RelationService
	logger    *slog.Logger
}

func NewSeeder(projects catalogSvc.ProjectService, relations catalogSvc.RelationService, logger *slog.Logger) *Seeder {
	return &Seeder{
		projects:  projects,
		relations: relations,
		logger:    logger,
	}
}

// Result summarizes one seeded fixture.
type Result struct {
	Project   *models.Project
	Relations []models.Relation
	Created   bool // the project did not exist before
}

// Seed reuses the first project named like the fixture, creating it when
// absent, and imports the fixture's relations into it. Re-running a fixture
// adds nothing new.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (*Result, error) {
	project, created, err := s.ensureProject(ctx, f.Project)
	if err != nil {
		return nil, err
	}

	relations, err := s.relations.ImportRelations(ctx, project.ID, f.ToRelations())
	if err != nil {
		return nil, fmt.Errorf("import relations into %s: %w", project.Name, err)
	}

	s.logger.Info("fixture seeded",
		"project", project.Name,
		"project_id", project.ID,
		"project_created", created,
		"relations", len(relations),
	)

	return &Result{Project: project, Relations: relations, Created: created}, nil
}

func (s *Seeder) ensureProject(ctx context.Context, name string) (*models.Project, bool, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list projects: %w", err)
	}
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], false, nil
		}
	}

	project, err := s.projects.CreateProject(ctx, &catalogSvc.CreateProjectRequest{Name: name})
	if err != nil {
		return nil, false, fmt.Errorf("create project %s: %w", name, err)
	}
	return project, true, nil
}
