package catalog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	catalogSvc "interlink/internal/domain/services/catalog"
	catalogStore "interlink/internal/repository/catalog"
	"interlink/internal/repository/docstore"
	"interlink/internal/repository/docstore/memory"
)

type services struct {
	config         *catalogStore.RepositoryConfig
	projects       catalogSvc.ProjectService
	relations      catalogSvc.RelationService
	connectorTypes catalogSvc.ConnectorTypeService
	idSchemes      catalogSvc.IDSchemeService
	cips           catalogSvc.CIPService
}

func newServices(t *testing.T) *services {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	config := &catalogStore.RepositoryConfig{
		Provider:    docstore.NewProvider(memory.Open),
		Collections: catalogStore.NewCollections("test_"),
		Logger:      logger,
	}
	t.Cleanup(config.Provider.Close)

	projectRepo := catalogStore.NewProjectRepository(config)
	relationRepo := catalogStore.NewRelationRepository(config)
	connectorTypeRepo := catalogStore.NewConnectorTypeRepository(config)
	idSchemeRepo := catalogStore.NewIDSchemeRepository(config)
	cipRepo := catalogStore.NewCIPRepository(config)

	return &services{
		config:         config,
		projects:       NewProjectService(projectRepo, logger),
		relations:      NewRelationService(relationRepo, logger),
		connectorTypes: NewConnectorTypeService(connectorTypeRepo, relationRepo, logger),
		idSchemes:      NewIDSchemeService(idSchemeRepo, logger),
		cips:           NewCIPService(cipRepo, idSchemeRepo, logger),
	}
}

// count returns the number of documents stored in a collection.
func (s *services) count(t *testing.T, name string) int {
	t.Helper()
	coll, err := s.config.Provider.Collection(context.Background(), name)
	require.NoError(t, err)
	docs, err := coll.Find(context.Background(), docstore.Filter{})
	require.NoError(t, err)
	return len(docs)
}
