package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	models "interlink/internal/domain/models/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/middleware"
	catalogStore "interlink/internal/repository/catalog"
	"interlink/internal/repository/docstore"
	"interlink/internal/repository/docstore/memory"
	"interlink/internal/service/catalog"
)

type testServer struct {
	handler   http.Handler
	relations catalogSvc.RelationService
}

func newTestServer(t *testing.T) *testServer {
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

	projectService := catalog.NewProjectService(projectRepo, logger)
	relationService := catalog.NewRelationService(relationRepo, logger)

	mux := http.NewServeMux()
	RegisterRoutes(mux, &Handlers{
		Projects:       NewProjectHandler(projectService, logger),
		Relations:      NewRelationHandler(relationService, logger),
		ConnectorTypes: NewConnectorTypeHandler(catalog.NewConnectorTypeService(connectorTypeRepo, relationRepo, logger), logger),
		CIPs:           NewCIPHandler(catalog.NewCIPService(cipRepo, idSchemeRepo, logger), logger),
		IDSchemes:      NewIDSchemeHandler(catalog.NewIDSchemeService(idSchemeRepo, logger), logger),
	}, middleware.RequireProject(projectService, logger))

	return &testServer{handler: mux, relations: relationService}
}

// do sends a request and returns the recorded response. body is encoded as
// JSON unless it is already a string.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createProject(t *testing.T, name string) models.Project {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/projects", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Project](t, rec)
}

func (s *testServer) seedRelation(t *testing.T, projectID string, language models.Language, targetModule string, calls ...models.Call) models.Relation {
	t.Helper()
	stored, err := s.relations.ImportRelations(context.Background(), projectID, []models.Relation{
		{Language: language, TargetModule: targetModule, Calls: calls},
	})
	require.NoError(t, err)
	return stored[0]
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// errorMessage returns the "error" field of an error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]any](t, rec)
	msg, _ := body["error"].(string)
	return msg
}
