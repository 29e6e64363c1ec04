package handler

import (
	"net/http"

	"interlink/internal/httputil"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Projects       *ProjectHandler
	Relations      *RelationHandler
	ConnectorTypes *ConnectorTypeHandler
	CIPs           *CIPHandler
	IDSchemes      *IDSchemeHandler
}

// RegisterRoutes mounts the API on mux. requireProject wraps every route
// under /api/projects/{projectID}.
func RegisterRoutes(mux *http.ServeMux, h *Handlers, requireProject func(http.HandlerFunc) http.HandlerFunc) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Project routes
	mux.HandleFunc("GET /api/projects", h.Projects.ListProjects)
	mux.HandleFunc("POST /api/projects", h.Projects.CreateProject)
	mux.HandleFunc("GET /api/projects/{projectID}", requireProject(h.Projects.GetProject))

	// Relation routes
	mux.HandleFunc("GET /api/projects/{projectID}/relations", requireProject(h.Relations.ListRelations))
	mux.HandleFunc("GET /api/projects/{projectID}/relations/lookup", requireProject(h.Relations.LookupRelation))

	// Connector type routes
	mux.HandleFunc("GET /api/projects/{projectID}/connectortypes", requireProject(h.ConnectorTypes.ListConnectorTypes))
	mux.HandleFunc("POST /api/projects/{projectID}/connectortypes", requireProject(h.ConnectorTypes.CreateConnectorType))
	mux.HandleFunc("GET /api/projects/{projectID}/connectortypes/{id}", requireProject(h.ConnectorTypes.GetConnectorType))
	mux.HandleFunc("PATCH /api/projects/{projectID}/connectortypes/{id}", requireProject(h.ConnectorTypes.UpdateConnectorType))
	mux.HandleFunc("DELETE /api/projects/{projectID}/connectortypes/{id}", requireProject(h.ConnectorTypes.DeleteConnectorType))

	// CIP routes
	mux.HandleFunc("GET /api/projects/{projectID}/cips", requireProject(h.CIPs.ListCIPs))
	mux.HandleFunc("POST /api/projects/{projectID}/cips", requireProject(h.CIPs.CreateCIP))
	mux.HandleFunc("PATCH /api/projects/{projectID}/cips/{id}", requireProject(h.CIPs.UpdateCIP))
	mux.HandleFunc("DELETE /api/projects/{projectID}/cips/{id}", requireProject(h.CIPs.DeleteCIP))

	// ID scheme routes
	mux.HandleFunc("GET /api/projects/{projectID}/idschemes", requireProject(h.IDSchemes.ListIDSchemes))
	mux.HandleFunc("PUT /api/projects/{projectID}/idschemes", requireProject(h.IDSchemes.UpsertIDScheme))
}
