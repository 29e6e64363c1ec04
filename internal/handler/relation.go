package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/httputil"
)

// RelationHandler handles relation HTTP requests
type RelationHandler struct {
	relationService catalogSvc.RelationService
	logger          *slog.Logger
}

// NewRelationHandler creates a new relation handler
func NewRelationHandler(relationService catalogSvc.RelationService, logger *slog.Logger) *RelationHandler {
	return &RelationHandler{
		relationService: relationService,
		logger:          logger,
	}
}

// ListRelations lists the project's relations ordered by language, then target module
// GET /api/projects/{projectID}/relations
func (h *RelationHandler) ListRelations(w http.ResponseWriter, r *http.Request) {
	relations, err := h.relationService.ListRelations(r.Context(), projectID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, relations)
}

// LookupRelation finds one relation by language and target module
// GET /api/projects/{projectID}/relations/lookup?language=Go&targetModule=pkg/x
func (h *RelationHandler) LookupRelation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	relation, err := h.relationService.LookupRelation(r.Context(),
		projectID(r),
		query.Get("language"),
		query.Get("targetModule"),
	)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, relation)
}
