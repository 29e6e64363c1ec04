package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/httputil"
)

// IDSchemeHandler handles ID scheme HTTP requests
type IDSchemeHandler struct {
	idSchemeService catalogSvc.IDSchemeService
	logger          *slog.Logger
}

// NewIDSchemeHandler creates a new ID scheme handler
func NewIDSchemeHandler(idSchemeService catalogSvc.IDSchemeService, logger *slog.Logger) *IDSchemeHandler {
	return &IDSchemeHandler{
		idSchemeService: idSchemeService,
		logger:          logger,
	}
}

type upsertIDSchemeBody struct {
	Name  string                  `json:"name"`
	HowTo httputil.OptionalString `json:"howTo"`
}

// ListIDSchemes lists the project's ID schemes ordered by name
// GET /api/projects/{projectID}/idschemes
func (h *IDSchemeHandler) ListIDSchemes(w http.ResponseWriter, r *http.Request) {
	schemes, err := h.idSchemeService.ListIDSchemes(r.Context(), projectID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, schemes)
}

// UpsertIDScheme creates or replaces a scheme. An absent howTo keeps the
// stored one, null clears it.
// PUT /api/projects/{projectID}/idschemes
func (h *IDSchemeHandler) UpsertIDScheme(w http.ResponseWriter, r *http.Request) {
	var body upsertIDSchemeBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := &catalogSvc.UpsertIDSchemeRequest{
		Name:  body.Name,
		HowTo: body.HowTo.Change(),
	}
	if err := h.idSchemeService.UpsertIDScheme(r.Context(), projectID(r), req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
