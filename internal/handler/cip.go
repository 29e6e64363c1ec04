package handler

import (
	"log/slog"
	"net/http"

	models "interlink/internal/domain/models/catalog"
	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/httputil"
)

// CIPHandler handles CIP HTTP requests
type CIPHandler struct {
	cipService catalogSvc.CIPService
	logger     *slog.Logger
}

// NewCIPHandler creates a new CIP handler
func NewCIPHandler(cipService catalogSvc.CIPService, logger *slog.Logger) *CIPHandler {
	return &CIPHandler{
		cipService: cipService,
		logger:     logger,
	}
}

// ListCIPs lists the CIPs of one connector type
// GET /api/projects/{projectID}/cips?type={connectorTypeID}
func (h *CIPHandler) ListCIPs(w http.ResponseWriter, r *http.Request) {
	cips, err := h.cipService.ListCIPs(r.Context(), projectID(r), r.URL.Query().Get("type"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cips)
}

// CreateCIP creates a CIP and registers its ID schemes
// POST /api/projects/{projectID}/cips
func (h *CIPHandler) CreateCIP(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.CreateCIPRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "wrong request parameter")
		return
	}

	if _, err := h.cipService.CreateCIP(r.Context(), projectID(r), &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondSuccess(w)
}

// UpdateCIP applies a partial patch to a CIP
// PATCH /api/projects/{projectID}/cips/{id}
func (h *CIPHandler) UpdateCIP(w http.ResponseWriter, r *http.Request) {
	var patch models.CIPPatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cipService.UpdateCIP(r.Context(), projectID(r), r.PathValue("id"), &patch); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCIP deletes a CIP
// DELETE /api/projects/{projectID}/cips/{id}
func (h *CIPHandler) DeleteCIP(w http.ResponseWriter, r *http.Request) {
	if err := h.cipService.DeleteCIP(r.Context(), projectID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
