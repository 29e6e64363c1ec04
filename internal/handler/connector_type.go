package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/httputil"
)

// ConnectorTypeHandler handles connector type HTTP requests
type ConnectorTypeHandler struct {
	connectorTypeService catalogSvc.ConnectorTypeService
	logger               *slog.Logger
}

// NewConnectorTypeHandler creates a new connector type handler
func NewConnectorTypeHandler(connectorTypeService catalogSvc.ConnectorTypeService, logger *slog.Logger) *ConnectorTypeHandler {
	return &ConnectorTypeHandler{
		connectorTypeService: connectorTypeService,
		logger:               logger,
	}
}

// ListConnectorTypes lists connector types, each with its relations
// GET /api/projects/{projectID}/connectortypes
func (h *ConnectorTypeHandler) ListConnectorTypes(w http.ResponseWriter, r *http.Request) {
	connectorTypes, err := h.connectorTypeService.ListConnectorTypes(r.Context(), projectID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, connectorTypes)
}

// CreateConnectorType attaches a relation to a connector type, creating it if needed
// POST /api/projects/{projectID}/connectortypes
func (h *ConnectorTypeHandler) CreateConnectorType(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.CreateConnectorTypeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.connectorTypeService.CreateConnectorType(r.Context(), projectID(r), &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondSuccess(w)
}

// GetConnectorType retrieves a connector type with its relations
// GET /api/projects/{projectID}/connectortypes/{id}
func (h *ConnectorTypeHandler) GetConnectorType(w http.ResponseWriter, r *http.Request) {
	connectorType, err := h.connectorTypeService.GetConnectorType(r.Context(), projectID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, connectorType)
}

// UpdateConnectorType renames a connector type and/or adds or removes a relation
// PATCH /api/projects/{projectID}/connectortypes/{id}
func (h *ConnectorTypeHandler) UpdateConnectorType(w http.ResponseWriter, r *http.Request) {
	var req catalogSvc.UpdateConnectorTypeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.connectorTypeService.UpdateConnectorType(r.Context(), projectID(r), r.PathValue("id"), &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteConnectorType deletes a connector type
// DELETE /api/projects/{projectID}/connectortypes/{id}
func (h *ConnectorTypeHandler) DeleteConnectorType(w http.ResponseWriter, r *http.Request) {
	if err := h.connectorTypeService.DeleteConnectorType(r.Context(), projectID(r), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
