package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"interlink/internal/domain"
	"interlink/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Anything that is not
// a client error is logged here and answered with a generic message.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNoSuchRelation):
		// Clients of the connector type form match on this message.
		logger.Warn("connector type without relation", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, domain.ErrNoSuchRelation.Error())
	case errors.As(err, &httpErr):
		logger.Error("request failed", "error", err, "status", httpErr.StatusCode())
		httputil.RespondError(w, httpErr.StatusCode(), http.StatusText(httpErr.StatusCode()))
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// projectID returns the id of the project resolved by middleware.RequireProject.
func projectID(r *http.Request) string {
	if project := httputil.GetProject(r); project != nil {
		return project.ID
	}
	return ""
}
