package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"interlink/internal/domain"
	catalogSvc "interlink/internal/domain/services/catalog"
	"interlink/internal/httputil"
)

// RequireProject resolves the {projectID} path value before the handler
// runs. The project is stored in the request context; an unknown project
// is answered with 404 and the handler is skipped.
//
// It wraps individual handlers rather than the mux, since path values are
// only available once the mux has matched the route.
func RequireProject(projectService catalogSvc.ProjectService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			projectID := r.PathValue("projectID")
			if projectID == "" {
				httputil.RespondError(w, http.StatusBadRequest, "project id is required")
				return
			}

			project, err := projectService.GetProject(r.Context(), projectID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					httputil.RespondError(w, http.StatusNotFound, "project not found")
					return
				}
				logger.Error("resolve project",
					"project_id", projectID,
					"error", err,
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next(w, httputil.WithProject(r, project))
		}
	}
}
