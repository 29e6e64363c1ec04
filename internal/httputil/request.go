package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"interlink/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// Requires w for a proper 413 response
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)

	decoder := json.NewDecoder(r.Body)
	// DisallowUnknownFields is not used: clients send whole form state and
	// extra fields are ignored.

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
