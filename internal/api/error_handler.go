package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	// Walk errors arrive wrapped; anything without an AppError is internal
	appErr := errors.As(err)

	// Log based on status code
	if appErr.Status >= 500 {
		log.Error("server error: %v", err)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", err)
	} else {
		log.Debug("error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
