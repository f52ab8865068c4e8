package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lib-tools/library-atlas/pkg/models/api"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

// JSON writes the success envelope with the given payload.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Response{Status: "success", Data: data}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// Error classifies err and writes the error envelope: validation faults map
// to 400, missing resources to 404, everything else to 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidationError(err):
		status = http.StatusBadRequest
	case domain.IsNotFoundError(err):
		status = http.StatusNotFound
	}

	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Warn().Err(err).Msg("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(api.ErrorResponse{Status: "error", Message: err.Error()}); encodeErr != nil {
		logger.Error().Err(encodeErr).Msg("failed to encode error response")
	}
}

// Decode parses a JSON request body, mapping malformed input to a
// validation error.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("invalid request body: %v", err)
	}
	return nil
}
