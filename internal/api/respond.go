package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"sleepsense/internal/features"
	"sleepsense/internal/logging"
	"sleepsense/internal/preprocessing"
)

// PredictResponse is the success shape: a quality label plus ordered tips.
type PredictResponse struct {
	Quality string   `json:"quality"`
	Tips    []string `json:"tips"`
}

// ErrorResponse is the failure shape for client and server errors alike.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, &ErrorResponse{Error: message})
}

// statusFor maps pipeline errors to HTTP statuses: request-shaped failures
// are the client's to fix, everything else is a server fault.
func statusFor(err error) int {
	var validationErr *features.ValidationError
	var unknownErr *preprocessing.UnknownCategoryError
	if errors.As(err, &validationErr) || errors.As(err, &unknownErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
