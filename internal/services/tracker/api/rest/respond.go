package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
)

// errorResponse is the JSON shape for every failure.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps a domain error to its HTTP status. Unknown errors are
// logged and surfaced as an opaque 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		writeJSON(w, domainErr.Code.HTTPStatus(), errorResponse{
			Error:   string(domainErr.Code),
			Message: domainErr.Message,
		})
		return
	}
	log.Printf("rest internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   string(apperrors.CodeUnknown),
		Message: "internal server error",
	})
}

func decodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apperrors.New(apperrors.CodeValidation, "request body is not valid JSON")
	}
	return nil
}
