package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mentora-backend/internal/controllers"
	"mentora-backend/internal/middleware"
	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleControllerError maps controller, upload, and session errors onto
// HTTP responses.
func handleControllerError(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *controllers.InputError
	var uploadErr *uploads.ValidationError

	switch {
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{inputErr.Field: inputErr.Message}, r))
	case errors.As(err, &uploadErr):
		writeJSON(w, uploadStatus(uploadErr.Code), errorResp(uploadErr.Code, uploadErr.Message, r))
	case errors.Is(err, controllers.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResp("BUSY", err.Error(), r))
	case errors.Is(err, controllers.ErrNoArtifact):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Generate something before customizing it", r))
	case errors.Is(err, controllers.ErrUnsupported):
		writeJSON(w, http.StatusMethodNotAllowed, errorResp("UNSUPPORTED_OPERATION", err.Error(), r))
	case errors.Is(err, controllers.ErrUnknownFeature):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Feature not found", r))
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found or expired", r))
	default:
		log.Printf("Unhandled error on %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}

func uploadStatus(code string) int {
	switch code {
	case uploads.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case uploads.CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

// loadSession returns the session named by the request's token.
func loadSession(store *session.Store, r *http.Request) (*session.Session, error) {
	return store.Get(middleware.GetSessionID(r.Context()))
}
