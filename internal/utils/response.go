package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fyyur/internal/apperrors"
)

type APIResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      interface{}            `json:"data,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Fields    []apperrors.FieldError `json:"fields,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// ErrorResponse carries the failure kind in Error and, for validation
// failures, every offending field.
func ErrorResponse(message string, err error) APIResponse {
	resp := APIResponse{
		Success:   false,
		Message:   message,
		Error:     apperrors.Kind(err),
		Timestamp: time.Now().UTC(),
	}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	return resp
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(err error) int {
	switch apperrors.Kind(err) {
	case apperrors.KindNone:
		return http.StatusOK
	case apperrors.KindValidation:
		return http.StatusUnprocessableEntity
	case apperrors.KindReferential:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
