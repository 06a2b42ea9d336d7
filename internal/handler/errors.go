package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/validator"
)

// errorMappings pairs each domain sentinel with its HTTP status and error code.
var errorMappings = []struct {
	sentinel error
	status   int
	code     string
	fallback string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "resource not found"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error", "invalid request"},
	{domain.ErrOutOfRange, http.StatusUnprocessableEntity, "out_of_range", "too far from the destination"},
	{domain.ErrPositionUnknown, http.StatusUnprocessableEntity, "position_unknown", "current position is unknown"},
	{domain.ErrConflict, http.StatusConflict, "conflict", "conflict"},
}

// writeError maps err onto an HTTP status and an ErrorResponse body.
// Unrecognised errors are logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request_too_large", "request body is too large"))
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			msg := unwrapMessage(err, m.sentinel)
			if msg == "" {
				msg = m.fallback
			}
			writeJSON(w, m.status, errorBody(m.code, msg))
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// notFound reports a missing resource with a handler-supplied message
// (e.g. "destination not found"), since the handler knows what was looked up.
func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorBody("not_found", message))
}

// badRequest reports input rejected before reaching the service layer.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part that follows the sentinel text.
// e.g. "service.DestinationService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error()
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	return strings.TrimPrefix(msg[i+len(marker):], ": ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// decodeBody reads a JSON body into dst and validates its struct tags.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: malformed JSON body", domain.ErrValidation)
	}
	return validator.Struct(dst)
}
