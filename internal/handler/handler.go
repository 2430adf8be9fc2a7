package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"codebind/internal/middleware"
	"codebind/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps the request body read by decodeBody.
const maxBodyBytes = 64 << 10

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeFailure writes an {ok:false, error} response for err with the
// matching status code.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status := statusFor(err)
	code := model.ErrorCode(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Err(err).
		Str("error_code", code).
		Int("status", status).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Msg("handler error")

	writeJSON(w, status, model.FailureResponse{
		OK:            false,
		Error:         code,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrMissingCodeOrGame),
		errors.Is(err, model.ErrMissingCode),
		errors.Is(err, model.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrBindingNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into v. A body that is missing or
// not a JSON object leaves v at its zero value.
func decodeBody(r *http.Request, v any, logger zerolog.Logger) {
	if r.Body == nil {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		logger.Debug().Err(err).Msg("failed to read request body")
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		logger.Debug().Err(err).Msg("request body is not a JSON object, treating as empty")
	}
}
