package handler

import (
	"net/http"

	"codebind/internal/model"
	"codebind/internal/service"

	"github.com/rs/zerolog"
)

// CodeHandler handles code validation and binding HTTP requests.
type CodeHandler struct {
	service service.CodeService
	logger  zerolog.Logger
}

// NewCodeHandler creates a new code handler.
func NewCodeHandler(service service.CodeService, logger zerolog.Logger) *CodeHandler {
	return &CodeHandler{
		service: service,
		logger:  logger.With().Str("handler", "code").Logger(),
	}
}

// Validate handles POST /api/validate requests. It always answers 200.
func (h *CodeHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateRequest
	decodeBody(r, &req, h.logger)

	writeJSON(w, http.StatusOK, h.service.Validate(r.Context(), &req))
}

// Bind handles POST /api/bind requests.
func (h *CodeHandler) Bind(w http.ResponseWriter, r *http.Request) {
	var req model.BindRequest
	decodeBody(r, &req, h.logger)

	resp, err := h.service.Bind(r.Context(), &req)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteBinding handles POST /api/delete-binding requests.
func (h *CodeHandler) DeleteBinding(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteBindingRequest
	decodeBody(r, &req, h.logger)

	resp, err := h.service.DeleteBinding(r.Context(), &req)
	if err != nil {
		writeFailure(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
