package handler

import (
	"net/http"

	"github.com/localpass/passgen/internal/middleware"
	"github.com/localpass/passgen/internal/model"
	"github.com/localpass/passgen/internal/service"
)

// SettingsHandler handles HTTP requests for stored generator settings.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// HandleGet handles GET /api/v1/settings requests.
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, h.service.Current(r.Context(), profile))
}

// HandleUpdate handles PUT /api/v1/settings requests. Fields missing from the
// body keep their stored values.
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.GenerateRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	resp, err := h.service.Update(r.Context(), profile, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRegenerate handles POST /api/v1/settings/regenerate requests.
func (h *SettingsHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Regenerate(r.Context(), profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
