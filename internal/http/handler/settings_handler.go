package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/service"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, logger: logger}
}

// Get returns the current settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settingsService.Get(r.Context()))
}

// Update replaces the settings object wholesale.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settingsService.Save(r.Context(), settings); err != nil {
		h.logger.Error("failed to save settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Reset restores the factory defaults.
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.settingsService.Reset(r.Context())
	if err != nil {
		h.logger.Error("failed to reset settings", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to reset settings")
		return
	}
	respondJSON(w, http.StatusOK, defaults)
}
