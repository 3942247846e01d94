package handler

import (
	"net/http"

	"github.com/abtweb/studio-api/internal/service"
	"github.com/abtweb/studio-api/internal/sync"
	"go.uber.org/zap"
)

type SeedHandler struct {
	seedService *service.SeedService
	coordinator *sync.Coordinator
	logger      *zap.Logger
}

func NewSeedHandler(seedService *service.SeedService, coordinator *sync.Coordinator, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{seedService: seedService, coordinator: coordinator, logger: logger}
}

// Restore merges the bundled sample quotes into the collection.
func (h *SeedHandler) Restore(w http.ResponseWriter, r *http.Request) {
	added, err := h.seedService.Restore(r.Context())
	if err != nil {
		h.logger.Error("failed to restore sample data", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to restore sample data")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"added": added})
}

// RemoveTestData deletes every quote flagged as test data.
func (h *SeedHandler) RemoveTestData(w http.ResponseWriter, r *http.Request) {
	removed, err := h.seedService.RemoveTestData(r.Context())
	if err != nil {
		h.logger.Error("failed to remove test data", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to remove test data")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// ResetAll wipes every collection and the saved settings, then refreshes the
// derived collections so the wipe is visible immediately.
func (h *SeedHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.seedService.ResetAll(r.Context()); err != nil {
		h.logger.Error("failed to reset data", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}
	if err := h.coordinator.Refresh(r.Context()); err != nil {
		h.logger.Warn("post-reset refresh failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
