package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, logger: logger}
}

// Create handles the public checkout submission.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, breakdown, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPackage) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"quote":     quote,
		"breakdown": breakdown,
	})
}

// List returns all quotes for the admin dashboard.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list quotes", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	respondJSON(w, http.StatusOK, quotes)
}

// Get returns one quote.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondWithError(w, http.StatusNotFound, "Quote not found")
			return
		}
		h.logger.Error("failed to get quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get quote")
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// UpdateStatus applies an admin status change.
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateQuoteStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.quoteService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrQuoteNotFound):
			respondWithError(w, http.StatusNotFound, "Quote not found")
		default:
			h.logger.Error("failed to update quote status",
				zap.String("quote_id", id), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update quote status")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

// Delete removes a quote permanently.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.quoteService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondWithError(w, http.StatusNotFound, "Quote not found")
			return
		}
		h.logger.Error("failed to delete quote",
			zap.String("quote_id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete quote")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
