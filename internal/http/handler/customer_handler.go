package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, logger: logger}
}

// List returns the derived customer collection.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers := h.customerService.List(r.Context())
	if customers == nil {
		customers = []domain.Customer{}
	}
	respondJSON(w, http.StatusOK, customers)
}

// Get returns one customer.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Customer id must be an integer")
		return
	}

	customer, err := h.customerService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to get customer", zap.Int("customer_id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// Quotes returns the quotes attributed to one customer.
func (h *CustomerHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Customer id must be an integer")
		return
	}

	quotes, err := h.customerService.QuotesFor(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to list customer quotes", zap.Int("customer_id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list customer quotes")
		return
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	respondJSON(w, http.StatusOK, quotes)
}

// Stats returns the customer summary numbers.
func (h *CustomerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.customerService.Stats(r.Context()))
}
