package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/abtweb/studio-api/internal/auth"
	"github.com/abtweb/studio-api/internal/domain"
	"go.uber.org/zap"
)

type AuthHandler struct {
	gate   *auth.Gate
	logger *zap.Logger
}

func NewAuthHandler(gate *auth.Gate, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, logger: logger}
}

// Login verifies the admin password and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	token, expiresAt, err := h.gate.Login(r.Context(), req.Password)
	if err != nil {
		var locked *auth.LockedOutError
		switch {
		case errors.As(err, &locked):
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(locked.Remaining.Seconds())))
			respondWithError(w, http.StatusLocked, locked.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, domain.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Session reports that the caller's session is still valid. The gate
// middleware has already verified the token by the time this runs.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// Logout clears the persisted session flags.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
