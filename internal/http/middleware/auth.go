package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/abtweb/studio-api/internal/auth"
	"github.com/abtweb/studio-api/internal/domain"
	"go.uber.org/zap"
)

// RequireAdmin guards the admin surface: every request must carry a valid
// bearer session token issued by the password gate.
func RequireAdmin(gate *auth.Gate, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, &domain.APIError{
					Type:   domain.ErrorTypeUnauthorized,
					Title:  "Unauthorized",
					Status: http.StatusUnauthorized,
					Detail: "Missing or malformed Authorization header",
				})
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if err := gate.Verify(r.Context(), token); err != nil {
				apiErr := &domain.APIError{
					Type:   domain.ErrorTypeUnauthorized,
					Title:  "Unauthorized",
					Status: http.StatusUnauthorized,
					Detail: "Invalid session token",
				}
				if errors.Is(err, auth.ErrSessionExpired) {
					apiErr.Detail = "Session expired, please log in again"
				}
				logger.Debug("Rejected admin request",
					zap.String("path", r.URL.Path), zap.Error(err))
				writeAuthError(w, apiErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, apiErr *domain.APIError) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(apiErr)
}
