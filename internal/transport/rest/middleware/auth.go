package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"mindtrack/internal/service"
)

type contextKey string

const clinicianIDKey contextKey = "clinicianID"

// Auth validates the JWT from the Authorization header and puts the
// clinician ID into the request context
func Auth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeAuthError(w, "missing authorization token")
				return
			}

			claims, err := authSvc.ValidateToken(token)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), clinicianIDKey, claims.ClinicianID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClinicianID extracts the authenticated clinician ID from the
// request context
func GetClinicianID(ctx context.Context) string {
	id, _ := ctx.Value(clinicianIDKey).(string)
	return id
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
