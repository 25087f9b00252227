package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"socialnet/internal/auth"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// UserIDKey stores the authenticated user's ID in the request context.
const UserIDKey contextKey = "userID"

// ClaimsKey stores the full token claims in the request context.
const ClaimsKey contextKey = "claims"

// AuthMiddleware validates the bearer token and places the caller identity
// into the request context.
func AuthMiddleware(jwtSecretKey string, blacklist auth.TokenBlacklist) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization token")
				return
			}

			headerParts := strings.SplitN(authHeader, " ", 2)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				writeAuthError(w, "authorization header must be of the form Bearer {token}")
				return
			}

			claims, err := auth.ValidateToken(r.Context(), headerParts[1], jwtSecretKey, blacklist)
			if err != nil {
				writeAuthError(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}

// GetClaimsFromContext extracts the full token claims from the context.
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
