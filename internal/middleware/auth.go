package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/localpass/passgen/internal/crypto"
)

type contextKey string

const profileKey contextKey = "profile"

// JWTAuth returns middleware that validates a Bearer token from the Authorization header
// and stores the token's preferences profile in the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), claims.Profile())))
		})
	}
}

// WithProfile returns a copy of ctx carrying the preferences profile.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

// ProfileFromContext extracts the authenticated preferences profile from the request context.
func ProfileFromContext(ctx context.Context) (string, bool) {
	profile, ok := ctx.Value(profileKey).(string)
	return profile, ok && profile != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
