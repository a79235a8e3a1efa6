package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/authbase/authbase-go/internal/crypto"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller decoded from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// SessionChecker reports whether a token is still the user's current session.
type SessionChecker interface {
	IsSessionCurrent(ctx context.Context, userID, token string) (bool, error)
}

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header. When sessions is non-nil, the token must additionally
// match the user's stored session token, so logged-out tokens are rejected
// before their expiry.
func JWTAuth(secret string, sessions SessionChecker) func(http.Handler) http.Handler {
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

			if sessions != nil {
				current, err := sessions.IsSessionCurrent(r.Context(), claims.Subject, token)
				if err != nil {
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if !current {
					writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
			}

			ident := Identity{UserID: claims.Subject, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
