package middleware

import (
	"context"
	"net/http"
	"strings"

	"lovematch_server/helpers"
	"lovematch_server/services"
)

type contextKey string

const userIDKey contextKey = "userId"

// TokenVerifier resolves a session token to a user id
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// WithUserID stores the authenticated user id on ctx
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, empty when the request is anonymous
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// RequireAuth rejects requests without a valid session token
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := verifier.VerifyToken(BearerToken(r.Header.Get("Authorization")))
			if err != nil {
				helpers.WriteError(w, services.ErrUnauthenticated, "")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
