package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

type ctxKey struct{}

// userIDCtxKey carries the authenticated user id through request contexts.
var userIDCtxKey ctxKey

// AuthMiddleware rejects any request that does not carry a bearer token
// resolving to a user-prefixed id, and stores that id on the request context
// for the handlers behind it.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing or malformed bearer token"})
			return
		}

		userID, err := s.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		// A validly signed token is still no good if its subject does not
		// name one of our user ids.
		if typeid.Validate(userID, typeid.PrefixUser) != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token subject"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const scheme = "Bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	return header[len(scheme):], true
}

// UserIDFromContext returns the user id AuthMiddleware stored on the
// context, or the empty string when the request was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDCtxKey).(string)
	return userID
}
