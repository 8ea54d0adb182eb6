package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

func TestAuthMiddleware(t *testing.T) {
	svc := NewService(nil, "test-secret")
	userID := typeid.NewUserID()
	token, err := svc.issueToken(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var gotUserID string
	handler := svc.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"scheme only", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/fonts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusNoContent && gotUserID != userID {
				t.Errorf("context user id = %q, want %q", gotUserID, userID)
			}
		})
	}
}

func TestAuthMiddlewareRejectsNonUserSubject(t *testing.T) {
	svc := NewService(nil, "test-secret")

	// A correctly signed token whose subject is some other id kind must
	// still be rejected.
	token, err := svc.issueToken(typeid.NewFontID())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := svc.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran for a non-user subject")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/fonts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
