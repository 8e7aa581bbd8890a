package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	mw := NewAuthMiddleware("", nil, nil)
	handler := mw.Handler(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected auth to be disabled, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	mw := NewAuthMiddleware("secret", nil, []string{"/healthz"})
	handler := mw.Handler(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected skip path to pass, got %d", resp.Code)
	}
}

func TestAuthAcceptsIssuedToken(t *testing.T) {
	mw := NewAuthMiddleware("secret", nil, nil)

	var gotUser string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = r.Context().Value(UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	token, err := mw.IssueToken("u-42", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotUser != "u-42" {
		t.Fatalf("expected user id in context, got %q", gotUser)
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	issuer := NewAuthMiddleware("other", nil, nil)
	token, err := issuer.IssueToken("u-1", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	mw := NewAuthMiddleware("secret", nil, nil)
	handler := mw.Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
