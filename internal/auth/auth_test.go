package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPasswordHashing(t *testing.T) {
	s := NewService("secret", time.Hour)

	hash, err := s.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in the clear")
	}
	if err := s.CheckPassword(hash, "hunter2"); err != nil {
		t.Errorf("CheckPassword rejected correct password: %v", err)
	}
	if err := s.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := NewService("secret", time.Hour)
	userID := uuid.New()

	token, err := s.IssueToken(userID, "viuser")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "viuser" {
		t.Errorf("expected role viuser, got %s", claims.Role)
	}
}

func TestTokenExpiry(t *testing.T) {
	s := NewService("secret", time.Minute)
	issued := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.IssueToken(uuid.New(), "viuser")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).IssueToken(uuid.New(), "viuser")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := NewService("secret-b", time.Hour).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	s := NewService("secret", time.Hour)
	userID := uuid.New()
	token, err := s.IssueToken(userID, "viuser")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	var gotClaims *Claims
	handler := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != userID {
		t.Errorf("expected claims for %s, got %+v", userID, gotClaims)
	}

	// No token
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	s := NewService("secret", time.Hour)
	token, _ := s.IssueToken(uuid.New(), "viuser")

	handler := s.Middleware(RequireRole("vivendor")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %d", rec.Code)
	}
}
