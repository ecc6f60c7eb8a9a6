package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jefer15/debt-management-back/internal/http/middlewares"
	jwtx "github.com/jefer15/debt-management-back/internal/jwt"
)

func authedRequest(t *testing.T, header string) (*httptest.ResponseRecorder, int64, string, bool) {
	t.Helper()
	issuer := jwtx.NewIssuer("test-secret", "debtsvc-test", time.Hour)

	var (
		gotUserID int64
		gotEmail  string
		called    bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID = middlewares.GetUserID(r.Context())
		gotEmail = middlewares.GetEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/debt", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	middlewares.RequireAuth(issuer)(next).ServeHTTP(rec, req)
	return rec, gotUserID, gotEmail, called
}

func TestRequireAuthMissingToken(t *testing.T) {
	rec, _, _, called := authedRequest(t, "")
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("code = %d, called = %v", rec.Code, called)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("missing WWW-Authenticate header")
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	for _, h := range []string{"Basic abc", "Bearer", "token xyz"} {
		rec, _, _, called := authedRequest(t, h)
		if rec.Code != http.StatusUnauthorized || called {
			t.Errorf("header %q: code = %d, called = %v", h, rec.Code, called)
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	rec, _, _, called := authedRequest(t, "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("code = %d, called = %v", rec.Code, called)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	other := jwtx.NewIssuer("other-secret", "debtsvc-test", time.Hour)
	token, _, err := other.IssueAccess(9, "x@y.com")
	if err != nil {
		t.Fatal(err)
	}
	rec, _, _, called := authedRequest(t, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("code = %d, called = %v", rec.Code, called)
	}
}

func TestRequireAuthInjectsIdentity(t *testing.T) {
	issuer := jwtx.NewIssuer("test-secret", "debtsvc-test", time.Hour)
	token, _, err := issuer.IssueAccess(42, "ana@example.com")
	if err != nil {
		t.Fatal(err)
	}

	rec, userID, email, called := authedRequest(t, "Bearer "+token)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("code = %d, called = %v", rec.Code, called)
	}
	if userID != 42 || email != "ana@example.com" {
		t.Fatalf("identity = %d, %q", userID, email)
	}
}
