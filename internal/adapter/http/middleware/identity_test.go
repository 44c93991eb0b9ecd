package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdentityInjectsUserID(t *testing.T) {
	var gotUserID string
	var gotOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/summary", nil)
	req.Header.Set(UserIDHeader, "user-42")
	rr := httptest.NewRecorder()

	Identity(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !gotOK {
		t.Fatalf("expected user ID in context")
	}
	if gotUserID != "user-42" {
		t.Fatalf("expected user ID %q, got %q", "user-42", gotUserID)
	}
}

func TestIdentityRejectsMissingHeader(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{name: "absent header", header: ""},
		{name: "blank header", header: "   "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/summary", nil)
			if tc.header != "" {
				req.Header.Set(UserIDHeader, tc.header)
			}
			rr := httptest.NewRecorder()

			Identity(next).ServeHTTP(rr, req)

			if handlerCalled {
				t.Fatalf("next handler should not be invoked")
			}
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rr.Code)
			}
		})
	}
}

func TestUserIDFromContextWithoutValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := UserIDFromContext(req.Context()); ok {
		t.Fatalf("expected no user ID in fresh context")
	}
}
