package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appraisal/internal/domain/auth"
)

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{EmployeeID: "emp-1", Role: auth.RoleHR}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.EmployeeID != "emp-1" || user.Role != auth.RoleHR {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestRequirePermission(t *testing.T) {
	secret := "test-secret"
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(role, permission string, withToken bool) int {
		t.Helper()
		handler := Auth(secret)(RequirePermission(permission)(next))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if withToken {
			token, err := auth.GenerateToken(secret, auth.Claims{EmployeeID: "emp-1", Role: role}, time.Hour)
			if err != nil {
				t.Fatalf("token error: %v", err)
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := run(auth.RoleHR, auth.PermRecordsPublish, true); code != http.StatusOK {
		t.Fatalf("expected 200 for hr publish, got %d", code)
	}
	if code := run(auth.RoleManager, auth.PermRecordsPublish, true); code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager publish, got %d", code)
	}
	if code := run(auth.RoleAdmin, auth.PermRecordsPublish, true); code != http.StatusOK {
		t.Fatalf("expected 200 for admin via system permission, got %d", code)
	}
	if code := run("", auth.PermRecordsRead, false); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
}
