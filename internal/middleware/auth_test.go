package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spiceroute-services/internal/auth"
	"spiceroute-services/internal/jsonstore"
)

const testSecret = "test-secret"

func newAuthedRequest(t *testing.T, method, target, role string) *http.Request {
	t.Helper()
	token, err := auth.IssueAccessToken("user", auth.StaffRole(role), "User", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestStaffAuth(t *testing.T) {
	store, err := jsonstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("jsonstore.New: %v", err)
	}
	roles := auth.RolesDocument{Roles: []auth.RolePermissions{
		{Name: "waiter", Permissions: []string{"orders", "menu"}},
		{Name: "manager", Permissions: []string{"*"}},
	}}
	if err := store.Save(rolesFile, roles); err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	guard := StaffAuth(store, testSecret)(okHandler())

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("waiter can read orders", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, newAuthedRequest(t, http.MethodGet, "/api/orders", "waiter"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("waiter cannot touch inventory", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, newAuthedRequest(t, http.MethodGet, "/api/inventory", "waiter"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("wildcard role passes everywhere", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, newAuthedRequest(t, http.MethodPost, "/api/save-credentials", "manager"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("admin bypasses the roles document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, newAuthedRequest(t, http.MethodPut, "/api/roles-permissions", "admin"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}
