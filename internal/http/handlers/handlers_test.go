package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spiceroute-services/internal/analytics"
	"spiceroute-services/internal/config"
	"spiceroute-services/internal/jsonstore"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store, err := jsonstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("jsonstore.New: %v", err)
	}
	invalidateDashboardCache("inventory", "waiters")
	return &Handler{
		Store:  store,
		Logger: zap.NewNop(),
		Config: config.Config{
			Env:              "test",
			MaxFileSizeBytes: 1 << 20,
			JWTSecret:        "test-secret",
			JWTExpirySeconds: 3600,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func doRequest(t *testing.T, router http.Handler, method, target string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not an envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestSaveCredentials(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Post("/api/save-credentials", h.SaveCredentials)

	t.Run("rejects non array", func(t *testing.T) {
		rec, env := doRequest(t, r, http.MethodPost, "/api/save-credentials", `{"username":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env.Success {
			t.Fatal("expected error envelope")
		}
	})

	t.Run("persists array verbatim", func(t *testing.T) {
		body := `[{"username":"admin","passwordHash":"h","role":"admin","extra":"kept"}]`
		rec, _ := doRequest(t, r, http.MethodPost, "/api/save-credentials", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var saved []map[string]any
		if err := h.Store.Load(FileStaffCredentials, &saved); err != nil {
			t.Fatalf("load credentials: %v", err)
		}
		if len(saved) != 1 {
			t.Fatalf("expected 1 credential, got %d", len(saved))
		}
		if saved[0]["extra"] != "kept" {
			t.Fatal("unknown fields should pass through untouched")
		}
	})
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	creds := []StaffCredential{{
		Username:     "ravi",
		PasswordHash: string(hash),
		Role:         "manager",
		Name:         "Ravi Kumar",
	}}
	if err := h.Store.Save(FileStaffCredentials, creds); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}

	r := chi.NewRouter()
	r.Post("/api/auth/login", h.Login)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		rec, env := doRequest(t, r, http.MethodPost, "/api/auth/login",
			`{"username":"ravi","password":"s3cret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		var data struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Token == "" {
			t.Fatal("expected a token")
		}
		if data.Role != "manager" {
			t.Fatalf("role = %q, want manager", data.Role)
		}
	})

	t.Run("wrong password maps to friendly message", func(t *testing.T) {
		rec, env := doRequest(t, r, http.MethodPost, "/api/auth/login",
			`{"username":"ravi","password":"nope"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if env.Message != "Invalid email or password. Please try again." {
			t.Fatalf("message = %q", env.Message)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		rec, _ := doRequest(t, r, http.MethodPost, "/api/auth/login",
			`{"username":"ghost","password":"s3cret"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestInventoryCRUD(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Get("/api/inventory", h.InventoryList)
	r.Post("/api/inventory", h.InventoryCreate)
	r.Put("/api/inventory/{id}", h.InventoryUpdate)
	r.Delete("/api/inventory/{id}", h.InventoryDelete)

	rec, env := doRequest(t, r, http.MethodPost, "/api/inventory",
		`{"name":"Basmati Rice","category":"Grains","currentStock":40,"unitPrice":2.5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var created analytics.InventoryItem
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created item: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created item should get an id")
	}
	if created.Status != analytics.StatusInStock {
		t.Fatalf("status = %q, want default in_stock", created.Status)
	}

	rec, _ = doRequest(t, r, http.MethodPost, "/api/inventory", `{"name":"","category":"Grains"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create without name: status = %d, want 400", rec.Code)
	}

	rec, env = doRequest(t, r, http.MethodPut, "/api/inventory/"+created.ID,
		`{"name":"Basmati Rice","category":"Grains","currentStock":10,"unitPrice":2.5,"status":"low_stock"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", rec.Code)
	}
	var updated analytics.InventoryItem
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode updated item: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("update must not change the item id")
	}
	if updated.Status != analytics.StatusLowStock {
		t.Fatalf("status = %q, want low_stock", updated.Status)
	}

	rec, _ = doRequest(t, r, http.MethodPut, "/api/inventory/missing", `{"name":"x","category":"y"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing: status = %d, want 404", rec.Code)
	}

	rec, _ = doRequest(t, r, http.MethodDelete, "/api/inventory/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}

	rec, env = doRequest(t, r, http.MethodGet, "/api/inventory", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var inv InventoryFile
	if err := json.Unmarshal(env.Data, &inv); err != nil {
		t.Fatalf("decode inventory: %v", err)
	}
	if len(inv.Items) != 0 {
		t.Fatalf("expected empty inventory after delete, got %d items", len(inv.Items))
	}
}

func TestOrderCreate(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Post("/api/orders", h.OrderCreate)

	rec, env := doRequest(t, r, http.MethodPost, "/api/orders",
		`{"items":[{"name":"Thali","quantity":2,"price":150},{"name":"Lassi","quantity":1,"price":60}],"total":9999}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	var order Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Total != 360 {
		t.Fatalf("total = %v, want recomputed 360", order.Total)
	}
	if order.Status != "pending" {
		t.Fatalf("status = %q, want pending", order.Status)
	}
	if order.CustomerName != "Walk-in Customer" {
		t.Fatalf("customerName = %q, want walk-in default", order.CustomerName)
	}
	if order.ID == "" || order.Timestamp == "" {
		t.Fatal("order should get an id and timestamp")
	}

	rec, _ = doRequest(t, r, http.MethodPost, "/api/orders", `{"items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty order: status = %d, want 400", rec.Code)
	}
}

func TestWaiterAnalyticsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	seed := AnalyticsFile{
		Waiters: []analytics.WaiterStats{
			{ID: "w1", Name: "Asha", Orders: 90, Revenue: 80000, Rating: 4.8},
			{ID: "w2", Name: "Vikram", Orders: 20, Revenue: 10000, Rating: 3.0},
		},
	}
	if err := h.Store.Save(FileAnalyticsData, seed); err != nil {
		t.Fatalf("seed analytics: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/analytics/waiters", h.WaiterAnalytics)

	rec, env := doRequest(t, r, http.MethodGet, "/api/analytics/waiters?priority=revenue", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var data struct {
		Waiters []analytics.WaiterPerformance `json:"waiters"`
		Chart   []analytics.ChartPoint        `json:"revenueChart"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Waiters) != 2 {
		t.Fatalf("expected 2 waiters, got %d", len(data.Waiters))
	}
	if data.Waiters[0].ID != "w1" {
		t.Fatalf("ranking should put the stronger waiter first, got %s", data.Waiters[0].ID)
	}
	if data.Waiters[0].Score < data.Waiters[1].Score {
		t.Fatal("scores must be descending")
	}
	if len(data.Chart) != 2 {
		t.Fatalf("expected a chart point per waiter, got %d", len(data.Chart))
	}
}

func TestInventoryAnalyticsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	seed := InventoryFile{Items: []analytics.InventoryItem{
		{ID: "1", Name: "Milk", Category: "Dairy", CurrentStock: 20, MinimumStock: 10, UnitPrice: 5, Status: analytics.StatusInStock},
		{ID: "2", Name: "Paneer", Category: "Dairy", CurrentStock: 0, MinimumStock: 5, UnitPrice: 12, Status: analytics.StatusOutOfStock},
		{ID: "3", Name: "Rice", Category: "Grains", CurrentStock: 50, MinimumStock: 20, UnitPrice: 2, Status: analytics.StatusInStock},
	}}
	if err := h.Store.Save(FileInventory, seed); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/analytics/inventory", h.InventoryAnalytics)

	rec, env := doRequest(t, r, http.MethodGet, "/api/analytics/inventory", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var data struct {
		Categories []analytics.ScoredCategory `json:"categories"`
		ValueChart []analytics.ChartPoint     `json:"valueChart"`
		TotalValue float64                    `json:"totalValue"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(data.Categories))
	}
	if data.TotalValue != 200 {
		t.Fatalf("totalValue = %v, want 200", data.TotalValue)
	}
	if len(data.ValueChart) != 2 {
		t.Fatalf("expected 2 chart points, got %d", len(data.ValueChart))
	}
}

func TestEventBookingCreateValidation(t *testing.T) {
	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Post("/api/event-bookings", h.EventBookingCreate)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"name":"Meera","phone":"123","guests":8,"eventType":"birthday"}`, http.StatusCreated},
		{"missing phone", `{"name":"Meera","guests":8}`, http.StatusBadRequest},
		{"zero guests", `{"name":"Meera","phone":"123","guests":0}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doRequest(t, r, http.MethodPost, "/api/event-bookings", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDashboardCacheInvalidation(t *testing.T) {
	invalidateDashboardCache("inventory")
	setDashboardCache(dashboardCacheKey("inventory", "value"), "cached", dashboardCacheTTL)
	if _, ok := getDashboardCache(dashboardCacheKey("inventory", "value")); !ok {
		t.Fatal("expected cache hit")
	}
	invalidateDashboardCache("inventory")
	if _, ok := getDashboardCache(dashboardCacheKey("inventory", "value")); ok {
		t.Fatal("expected cache miss after invalidation")
	}
}
