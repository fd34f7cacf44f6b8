package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	alertsvc "expmon/internal/business/alert"
	"expmon/internal/business/inventory"
	"expmon/internal/business/monitor"
	recipesvc "expmon/internal/business/recipe"
	"expmon/internal/repo/rpproduct"
	"expmon/internal/server/handlers/alert"
	"expmon/internal/server/handlers/product"
	"expmon/internal/server/handlers/recipe"
	"expmon/pkg/logger"
)

var now = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type envelope struct {
	Meta struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Path string `json:"path"`
			Info string `json:"info"`
		} `json:"details"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T, seed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	repo := rpproduct.NewMemoryRepository()
	clock := inventory.FixedClock{T: now}
	query := inventory.NewQueryService(repo, clock)
	if seed {
		if _, err := inventory.NewSeeder(repo, query, log).Seed(context.Background()); err != nil {
			t.Fatalf("Seed: %v", err)
		}
	}

	matcher := recipesvc.NewMatcher(recipesvc.DefaultCatalog(), 0)
	alerts := alertsvc.NewService(alertsvc.NewHistory(0), matcher, clock, log)
	checker := monitor.NewChecker(query, alerts, log)

	return SetupRoutes(
		product.NewProductHandler(inventory.NewProductService(repo, query)),
		recipe.NewRecipeHandler(matcher),
		alert.NewAlertHandler(alerts, checker),
		log,
	)
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, *envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.Len() == 0 {
		return w.Code, nil
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode body %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, &env
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t, false)
	for _, path := range []string{"/health", "/api/v1/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("GET %s = %d", path, w.Code)
		}
	}
}

func TestProductLifecycle(t *testing.T) {
	r := newTestEngine(t, false)

	code, env := do(t, r, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":            "Fresh Milk",
		"category":        "Dairy",
		"expiration_date": "2026-10-17",
		"quantity":        50,
		"price":           "3.99",
	})
	if code != http.StatusCreated {
		t.Fatalf("create = %d %+v", code, env.Meta)
	}
	var created struct {
		ID                  int64  `json:"id"`
		TotalValue          string `json:"total_value"`
		DaysUntilExpiration int    `json:"days_until_expiration"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.TotalValue != "199.5" || created.DaysUntilExpiration != 1 {
		t.Fatalf("created = %+v", created)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/products/expiring-tomorrow", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"count":1`)) {
		t.Fatalf("expiring-tomorrow = %d %s", code, env.Data)
	}

	code, _ = do(t, r, http.MethodPut, "/api/v1/products/1", map[string]interface{}{
		"name":            "Fresh Milk",
		"category":        "Dairy",
		"expiration_date": "2026-10-20",
		"quantity":        10,
		"price":           3.5,
	})
	if code != http.StatusOK {
		t.Fatalf("update = %d", code)
	}

	code, _ = do(t, r, http.MethodDelete, "/api/v1/products/1", nil)
	if code != http.StatusNoContent {
		t.Fatalf("delete = %d", code)
	}
	code, env = do(t, r, http.MethodGet, "/api/v1/products/1", nil)
	if code != http.StatusNotFound || env.Meta.Code != http.StatusNotFound {
		t.Fatalf("get deleted = %d", code)
	}
}

func TestProductValidation(t *testing.T) {
	r := newTestEngine(t, false)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"category": "Dairy", "expiration_date": "2026-10-17", "quantity": 1, "price": "1.00"}},
		{"zero quantity", map[string]interface{}{"name": "Milk", "category": "Dairy", "expiration_date": "2026-10-17", "quantity": 0, "price": "1.00"}},
		{"bad date", map[string]interface{}{"name": "Milk", "category": "Dairy", "expiration_date": "17/10/2026", "quantity": 1, "price": "1.00"}},
		{"price precision", map[string]interface{}{"name": "Milk", "category": "Dairy", "expiration_date": "2026-10-17", "quantity": 1, "price": "1.999"}},
		{"negative price", map[string]interface{}{"name": "Milk", "category": "Dairy", "expiration_date": "2026-10-17", "quantity": 1, "price": "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, r, http.MethodPost, "/api/v1/products", tc.body)
			if code != http.StatusBadRequest || env.Meta.Code != http.StatusBadRequest {
				t.Fatalf("code = %d, meta = %+v", code, env.Meta)
			}
		})
	}

	_, env := do(t, r, http.MethodPost, "/api/v1/products", cases[0].body)
	if len(env.Meta.Details) != 1 || env.Meta.Details[0].Path != "Name" {
		t.Fatalf("details = %+v", env.Meta.Details)
	}
}

func TestExpiringInDaysBounds(t *testing.T) {
	r := newTestEngine(t, true)

	for _, path := range []string{"/api/v1/products/expiring-in-days/-1", "/api/v1/products/expiring-in-days/366", "/api/v1/products/expiring-in-days/abc"} {
		if code, _ := do(t, r, http.MethodGet, path, nil); code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, code)
		}
	}

	code, env := do(t, r, http.MethodGet, "/api/v1/products/expiring-in-days/7", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"count":16`)) {
		t.Fatalf("expiring-in-days/7 = %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/products/search?name=milk", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte("Fresh Milk")) {
		t.Fatalf("search = %d %s", code, env.Data)
	}
	if code, _ := do(t, r, http.MethodGet, "/api/v1/products/search", nil); code != http.StatusBadRequest {
		t.Fatalf("search without name = %d", code)
	}
}

func TestRecipeRoutes(t *testing.T) {
	r := newTestEngine(t, false)

	code, env := do(t, r, http.MethodGet, "/api/v1/recipes/Fresh%20Milk", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte("Creamy Pancakes")) {
		t.Fatalf("recipes = %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodPost, "/api/v1/recipes/suggest", map[string]interface{}{
		"product_names": []string{"Fresh Milk", "Aged Cheddar Cheese", "Gala Apples"},
	})
	if code != http.StatusOK {
		t.Fatalf("suggest = %d", code)
	}
	var out struct {
		Recipes []struct {
			Name string `json:"name"`
		} `json:"recipes"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Recipes) != 5 {
		t.Fatalf("got %d recipes, want 5", len(out.Recipes))
	}

	if code, _ := do(t, r, http.MethodPost, "/api/v1/recipes/suggest", map[string]interface{}{"product_names": []string{}}); code != http.StatusBadRequest {
		t.Fatalf("empty suggest = %d", code)
	}
}

func TestAlertRoutes(t *testing.T) {
	r := newTestEngine(t, true)

	code, env := do(t, r, http.MethodPost, "/api/v1/alerts/check", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"alerts_raised":2`)) {
		t.Fatalf("check = %d %s", code, env.Data)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/alerts/history?limit=1", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"count":1`)) || !bytes.Contains(env.Data, []byte("SEVEN_DAYS")) {
		t.Fatalf("history = %d %s", code, env.Data)
	}
	if code, _ := do(t, r, http.MethodGet, "/api/v1/alerts/history?limit=0", nil); code != http.StatusBadRequest {
		t.Fatalf("history limit=0 = %d", code)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/alerts/stats", nil)
	if code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"total_alerts":2`)) || !bytes.Contains(env.Data, []byte(`"history_cap":100`)) {
		t.Fatalf("stats = %d %s", code, env.Data)
	}
}
