package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cartsvc "github.com/watchlab/storefront-backend/internal/cart"
	"github.com/watchlab/storefront-backend/pkg/config"
	"github.com/watchlab/storefront-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "dev", Port: "8080"},
		Admin:   config.AdminConfig{Token: "sekrit"},
		Session: config.SessionConfig{CookieName: "ws_session", TTL: 24 * time.Hour},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cart, err := cartsvc.NewService(time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:          testConfig(),
		Metrics:         metrics.NewHTTPMetrics(reg),
		MetricsGatherer: reg,
		Cart:            cart,
	})
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if env := rec.Header().Get("X-WatchStore-Env"); env != "dev" {
		t.Fatalf("unexpected env header %q", env)
	}
}

func TestProductRoute(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/product", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Name   string   `json:"name"`
			Colors []string `json:"colors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Data.Name != "SmartWatch Pro Max" || len(envelope.Data.Colors) != 3 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestCartFlowThroughRouter(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	add := httptest.NewRequest("POST", "/api/v1/cart/", strings.NewReader(`{"color":"Silver","size":"41mm"}`))
	addRec := httptest.NewRecorder()
	router.ServeHTTP(addRec, add)

	if addRec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", addRec.Code, addRec.Body.String())
	}

	cookies := addRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	list := httptest.NewRequest("GET", "/api/v1/cart/", nil)
	list.AddCookie(cookies[0])
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, list)

	var envelope struct {
		Data struct {
			Lines []struct {
				Color string `json:"color"`
			} `json:"lines"`
		} `json:"data"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Data.Lines) != 1 || envelope.Data.Lines[0].Color != "Silver" {
		t.Fatalf("unexpected cart %+v", envelope.Data)
	}

	// A fresh session sees an empty cart.
	other := httptest.NewRecorder()
	router.ServeHTTP(other, httptest.NewRequest("GET", "/api/v1/cart/", nil))
	if err := json.Unmarshal(other.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(envelope.Data.Lines) != 0 {
		t.Fatalf("expected empty cart for new session, got %+v", envelope.Data)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/v1/overview", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/product", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("expected request counter in metrics exposition")
	}
}
