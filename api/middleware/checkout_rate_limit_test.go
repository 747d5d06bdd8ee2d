package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/watchlab/storefront-backend/pkg/config"
)

type fakeLimiterStore struct {
	counts map[string]int64
}

func (f *fakeLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func limitedHandler(store rateLimiterStore, cfg config.CheckoutRateLimitConfig) http.Handler {
	policy := NewCheckoutRateLimitPolicy(cfg)
	return CheckoutRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func checkoutRequest(ip, email string) *http.Request {
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"email":"`+email+`"}`))
	req.RemoteAddr = ip + ":52110"
	return req
}

func TestCheckoutRateLimitPerEmail(t *testing.T) {
	t.Parallel()

	handler := limitedHandler(&fakeLimiterStore{}, config.CheckoutRateLimitConfig{
		Window:     time.Minute,
		EmailLimit: 2,
		IPLimit:    100,
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, checkoutRequest("10.0.0.1", "a@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("10.0.0.2", "A@Example.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same email regardless of case/ip, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("10.0.0.3", "other@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("different email should pass, got %d", rec.Code)
	}
}

func TestCheckoutRateLimitPerIP(t *testing.T) {
	t.Parallel()

	handler := limitedHandler(&fakeLimiterStore{}, config.CheckoutRateLimitConfig{
		Window:  time.Minute,
		IPLimit: 1,
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("10.0.0.9", "a@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("10.0.0.9", "b@example.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for repeated ip, got %d", rec.Code)
	}
}

func TestCheckoutRateLimitDisabledWithoutStore(t *testing.T) {
	t.Parallel()

	handler := limitedHandler(nil, config.CheckoutRateLimitConfig{
		Window:     time.Minute,
		EmailLimit: 1,
	})

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, checkoutRequest("10.0.0.1", "a@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("limiter without store must pass through, got %d", rec.Code)
		}
	}
}

func TestCheckoutRateLimitPreservesBody(t *testing.T) {
	t.Parallel()

	var seen string
	policy := NewCheckoutRateLimitPolicy(config.CheckoutRateLimitConfig{
		Window:     time.Minute,
		EmailLimit: 10,
	})
	handler := CheckoutRateLimit(policy, &fakeLimiterStore{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading body: %v", err)
		}
		seen = string(raw)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, checkoutRequest("10.0.0.1", "a@example.com"))

	if !strings.Contains(seen, "a@example.com") {
		t.Fatalf("downstream handler should see the original body, got %q", seen)
	}
}
