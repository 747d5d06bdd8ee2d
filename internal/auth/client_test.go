package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/watchlab/storefront-backend/pkg/config"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.AuthConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		RequestTimeout: time.Second,
		RedirectURL:    "https://store.example.com/verify",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestSendMagicLinkSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotAPIKey string
	var gotBody magicLinkRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if err := client.SendMagicLink(context.Background(), "shopper@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/auth/v1/magiclink" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Fatalf("unexpected api key header %q", gotAPIKey)
	}
	if gotBody.Email != "shopper@example.com" {
		t.Fatalf("unexpected email %q", gotBody.Email)
	}
	if gotBody.RedirectTo != "https://store.example.com/verify" {
		t.Fatalf("unexpected redirect %q", gotBody.RedirectTo)
	}
}

func TestSendMagicLinkUpstreamRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "email rate limit exceeded"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.SendMagicLink(context.Background(), "shopper@example.com")
	if err == nil {
		t.Fatal("expected error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAuthInitiation {
		t.Fatalf("unexpected error: %v", err)
	}

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["reason"] != "email rate limit exceeded" {
		t.Fatalf("unexpected reason %v", details["reason"])
	}
}

func TestSendMagicLinkTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(t, srv.URL)
	err := client.SendMagicLink(context.Background(), "shopper@example.com")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeAuthInitiation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClientRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.AuthConfig{APIKey: "k"}); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := NewClient(config.AuthConfig{BaseURL: "https://auth.example.com"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
