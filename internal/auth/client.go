package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/watchlab/storefront-backend/pkg/config"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
)

// MagicLinkSender initiates a passwordless sign-in for an email address.
type MagicLinkSender interface {
	SendMagicLink(ctx context.Context, email string) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the hosted auth provider's magic-link endpoint.
type Client struct {
	httpClient  httpDoer
	baseURL     string
	apiKey      string
	redirectURL string
}

type magicLinkRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type upstreamError struct {
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

// NewClient builds the magic-link client from configuration.
func NewClient(cfg config.AuthConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("auth base url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("auth api key is required")
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		redirectURL: cfg.RedirectURL,
	}, nil
}

// SendMagicLink asks the auth provider to email a sign-in link. A 2xx means
// the link was accepted for delivery; anything else is an initiation failure.
func (c *Client) SendMagicLink(ctx context.Context, email string) error {
	payload, err := json.Marshal(magicLinkRequest{
		Email:      email,
		RedirectTo: c.redirectURL,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding magic link request")
	}

	endpoint := c.baseURL + "/auth/v1/magiclink"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building magic link request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeAuthInitiation, err, "magic link request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return pkgerrors.New(pkgerrors.CodeAuthInitiation, "auth provider rejected magic link request").
		WithDetails(map[string]any{
			"status": resp.StatusCode,
			"reason": readUpstreamMessage(resp.Body),
		})
}

func readUpstreamMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed upstreamError
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.ErrorDescription != "" {
			return parsed.ErrorDescription
		}
	}
	return strings.TrimSpace(string(raw))
}
