package genai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/watchlab/storefront-backend/pkg/config"
)

// Fallback is returned when the model produces no usable text.
const Fallback = "Sorry, I could not process your request."

// Client wraps the Gemini API for single-prompt text completions. The API key
// stays server-side; nothing in the storefront surface ever sees it.
type Client struct {
	client *genai.Client
	model  string
}

// New builds a Gemini client from configuration.
func New(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Complete sends a single prompt and returns the first text completion.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return Fallback, nil
	}
	return text, nil
}
