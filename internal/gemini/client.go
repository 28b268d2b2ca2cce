// Package gemini wraps the Gemini API behind a single blocking text
// generation call used by the workflow steps.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Generator produces model output for a prompt. Steps depend on this
// interface so tests can substitute canned responses.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single-shot generation request. Schema is an optional
// response-shape hint; when set the model is asked for JSON output.
type Request struct {
	Prompt      string
	Temperature float32
	Schema      *genai.Schema
}

// Client calls the Gemini API.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
}

// New connects to the Gemini API backend. apiKey must be non-empty; model
// falls back handling is the caller's concern.
func New(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is empty")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{genai: gc, model: model, timeout: timeout}, nil
}

// Generate performs one blocking generation call and returns the raw text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}

	started := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	log.Debug().
		Str("model", c.model).
		Float32("temperature", req.Temperature).
		Dur("elapsed", time.Since(started)).
		Int("response_chars", len(text)).
		Msg("gemini call complete")
	return text, nil
}
