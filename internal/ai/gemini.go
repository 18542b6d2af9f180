package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GeminiGateway calls the generateContent REST endpoint directly.
type GeminiGateway struct {
	baseURL string
	model   string
	client  *http.Client
}

// GatewayOption customises a GeminiGateway.
type GatewayOption func(*GeminiGateway)

// WithBaseURL overrides the API root (used by tests and proxies).
func WithBaseURL(base string) GatewayOption {
	return func(g *GeminiGateway) {
		if base != "" {
			g.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the model name.
func WithModel(model string) GatewayOption {
	return func(g *GeminiGateway) {
		if model != "" {
			g.model = model
		}
	}
}

// WithHTTPClient replaces the transport. The default client has no timeout of its own;
// callers bound the call through ctx.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *GeminiGateway) {
		if c != nil {
			g.client = c
		}
	}
}

func NewGeminiGateway(opts ...GatewayOption) *GeminiGateway {
	g := &GeminiGateway{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GeminiGateway) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
}

// Generate issues a single generateContent call. The API key travels in the x-goog-api-key header.
func (g *GeminiGateway) Generate(ctx context.Context, prompt, apiKey string, maxOutputTokens int) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     Temperature,
			TopK:            TopK,
			TopP:            TopP,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GatewayError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gerr := &GatewayError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != nil {
			gerr.Message = er.Error.Message
		}
		return "", gerr
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", &GatewayError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(gr.Candidates) == 0 || gr.Candidates[0].Content == nil || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := gr.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
