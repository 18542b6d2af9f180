package ai

import (
	"context"
)

// Generator is the contract for the external text-generation endpoint.
// Implementations hold no per-call state, so concurrent calls are independent.
type Generator interface {
	// Generate sends prompt with the fixed sampling parameters and returns the raw completion text.
	Generate(ctx context.Context, prompt, apiKey string, maxOutputTokens int) (string, error)
}

// Sampling parameters shared by every gateway.
const (
	Temperature = 0.7
	TopK        = 40
	TopP        = 0.95
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// DefaultBaseURL is the public Generative Language API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
