package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// SDKGateway implements Generator with Google's official Gemini client.
// A client is created per call because the API key is supplied per call.
type SDKGateway struct {
	model string
}

func NewSDKGateway(model string) *SDKGateway {
	if model == "" {
		model = DefaultModel
	}
	return &SDKGateway{model: model}
}

func (g *SDKGateway) Generate(ctx context.Context, prompt, apiKey string, maxOutputTokens int) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", &GatewayError{Err: fmt.Errorf("create gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(Temperature)
	model.SetTopK(TopK)
	model.SetTopP(TopP)
	model.SetMaxOutputTokens(int32(maxOutputTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", sdkError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || strings.TrimSpace(string(txt)) == "" {
		return "", ErrEmptyResponse
	}
	return string(txt), nil
}

// sdkError maps client errors onto the gateway taxonomy.
func sdkError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrEmptyResponse, blocked)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &GatewayError{StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	return &GatewayError{Err: err}
}
