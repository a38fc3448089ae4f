package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChat is the Gemini-backed Completer.
type GeminiChat struct {
	client *genai.Client
	model  string
}

func NewGeminiChat(ctx context.Context, apiKey, model string) (*GeminiChat, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiChat{client: client, model: model}, nil
}

func (g *GeminiChat) Complete(ctx context.Context, system, user string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(120)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini")
	}
	if text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
		return string(text), nil
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (g *GeminiChat) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
