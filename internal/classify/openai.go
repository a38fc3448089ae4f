package classify

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChat talks to any OpenAI-compatible chat completions endpoint. With
// BaseURL pointed at a local Ollama (http://localhost:11434/v1) no API key is
// needed.
type OpenAIChat struct {
	client *openai.Client
	model  string
}

func NewOpenAIChat(apiKey, baseURL, model string) *OpenAIChat {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIChat{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIChat) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		MaxTokens:   120,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
