// Package llm talks to an OpenAI-compatible chat completion endpoint to classify and summarize articles
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Config for the chat completion client
type Config struct {
	Endpoint    string // base url, e.g. http://localhost:11434/v1 for ollama
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// client wraps go-openai client with a single system+user exchange
type client struct {
	api *openai.Client
	cfg Config
}

func newClient(cfg Config) *client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}
	return &client{api: openai.NewClientWithConfig(clientConfig), cfg: cfg}
}

// complete sends system and user messages and returns the trimmed content of the first choice
func (c *client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
