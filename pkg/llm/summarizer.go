package llm

import (
	"context"
	"errors"
	"fmt"
)

const summarizerSystemPrompt = `You summarize news articles.
Write a concise summary of 2-3 sentences that captures the main story and key facts.
Write directly about the content itself, never use phrases like "The article discusses".
Write the summary in the same language as the article.`

// Summarizer produces abstractive summaries with a chat completion model
type Summarizer struct {
	client    *client
	maxTokens int
}

// NewSummarizer creates a new LLM summarizer, maxTokens <= 0 uses the client default
func NewSummarizer(cfg Config, maxTokens int) *Summarizer {
	return &Summarizer{client: newClient(cfg), maxTokens: maxTokens}
}

// Summarize returns the summary of text, empty model output is an error
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	out, err := s.client.complete(ctx, summarizerSystemPrompt, text, s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("summarize article: %w", err)
	}
	if out == "" {
		return "", errors.New("summarize article: empty summary")
	}
	return out, nil
}
