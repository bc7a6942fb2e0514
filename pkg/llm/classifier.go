package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/pulsenews/pkg/domain"
)

const classifierSystemPrompt = `You are a news classifier.
Your task is to classify a news article into exactly one of these categories:
%s.

Respond only with the category name from the list.`

// Classifier assigns one of domain.Categories to article text
type Classifier struct {
	client    *client
	systemMsg string
}

// NewClassifier creates a new LLM classifier
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{
		client:    newClient(cfg),
		systemMsg: fmt.Sprintf(classifierSystemPrompt, strings.Join(domain.Categories, ", ")),
	}
}

// Classify returns the category for text. A response naming no known category yields general,
// only transport and api failures are errors.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	out, err := c.client.complete(ctx, c.systemMsg, "Article:\n"+text, 20)
	if err != nil {
		return "", fmt.Errorf("classify article: %w", err)
	}
	return domain.NormalizeCategory(out), nil
}
