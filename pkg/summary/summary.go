// Package summary builds short extractive summaries of article text
package summary

import (
	"context"
	"strings"
)

const emptySummary = "No content available to summarize."

// Extract returns the first two and the last sentence of text.
// Sentences are split on '.', text with three or fewer chunks is returned as is.
func Extract(text string) string {
	if strings.TrimSpace(text) == "" {
		return emptySummary
	}

	chunks := strings.Split(text, ".")
	if len(chunks) <= 3 {
		return text
	}

	// last non-empty chunk, "a. b. c. d." ends with an empty one
	last := len(chunks) - 1
	for last > 2 && strings.TrimSpace(chunks[last]) == "" {
		last--
	}

	picked := []string{chunks[0], chunks[1], chunks[last]}
	for i := range picked {
		picked[i] = strings.TrimSpace(picked[i])
	}
	return strings.Join(picked, ". ") + "."
}

// Extractive is a summarizer backed by Extract, it never fails
type Extractive struct{}

// Summarize returns Extract(text)
func (Extractive) Summarize(_ context.Context, text string) (string, error) {
	return Extract(text), nil
}
