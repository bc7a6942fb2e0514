// Package processor enriches raw articles with a summary and a category
package processor

import (
	"context"
	"crypto/md5" //nolint:gosec // url fingerprint, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/summary"
)

//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier

// ErrEnrichmentFailed returned when both summarizer and classifier failed for an article
var ErrEnrichmentFailed = errors.New("enrichment failed")

// Summarizer makes a short summary of article text
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Classifier assigns a category to article text
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Config for the processor
type Config struct {
	MaxContentLength    int           // max runes of stored content, default 1000
	ClassifyInputLength int           // max runes of content passed to classifier, default 1000
	SummaryTimeout      time.Duration // default 60s
	ClassifyTimeout     time.Duration // default 20s
}

// Processor turns raw articles into processed ones.
// Summarizer and classifier are optional, without a summarizer the extractive summary is used and
// without a classifier every article is general.
type Processor struct {
	summarizer Summarizer
	classifier Classifier
	cfg        Config
	now        func() time.Time
}

// New makes a processor, nil summarizer or classifier are allowed
func New(summarizer Summarizer, classifier Classifier, cfg Config) *Processor {
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = 1000
	}
	if cfg.ClassifyInputLength <= 0 {
		cfg.ClassifyInputLength = 1000
	}
	if cfg.SummaryTimeout <= 0 {
		cfg.SummaryTimeout = 60 * time.Second
	}
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = 20 * time.Second
	}
	return &Processor{summarizer: summarizer, classifier: classifier, cfg: cfg, now: time.Now}
}

// Process summarizes and classifies a raw article.
// A failed summary falls back to the extractive one and a failed classification to general, both mark
// the result degraded. Only when both external calls fail the article is rejected with ErrEnrichmentFailed.
func (p *Processor) Process(ctx context.Context, raw domain.RawArticle) (domain.ProcessResult, error) {
	res := domain.ProcessResult{}

	sum, sumErr := p.summarize(ctx, raw.Content)
	if sumErr != nil {
		res.Degraded = true
		res.Notes = append(res.Notes, "summary: "+sumErr.Error())
	}

	category, clsErr := p.classify(ctx, classifyInput(raw, p.cfg.ClassifyInputLength))
	if clsErr != nil {
		res.Degraded = true
		res.Notes = append(res.Notes, "category: "+clsErr.Error())
	}

	if sumErr != nil && clsErr != nil {
		return domain.ProcessResult{}, fmt.Errorf("process %s: %w: %w", raw.URL, ErrEnrichmentFailed, errors.Join(sumErr, clsErr))
	}

	res.Article = domain.ProcessedArticle{
		Title:     raw.Title,
		Summary:   sum,
		Content:   truncate(raw.Content, p.cfg.MaxContentLength),
		Authors:   raw.Authors,
		Published: raw.Published,
		Source:    raw.Source,
		URL:       raw.URL,
		ImageURL:  raw.ImageURL,
		Category:  category,
		URLHash:   URLHash(raw.URL),
		CreatedAt: p.now().UTC(),
	}
	return res, nil
}

// summarize returns llm summary if possible, extractive summary otherwise.
// Error reports the summarizer failure even though the returned summary is usable.
func (p *Processor) summarize(ctx context.Context, text string) (string, error) {
	if p.summarizer == nil {
		return summary.Extract(text), nil
	}

	sctx, cancel := context.WithTimeout(ctx, p.cfg.SummaryTimeout)
	defer cancel()
	res, err := p.summarizer.Summarize(sctx, text)
	if err == nil && strings.TrimSpace(res) == "" {
		err = errors.New("empty summary")
	}
	if err != nil {
		lgr.Printf("[WARN] summarizer failed, using extractive summary: %v", err)
		return summary.Extract(text), err
	}
	return res, nil
}

// classify returns the normalized category, general on failure
func (p *Processor) classify(ctx context.Context, text string) (string, error) {
	if p.classifier == nil {
		return domain.CategoryGeneral, nil
	}

	cctx, cancel := context.WithTimeout(ctx, p.cfg.ClassifyTimeout)
	defer cancel()
	res, err := p.classifier.Classify(cctx, text)
	if err != nil {
		lgr.Printf("[WARN] classifier failed, using %s: %v", domain.CategoryGeneral, err)
		return domain.CategoryGeneral, err
	}
	return domain.NormalizeCategory(res), nil
}

// URLHash returns hex md5 of the article url, the storage identity of an article
func URLHash(u string) string {
	sum := md5.Sum([]byte(u)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

func classifyInput(raw domain.RawArticle, limit int) string {
	return raw.Title + "\n\n" + truncate(raw.Content, limit)
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
