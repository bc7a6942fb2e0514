// Package pipeline runs fetch cycles: every source is fetched concurrently, results are deduplicated,
// articles not delivered before are processed and stored. Each cycle produces a report with an explicit
// outcome for every source and every article.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/pulsenews/pkg/dedup"
	"github.com/umputun/pulsenews/pkg/domain"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// ErrCycleInProgress returned by RunCycle when another cycle is still running
var ErrCycleInProgress = errors.New("fetch cycle already in progress")

// Source is a news source adapter
type Source interface {
	Name() string
	Fetch(ctx context.Context) (domain.FetchResult, error)
}

// Processor enriches a raw article
type Processor interface {
	Process(ctx context.Context, raw domain.RawArticle) (domain.ProcessResult, error)
}

// Store persists processed articles, returns false if an article with the same url hash already exists
type Store interface {
	InsertIfAbsent(ctx context.Context, article domain.ProcessedArticle) (bool, error)
}

// Params for the pipeline
type Params struct {
	Sources     []Source
	Processor   Processor
	Store       Store
	Delivered   *dedup.Delivered // urls delivered by earlier cycles, a fresh set with no eviction if nil
	MaxFetchers int              // concurrent source fetches, default 5
	MaxPerCycle int              // max articles processed per cycle, 0 for unlimited
}

// Pipeline orchestrates fetch cycles, at most one cycle runs at a time
type Pipeline struct {
	Params
	mu     sync.Mutex // held for the duration of a cycle
	cycles int
	now    func() time.Time
}

const logTitleWidth = 60

// New makes a pipeline
func New(params Params) *Pipeline {
	if params.MaxFetchers <= 0 {
		params.MaxFetchers = 5
	}
	if params.Delivered == nil {
		params.Delivered = dedup.NewDelivered(nil)
	}
	return &Pipeline{Params: params, now: time.Now}
}

// RunCycle runs a single fetch cycle and returns its report.
// Returns ErrCycleInProgress if a cycle is already running. On cancellation the partial report is
// returned together with the context error, articles not reached stay eligible for the next cycle.
func (p *Pipeline) RunCycle(ctx context.Context) (*domain.CycleReport, error) {
	if !p.mu.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer p.mu.Unlock()

	p.cycles++
	report := &domain.CycleReport{ID: p.cycles, Started: p.now()}
	if n := p.Delivered.Prune(report.Started); n > 0 {
		lgr.Printf("[DEBUG] evicted %d delivered urls", n)
	}

	lgr.Printf("[INFO] fetch cycle %d started, %d sources", report.ID, len(p.Sources))
	raw := p.fetchAll(ctx, report)
	report.Stats.Fetched = len(raw)

	unique := dedup.Dedupe(raw)
	report.Stats.Unique = len(unique)
	lgr.Printf("[INFO] fetched %d articles, %d unique", len(raw), len(unique))

	err := p.processAll(ctx, unique, report)
	report.Finished = p.now()

	st := report.Stats
	lgr.Printf("[INFO] fetch cycle %d completed in %v: stored %d, existing %d, delivered %d, failed %d, degraded %d",
		report.ID, report.Finished.Sub(report.Started), st.Stored, st.Existing, st.AlreadyDelivered, st.Failed, st.Degraded)
	return report, err
}

// fetchAll runs every source concurrently and returns their articles in source order
func (p *Pipeline) fetchAll(ctx context.Context, report *domain.CycleReport) []domain.RawArticle {
	results := make([]domain.FetchResult, len(p.Sources))
	report.Sources = make([]domain.SourceOutcome, len(p.Sources))

	var g errgroup.Group
	g.SetLimit(p.MaxFetchers)
	for i, src := range p.Sources {
		g.Go(func() error {
			st := time.Now()
			outcome := domain.SourceOutcome{Source: src.Name()}
			res, err := p.fetchSource(ctx, src)
			outcome.Duration = time.Since(st)
			if err != nil {
				lgr.Printf("[WARN] source %s failed: %v", outcome.Source, err)
				outcome.Outcome, outcome.Error = domain.OutcomeFailed, err.Error()
				report.Sources[i] = outcome
				return nil // a failed source never fails the cycle
			}

			outcome.Articles, outcome.Fallbacks, outcome.Dropped = len(res.Articles), res.Fallbacks, res.Dropped
			outcome.Outcome = domain.OutcomeSuccess
			if res.Fallbacks > 0 || res.Dropped > 0 {
				outcome.Outcome = domain.OutcomeDegraded
			}
			lgr.Printf("[DEBUG] source %s: %d articles, %d fallbacks, %d dropped in %v",
				outcome.Source, outcome.Articles, outcome.Fallbacks, outcome.Dropped, outcome.Duration)
			results[i] = res
			report.Sources[i] = outcome
			return nil
		})
	}
	_ = g.Wait()

	var res []domain.RawArticle
	for i, r := range results {
		if report.Sources[i].Outcome == domain.OutcomeFailed {
			report.Stats.SourcesFailed++
		}
		res = append(res, r.Articles...)
	}
	return res
}

func (p *Pipeline) fetchSource(ctx context.Context, src Source) (res domain.FetchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = domain.FetchResult{}, fmt.Errorf("source panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return domain.FetchResult{}, fmt.Errorf("fetch skipped: %w", err)
	}
	return src.Fetch(ctx)
}

// processAll processes and stores articles not delivered before, stops at the per-cycle limit
func (p *Pipeline) processAll(ctx context.Context, articles []domain.RawArticle, report *domain.CycleReport) error {
	processed := 0
	for _, raw := range articles {
		if err := ctx.Err(); err != nil {
			lgr.Printf("[INFO] fetch cycle %d interrupted: %v", report.ID, err)
			return err
		}

		outcome := domain.ArticleOutcome{URL: raw.URL, Title: raw.Title, Source: raw.Source}
		if p.Delivered.Contains(raw.URL) {
			outcome.Outcome, outcome.Reason = domain.OutcomeSkipped, "delivered"
			report.Stats.AlreadyDelivered++
			report.Articles = append(report.Articles, outcome)
			continue
		}

		if p.MaxPerCycle > 0 && processed >= p.MaxPerCycle {
			outcome.Outcome, outcome.Reason = domain.OutcomeSkipped, "cycle limit"
			report.Articles = append(report.Articles, outcome)
			continue
		}
		processed++

		p.processOne(ctx, raw, &outcome, report)
		report.Articles = append(report.Articles, outcome)
	}
	return nil
}

func (p *Pipeline) processOne(ctx context.Context, raw domain.RawArticle, outcome *domain.ArticleOutcome, report *domain.CycleReport) {
	title := runewidth.Truncate(raw.Title, logTitleWidth, "...")

	res, err := p.Processor.Process(ctx, raw)
	if err != nil {
		lgr.Printf("[WARN] failed to process %q: %v", title, err)
		outcome.Outcome, outcome.Reason = domain.OutcomeFailed, err.Error()
		report.Stats.Failed++
		return
	}
	report.Stats.Processed++

	// the write must complete even if the cycle is cancelled meanwhile
	inserted, err := p.Store.InsertIfAbsent(context.WithoutCancel(ctx), res.Article)
	if err != nil {
		lgr.Printf("[WARN] failed to store %q: %v", title, err)
		outcome.Outcome, outcome.Reason = domain.OutcomeFailed, fmt.Sprintf("store: %v", err)
		report.Stats.Failed++
		return
	}

	p.Delivered.Add(raw.URL)
	if !inserted {
		outcome.Outcome, outcome.Reason = domain.OutcomeSkipped, "exists"
		report.Stats.Existing++
		return
	}

	outcome.Outcome = domain.OutcomeSuccess
	if res.Degraded {
		outcome.Outcome = domain.OutcomeDegraded
		report.Stats.Degraded++
		if len(res.Notes) > 0 {
			outcome.Reason = res.Notes[0]
		}
	}
	report.Stats.Stored++
	report.Processed = append(report.Processed, res.Article)
	lgr.Printf("[DEBUG] stored %q [%s] from %s", title, res.Article.Category, raw.Source)
}
