// Package scheduler runs fetch cycles periodically in a supervised background goroutine.
// The scheduler is either idle or running, a running scheduler owns exactly one loop goroutine
// which is cancelled and joined on Stop.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/pipeline"
)

//go:generate moq -out mocks/cycler.go -pkg mocks -skip-ensure -fmt goimports . Cycler

// Cycler runs a single fetch cycle
type Cycler interface {
	RunCycle(ctx context.Context) (*domain.CycleReport, error)
}

// Config holds scheduler configuration
type Config struct {
	Interval time.Duration // between successful cycles, default 30m
	Cooldown time.Duration // after a failed cycle, default 5m, never longer than interval
}

// Scheduler manages the periodic fetch loop
type Scheduler struct {
	cycler Cycler
	cfg    Config

	lifecycle sync.Mutex // serializes Start and Stop, held by Stop until the loop exits
	mu        sync.Mutex
	run       *Run
	cycles    int
	lastCycle *domain.CycleReport
	lastError string
}

// Run is a handle of a running loop
type Run struct {
	cancel    context.CancelFunc
	done      chan struct{}
	interval  time.Duration
	startedAt time.Time
}

// Done is closed when the loop goroutine exits
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the loop goroutine exits
func (r *Run) Wait() { <-r.done }

// New makes an idle scheduler
func New(cycler Cycler, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Minute
	}
	return &Scheduler{cycler: cycler, cfg: cfg}
}

// Start begins the loop with the given interval, non-positive interval means the configured one.
// The first cycle runs immediately. If already running the existing run is returned and nothing changes.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) *Run {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil {
		lgr.Printf("[DEBUG] scheduler already running with interval %v", s.run.interval)
		return s.run
	}
	if interval <= 0 {
		interval = s.cfg.Interval
	}

	ctx, cancel := context.WithCancel(ctx)
	run := &Run{cancel: cancel, done: make(chan struct{}), interval: interval, startedAt: time.Now()}
	s.run = run
	go s.loop(ctx, run)

	lgr.Printf("[INFO] scheduler started with interval %v", interval)
	return run
}

// Stop cancels the loop and waits for it to exit, no-op if idle.
// The scheduler reports running until the loop is gone and a concurrent Start waits for Stop to finish.
func (s *Scheduler) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	run := s.run
	s.mu.Unlock()
	if run == nil {
		return
	}

	lgr.Printf("[INFO] stopping scheduler...")
	run.cancel()
	run.Wait()

	s.mu.Lock()
	if s.run == run {
		s.run = nil
	}
	s.mu.Unlock()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunOnce runs a single cycle outside of the loop, the report is recorded in the status
func (s *Scheduler) RunOnce(ctx context.Context) (*domain.CycleReport, error) {
	report, err := s.cycle(ctx)
	if err != nil && !errors.Is(err, pipeline.ErrCycleInProgress) {
		return report, fmt.Errorf("run cycle: %w", err)
	}
	return report, err
}

// Status returns the observable scheduler state
func (s *Scheduler) Status() domain.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := domain.SchedulerStatus{
		Initialized: s.cycler != nil,
		Running:     s.run != nil,
		Interval:    s.cfg.Interval,
		Cycles:      s.cycles,
		LastCycle:   s.lastCycle,
		LastError:   s.lastError,
	}
	if s.run != nil {
		res.Interval, res.StartedAt = s.run.interval, s.run.startedAt
	}
	return res
}

func (s *Scheduler) loop(ctx context.Context, run *Run) {
	defer close(run.done)
	defer func() {
		// loop exit by parent context cancellation also returns scheduler to idle
		s.mu.Lock()
		if s.run == run {
			s.run = nil
		}
		s.mu.Unlock()
	}()

	cooldown := min(s.cfg.Cooldown, run.interval)
	for {
		wait := run.interval
		if _, err := s.cycle(ctx); err != nil && !errors.Is(err, pipeline.ErrCycleInProgress) {
			if ctx.Err() != nil {
				return
			}
			lgr.Printf("[WARN] fetch cycle failed, retry in %v: %v", cooldown, err)
			wait = cooldown
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// cycle runs one fetch cycle, recovers from panics and records the result
func (s *Scheduler) cycle(ctx context.Context) (report *domain.CycleReport, err error) {
	if s.cycler == nil {
		return nil, errors.New("no cycler")
	}

	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] fetch cycle panic: %v", r)
			report, err = nil, fmt.Errorf("cycle panic: %v", r)
		}
		if errors.Is(err, pipeline.ErrCycleInProgress) {
			return
		}
		s.mu.Lock()
		s.cycles++
		if report != nil {
			s.lastCycle = report
		}
		s.lastError = ""
		if err != nil {
			s.lastError = err.Error()
		}
		s.mu.Unlock()
	}()

	return s.cycler.RunCycle(ctx)
}
