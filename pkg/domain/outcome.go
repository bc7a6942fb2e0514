package domain

import "time"

// Outcome describes how a source fetch or an article went
type Outcome string

// outcome values
const (
	OutcomeSuccess  Outcome = "success"
	OutcomeDegraded Outcome = "degraded"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
)

// FetchResult is what a source adapter returns for one fetch.
// Fallbacks counts items that used fallback text, Dropped counts items that could not be used at all.
type FetchResult struct {
	Articles  []RawArticle
	Fallbacks int
	Dropped   int
}

// SourceOutcome records a single source fetch within a cycle
type SourceOutcome struct {
	Source    string        `json:"source"`
	Outcome   Outcome       `json:"outcome"`
	Articles  int           `json:"articles"`
	Fallbacks int           `json:"fallbacks,omitempty"`
	Dropped   int           `json:"dropped,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// ArticleOutcome records what happened to one deduplicated article within a cycle
type ArticleOutcome struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Source  string  `json:"source"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// CycleStats aggregates per-cycle counters
type CycleStats struct {
	Fetched          int `json:"fetched"`           // raw articles from all sources
	Unique           int `json:"unique"`            // after in-cycle dedup
	AlreadyDelivered int `json:"already_delivered"` // skipped, delivered in an earlier cycle
	Processed        int `json:"processed"`         // passed through the processor
	Degraded         int `json:"degraded"`          // stored with fallback enrichment
	Stored           int `json:"stored"`            // newly inserted
	Existing         int `json:"existing"`          // store already had the url hash
	Failed           int `json:"failed"`            // processing or insert failed
	SourcesFailed    int `json:"sources_failed"`
}

// CycleReport is the result of a single fetch cycle
type CycleReport struct {
	ID        int                `json:"id"`
	Started   time.Time          `json:"started"`
	Finished  time.Time          `json:"finished"`
	Sources   []SourceOutcome    `json:"sources"`
	Articles  []ArticleOutcome   `json:"articles"`
	Stats     CycleStats         `json:"stats"`
	Processed []ProcessedArticle `json:"-"`
}

// SchedulerStatus is the observable state of the background scheduler
type SchedulerStatus struct {
	Initialized bool          `json:"initialized"`
	Running     bool          `json:"running"`
	Interval    time.Duration `json:"interval"`
	StartedAt   time.Time     `json:"started_at,omitzero"`
	Cycles      int           `json:"cycles"`
	LastCycle   *CycleReport  `json:"last_cycle,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
}
