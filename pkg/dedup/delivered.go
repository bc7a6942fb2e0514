package dedup

import (
	"sort"
	"sync"
	"time"
)

// EvictionPolicy decides which delivered urls can be forgotten.
// Evict gets urls with their delivery time and returns the ones to drop.
type EvictionPolicy interface {
	Evict(entries map[string]time.Time, now time.Time) []string
}

// NoEviction keeps every delivered url for the life of the process
type NoEviction struct{}

// Evict never drops anything
func (NoEviction) Evict(map[string]time.Time, time.Time) []string { return nil }

// MaxAge drops urls delivered longer than the given duration ago
type MaxAge time.Duration

// Evict returns urls older than the max age
func (m MaxAge) Evict(entries map[string]time.Time, now time.Time) []string {
	var res []string
	for u, ts := range entries {
		if now.Sub(ts) > time.Duration(m) {
			res = append(res, u)
		}
	}
	return res
}

// MaxSize keeps at most N most recently delivered urls
type MaxSize int

// Evict returns the oldest urls above the size limit
func (m MaxSize) Evict(entries map[string]time.Time, _ time.Time) []string {
	if int(m) <= 0 || len(entries) <= int(m) {
		return nil
	}
	type rec struct {
		url string
		ts  time.Time
	}
	recs := make([]rec, 0, len(entries))
	for u, ts := range entries {
		recs = append(recs, rec{url: u, ts: ts})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].ts.Equal(recs[j].ts) {
			return recs[i].url < recs[j].url
		}
		return recs[i].ts.Before(recs[j].ts)
	})
	res := make([]string, 0, len(recs)-int(m))
	for _, r := range recs[:len(recs)-int(m)] {
		res = append(res, r.url)
	}
	return res
}

// Delivered is the set of urls delivered in earlier cycles. Safe for concurrent use.
type Delivered struct {
	mu      sync.Mutex
	entries map[string]time.Time
	policy  EvictionPolicy
	now     func() time.Time
}

// NewDelivered makes an empty delivered set, nil policy means no eviction
func NewDelivered(policy EvictionPolicy) *Delivered {
	if policy == nil {
		policy = NoEviction{}
	}
	return &Delivered{entries: map[string]time.Time{}, policy: policy, now: time.Now}
}

// Contains checks if url was delivered
func (d *Delivered) Contains(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[url]
	return ok
}

// Add marks url as delivered now
func (d *Delivered) Add(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[url] = d.now()
}

// Len returns number of tracked urls
func (d *Delivered) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Prune applies the eviction policy as of now and returns the number of dropped urls
func (d *Delivered) Prune(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	evicted := d.policy.Evict(d.entries, now)
	for _, u := range evicted {
		delete(d.entries, u)
	}
	return len(evicted)
}
