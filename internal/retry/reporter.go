package retry

import "sync"

// Entry is a scan error record (spec.md §3): one path's final outcome after
// retry.
type Entry struct {
	Path           string
	ErrorCode      string
	Classification Classification
	Attempts       int
}

// Stats is the aggregate summary surfaced in the final stats object
// (spec.md §4.J, §7): {retries, given_up, permanent, success_after_retry}.
type Stats struct {
	Retries           int
	GivenUp           int
	Permanent         int
	SuccessAfterRetry int
}

// Reporter aggregates retry outcomes across an entire scan. It is safe for
// concurrent use: counters are lock-protected and the entry log is
// append-only (spec.md §5 "Shared resources").
type Reporter struct {
	mu      sync.Mutex
	stats   Stats
	entries []Entry
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) recordRetry(path string, attempt int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Retries++
}

func (r *Reporter) recordSuccessAfterRetry(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.SuccessAfterRetry++
}

func (r *Reporter) recordPermanent(path string, attempts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Permanent++
	r.entries = append(r.entries, Entry{Path: path, Classification: Permanent, Attempts: attempts})
}

func (r *Reporter) recordGaveUp(path string, attempts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.GivenUp++
	r.entries = append(r.entries, Entry{Path: path, Classification: GaveUp, Attempts: attempts})
}

// Snapshot returns a copy of the current aggregate stats.
func (r *Reporter) Snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Entries returns a copy of the accumulated per-path error entries.
func (r *Reporter) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
