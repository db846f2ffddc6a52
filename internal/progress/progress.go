// Package progress implements the progress and event bus (component I):
// a lightweight, TUI-agnostic observer callback that every engine stage
// reports through (spec.md §4.I). The core engine depends only on the
// Reporter type defined here; the CLI's terminal rendering lives outside
// this package so the engine stays free of any TUI dependency
// (SPEC_FULL.md §4.I).
package progress

import (
	"sync"
	"time"
)

// Stage identifies which of the four pipeline stages an Event belongs to
// (spec.md §4.I: "resolve, walk, transform, format").
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageWalk      Stage = "walk"
	StageTransform Stage = "transform"
	StageFormat    Stage = "format"
)

// Kind distinguishes a stage boundary event from an ordinary progress tick.
type Kind string

const (
	KindStageStart Kind = "stage:start"
	KindStageEnd   Kind = "stage:end"
	KindTick       Kind = "tick"
)

// Event is the payload delivered to an observer (spec.md §4.I:
// "{percent: 0..100, message, stage}").
type Event struct {
	Kind    Kind
	Stage   Stage
	Percent int
	Message string
}

// Observer receives Events. Implementations must return quickly: Reporter
// calls observers on the goroutine that reported the event, so a slow
// observer blocks that goroutine. Calls are not serialized, so observers may
// run concurrently when stages report from several goroutines.
type Observer func(Event)

// DefaultThrottle is the default minimum interval between emitted tick
// events (spec.md §4.I: "progress_throttle_ms, default ~250ms"). Stage
// boundary events and the terminal percent=100 event always bypass the
// throttle.
const DefaultThrottle = 250 * time.Millisecond

// Reporter tracks monotonic progress across the four pipeline stages and
// fans events out to a set of observers, throttling ordinary ticks (spec.md
// §4.I: "Progress is monotonically non-decreasing and always emits
// percent=0 at start and percent=100 at completion").
type Reporter struct {
	mu        sync.Mutex
	observers []Observer
	throttle  time.Duration
	lastSent  time.Time
	lastPct   int
	started   bool
	done      bool
}

// NewReporter creates a Reporter with the given tick throttle; zero uses
// DefaultThrottle.
func NewReporter(throttle time.Duration) *Reporter {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &Reporter{throttle: throttle}
}

// Subscribe registers an observer and returns an unsubscribe function.
func (r *Reporter) Subscribe(obs Observer) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.observers = append(r.observers, obs)
	idx := len(r.observers) - 1
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx < len(r.observers) {
			r.observers[idx] = nil
		}
	}
}

// Start emits a stage:start event for the given stage. The first call
// carries the mandatory percent=0; later calls carry the current percent,
// so starting a new stage never moves progress backwards.
func (r *Reporter) Start(stage Stage, message string) {
	r.mu.Lock()
	if !r.started {
		r.started = true
		r.lastPct = 0
	}
	pct := r.lastPct
	r.mu.Unlock()

	r.emit(Event{Kind: KindStageStart, Stage: stage, Percent: pct, Message: message})
}

// Tick reports progress within a stage. pct is clamped to be monotonically
// non-decreasing relative to the last reported percent, and is subject to
// the configured throttle.
func (r *Reporter) Tick(stage Stage, pct int, message string) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	r.mu.Lock()
	if pct < r.lastPct {
		pct = r.lastPct
	}
	r.lastPct = pct
	now := time.Now()
	due := now.Sub(r.lastSent) >= r.throttle
	if due {
		r.lastSent = now
	}
	r.mu.Unlock()

	if !due {
		return
	}
	r.emit(Event{Kind: KindTick, Stage: stage, Percent: pct, Message: message})
}

// StageEnd emits a stage:end event without forcing percent=100 — only the
// final End call does that.
func (r *Reporter) StageEnd(stage Stage, message string) {
	r.mu.Lock()
	pct := r.lastPct
	r.mu.Unlock()
	r.emit(Event{Kind: KindStageEnd, Stage: stage, Percent: pct, Message: message})
}

// End emits the mandatory percent=100 completion event, once.
func (r *Reporter) End(stage Stage, message string) {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	r.lastPct = 100
	r.mu.Unlock()

	r.emit(Event{Kind: KindStageEnd, Stage: stage, Percent: 100, Message: message})
}

func (r *Reporter) emit(ev Event) {
	r.mu.Lock()
	obs := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	for _, o := range obs {
		if o != nil {
			o(ev)
		}
	}
}
