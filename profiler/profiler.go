// Package profiler provides windowed timing aggregation for pipeline
// operations.
//
// A Tracker keeps a bounded sample window per operation name and reports
// average and total durations over that window alongside all-time minimum
// and maximum. It is designed
// to sit inside measurement harnesses without adding measurable overhead
// of its own.
package profiler

import (
	"sync"
	"time"
)

// DefaultMaxSamples bounds the per-operation sample window when no explicit
// size is given.
const DefaultMaxSamples = 600

// timeTracker tracks timing statistics for one operation.
type timeTracker struct {
	durations []time.Duration
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// OperationStats is a point-in-time summary of one operation's timings. The
// window-bound fields (Avg, Total) cover the retained samples; Min, Max, and
// Count cover every sample recorded since the tracker was created or reset.
type OperationStats struct {
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Total time.Duration `json:"total"`
	Count int64         `json:"count"`
}

// Tracker aggregates timing statistics for named operations. It is safe for
// concurrent use.
type Tracker struct {
	mu         sync.RWMutex
	maxSamples int
	operations map[string]*timeTracker
}

// NewTracker creates a tracker whose per-operation window holds up to
// maxSamples durations. Sizes smaller than one select DefaultMaxSamples.
func NewTracker(maxSamples int) *Tracker {
	if maxSamples < 1 {
		maxSamples = DefaultMaxSamples
	}
	return &Tracker{
		maxSamples: maxSamples,
		operations: make(map[string]*timeTracker),
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
func (t *Tracker) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		t.Record(name, time.Since(start))
	}
}

// Record adds one duration sample for the named operation.
func (t *Tracker) Record(name string, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracker, exists := t.operations[name]
	if !exists {
		tracker = &timeTracker{
			minTime: duration,
			maxTime: duration,
		}
		t.operations[name] = tracker
	}

	tracker.durations = append(tracker.durations, duration)
	if len(tracker.durations) > t.maxSamples {
		// Remove oldest sample
		tracker.totalTime -= tracker.durations[0]
		tracker.durations = tracker.durations[1:]
	}

	tracker.totalTime += duration
	tracker.count++

	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// Stats returns a snapshot of every tracked operation.
func (t *Tracker) Stats() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make(map[string]OperationStats, len(t.operations))
	for name, tracker := range t.operations {
		if len(tracker.durations) == 0 {
			continue
		}
		stats[name] = OperationStats{
			Avg:   tracker.totalTime / time.Duration(len(tracker.durations)),
			Min:   tracker.minTime,
			Max:   tracker.maxTime,
			Total: tracker.totalTime,
			Count: tracker.count,
		}
	}
	return stats
}

// Reset discards all recorded samples.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = make(map[string]*timeTracker)
}
