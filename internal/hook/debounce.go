package hook

import "time"

// Debounce suppresses triggers that arrive within the threshold of the last
// accepted one. A zero threshold accepts everything. Callers invoke it
// serially; it is a timestamp gate, not a queue.
type Debounce struct {
	threshold time.Duration
	last      time.Time
}

// NewDebounce creates a gate with the given minimum interval.
func NewDebounce(threshold time.Duration) *Debounce {
	return &Debounce{threshold: threshold}
}

// ShouldRun reports whether a trigger at now is accepted, recording now as
// the last run on a true result.
func (d *Debounce) ShouldRun(now time.Time) bool {
	if !d.last.IsZero() && now.Sub(d.last) < d.threshold {
		return false
	}
	d.last = now
	return true
}
