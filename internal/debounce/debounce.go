// Package debounce collapses bursts of values into one deferred trigger.
//
// A Debouncer does not own a timer. Push returns a Tick describing when
// to come back; the caller schedules it (tea.Tick in the dashboard) and
// hands the sequence back to Fire. Only the latest tick yields a value.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used when none is configured.
const DefaultQuiet = 500 * time.Millisecond

// Tick identifies one scheduled trigger.
type Tick struct {
	Seq   int
	After time.Duration
}

// Debouncer holds the pending value of a burst.
type Debouncer[T any] struct {
	mu      sync.Mutex
	quiet   time.Duration
	seq     int
	pending T
	has     bool
	stopped bool
}

// New returns a debouncer with the given quiet period. Non-positive
// periods fall back to DefaultQuiet.
func New[T any](quiet time.Duration) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer[T]{quiet: quiet}
}

// Quiet returns the quiet period.
func (d *Debouncer[T]) Quiet() time.Duration {
	return d.quiet
}

// Push replaces the pending value and restarts the quiet period.
// Earlier ticks become stale.
func (d *Debouncer[T]) Push(v T) Tick {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.stopped {
		return Tick{Seq: d.seq, After: d.quiet}
	}
	d.pending = v
	d.has = true
	return Tick{Seq: d.seq, After: d.quiet}
}

// Fire returns the pending value if seq is the latest tick. The value is
// consumed, so a burst fires at most once.
func (d *Debouncer[T]) Fire(seq int) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	if d.stopped || !d.has || seq != d.seq {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.has = false
	return v, true
}

// Cancel drops the pending value without stopping the debouncer.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	d.pending = zero
	d.has = false
	d.seq++
}

// Stop drops the pending value. Later pushes never fire.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero T
	d.pending = zero
	d.has = false
	d.stopped = true
}

// Pending reports whether a value is waiting for its quiet period.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.has && !d.stopped
}
