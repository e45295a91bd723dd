// Package inflight exposes per-operation "in progress" flags. It counts
// outstanding calls and never blocks or de-duplicates them.
package inflight

import "sync"

// Tracker counts outstanding calls per operation name.
type Tracker struct {
	mu     sync.Mutex
	counts map[string]int
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// Begin marks op as started and returns the function that marks it done.
func (t *Tracker) Begin(op string) (done func()) {
	t.mu.Lock()
	t.counts[op]++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			t.counts[op]--
			if t.counts[op] <= 0 {
				delete(t.counts, op)
			}
			t.mu.Unlock()
		})
	}
}

// Active reports whether at least one call of op is outstanding.
func (t *Tracker) Active(op string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[op] > 0
}
