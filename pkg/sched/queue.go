package sched

import (
	"sync"
	"time"
)

// TimerQueue runs named one-shot deferred jobs. Enqueueing under a name that
// already has a pending job replaces it, so at most one job per name is ever
// pending — re-enqueueing is also the only cancellation mechanism the
// reminder loop needs.
type TimerQueue struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimerQueue returns an empty queue.
func NewTimerQueue() *TimerQueue {
	return &TimerQueue{timers: make(map[string]*time.Timer)}
}

// EnqueueUnique schedules fn to run after delay under the given name,
// superseding any pending job with the same name. A superseded job never
// fires, even if its timer had already expired concurrently.
func (q *TimerQueue) EnqueueUnique(name string, delay time.Duration, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if old, ok := q.timers[name]; ok {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		q.mu.Lock()
		if q.timers[name] != t {
			// Replaced or cancelled after expiry; stand down.
			q.mu.Unlock()
			return
		}
		delete(q.timers, name)
		q.mu.Unlock()
		fn()
	})
	q.timers[name] = t
}

// Cancel drops the pending job under name, reporting whether one existed.
func (q *TimerQueue) Cancel(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.timers[name]
	if ok {
		t.Stop()
		delete(q.timers, name)
	}
	return ok
}

// Pending reports whether a job is waiting under name.
func (q *TimerQueue) Pending(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.timers[name]
	return ok
}

// Stop cancels every pending job.
func (q *TimerQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for name, t := range q.timers {
		t.Stop()
		delete(q.timers, name)
	}
}
